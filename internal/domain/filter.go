package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format accepted by history filters.
const DateLayout = "2006-01-02"

// TransactionType is a transaction direction relative to one account.
type TransactionType string

const (
	// CashIn selects entries where the account was credited.
	CashIn TransactionType = "cash-in"
	// CashOut selects entries where the account was debited.
	CashOut TransactionType = "cash-out"
)

// ParseTransactionType parses the type filter. The empty string means
// both directions.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.TrimSpace(s)); t {
	case "", CashIn, CashOut:
		return t, nil
	default:
		return "", NewInvalidParamError("type", ErrInvalidType)
	}
}

// ParseDate parses a calendar day in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, NewInvalidParamError("date", ErrInvalidDate)
	}

	return d, nil
}

// TransactionFilter narrows transaction history. Both fields are
// optional and combine with AND.
type TransactionFilter struct {
	Date *time.Time
	Type TransactionType
}

// NewTransactionFilter builds a filter from raw query values.
func NewTransactionFilter(date, typ string) (TransactionFilter, error) {
	var f TransactionFilter

	t, err := ParseTransactionType(typ)
	if err != nil {
		return f, err
	}
	f.Type = t

	if strings.TrimSpace(date) != "" {
		d, err := ParseDate(date)
		if err != nil {
			return f, err
		}
		f.Date = &d
	}

	return f, nil
}

// Window returns the half-open day [start, end) selected by Date.
func (f TransactionFilter) Window() (start, end time.Time, ok bool) {
	if f.Date == nil {
		return time.Time{}, time.Time{}, false
	}

	y, m, d := f.Date.UTC().Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 0, 1), true
}

// Matches reports whether tx belongs to accountID's history under f.
func (f TransactionFilter) Matches(accountID string, tx *Transaction) bool {
	dir := tx.Direction(accountID)
	if dir == "" {
		return false
	}

	if f.Type != "" && f.Type != dir {
		return false
	}

	if start, end, ok := f.Window(); ok {
		created := tx.CreatedAt.UTC()
		if created.Before(start) || !created.Before(end) {
			return false
		}
	}

	return true
}
