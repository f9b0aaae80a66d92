package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger entry recording one completed
// transfer from the debited account to the credited account.
type Transaction struct {
	CreatedAt         time.Time
	ID                string
	DebitedAccountID  string
	CreditedAccountID string
	Value             decimal.Decimal
}

// Validate checks the invariants every ledger entry must hold.
func (t *Transaction) Validate() error {
	if t.DebitedAccountID == t.CreditedAccountID {
		return ErrSameAccount
	}

	return ValidateAmount(t.Value)
}

// Direction returns the transaction type from the point of view of
// accountID, or the empty type if the account is not a party.
func (t *Transaction) Direction(accountID string) TransactionType {
	switch accountID {
	case t.DebitedAccountID:
		return CashOut
	case t.CreditedAccountID:
		return CashIn
	default:
		return ""
	}
}
