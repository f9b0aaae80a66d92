package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartingBalance is credited to every account at registration.
var StartingBalance = decimal.NewFromInt(100)

// Account holds the balance of exactly one user.
type Account struct {
	ID        string
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount returns an account funded with StartingBalance.
func NewAccount(id string, now time.Time) *Account {
	return &Account{
		ID:        id,
		Balance:   StartingBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanDebit reports whether amount can leave the account without making
// the balance negative. Debiting the whole balance is allowed.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(a.Balance)
}

// MoneyPlaces is the scale of every money column.
const MoneyPlaces = 2

// ValidateAmount rejects non-positive amounts and amounts finer than a
// cent. Storage rounds each column on its own, so a sub-cent value
// would debit and credit different sums.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(MoneyPlaces)) {
		return ErrAmountPrecision
	}
	return nil
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}

	if !a.CanDebit(amount) {
		return ErrInsufficientBalance
	}

	return nil
}
