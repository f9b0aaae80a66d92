package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// UserResponse represents a registered user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		AccountID: u.AccountID,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// BalanceResponse represents the caller's balance.
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// BalanceFromDomain formats a balance with two decimal places.
func BalanceFromDomain(balance decimal.Decimal) *BalanceResponse {
	return &BalanceResponse{Balance: balance.StringFixed(2)}
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID                string    `json:"id"`
	DebitedAccountID  string    `json:"debitedAccountId"`
	CreditedAccountID string    `json:"creditedAccountId"`
	Value             string    `json:"value"`
	CreatedAt         time.Time `json:"createdAt"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                t.ID,
		DebitedAccountID:  t.DebitedAccountID,
		CreditedAccountID: t.CreditedAccountID,
		Value:             t.Value.StringFixed(2),
		CreatedAt:         t.CreatedAt,
	}
}

// TransactionsFromDomain converts a history page. The result is never nil
// so it encodes as [] rather than null.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ConsistencyResponse reports the ledger conservation check.
type ConsistencyResponse struct {
	Consistent   bool   `json:"consistent"`
	Accounts     int64  `json:"accounts"`
	TotalBalance string `json:"totalBalance"`
	Expected     string `json:"expected"`
}

// ConsistencyFromReport converts a consistency report to response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		Consistent:   r.Consistent,
		Accounts:     r.Accounts,
		TotalBalance: r.TotalBalance.StringFixed(2),
		Expected:     r.Expected.StringFixed(2),
	}
}

// ErrorResponse represents an error in API responses. Param names the
// offending request parameter for 400 responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Param   string `json:"param,omitempty"`
}
