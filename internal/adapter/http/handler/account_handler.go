package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/adapter/http/dto"
)

// BalanceService defines the behavior needed by AccountHandler.
type BalanceService interface {
	Execute(ctx context.Context, token string) (decimal.Decimal, error)
}

// AccountHandler serves the caller's own account.
type AccountHandler struct {
	balance BalanceService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(balance BalanceService) *AccountHandler {
	return &AccountHandler{balance: balance}
}

// Balance returns the caller's current balance.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}

	balance, err := h.balance.Execute(r.Context(), token)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}
