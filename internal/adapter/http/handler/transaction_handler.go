package handler

import (
	"context"
	"net/http"

	"github.com/iho/cashflow/internal/adapter/http/dto"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// TransferService defines the transfer behavior needed by TransactionHandler.
type TransferService interface {
	Execute(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error)
}

// HistoryService defines the history behavior needed by TransactionHandler.
type HistoryService interface {
	Execute(ctx context.Context, token string, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

// TransactionHandler handles transfers and transaction history.
type TransactionHandler struct {
	transfers TransferService
	history   HistoryService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transfers TransferService, history HistoryService) *TransactionHandler {
	return &TransactionHandler{
		transfers: transfers,
		history:   history,
	}
}

// Create moves value from the caller to the named recipient.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	tx, err := h.transfers.Execute(r.Context(), req.ToUseCaseInput(token))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// List returns the caller's history, optionally narrowed by ?date=
// (YYYY-MM-DD) and ?type= (cash-in or cash-out).
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter, err := domain.NewTransactionFilter(query.Get("date"), query.Get("type"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	txs, err := h.history.Execute(r.Context(), token, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}
