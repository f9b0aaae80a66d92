package usecase

import (
	"context"

	"github.com/iho/cashflow/internal/domain"
)

// HistoryUseCase lists the caller's transactions.
type HistoryUseCase struct {
	resolver accountResolver
	ledger   TransactionRepository
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(tokens TokenVerifier, accounts AccountRepository, ledger TransactionRepository) *HistoryUseCase {
	return &HistoryUseCase{
		resolver: accountResolver{tokens: tokens, accounts: accounts},
		ledger:   ledger,
	}
}

// Execute returns the transactions of the caller's account matching
// filter. It returns an empty slice when nothing matches.
func (uc *HistoryUseCase) Execute(ctx context.Context, token string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	account, err := uc.resolver.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	txs, err := uc.ledger.List(ctx, account.ID, filter)
	if err != nil {
		return nil, domain.NewServerError("list transactions", err)
	}

	if txs == nil {
		txs = []*domain.Transaction{}
	}

	return txs, nil
}
