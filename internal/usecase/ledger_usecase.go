package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// ConsistencyReport summarises a conservation check.
type ConsistencyReport struct {
	Accounts     int64
	TotalBalance decimal.Decimal
	Expected     decimal.Decimal
	Consistent   bool
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	accountRepo AccountRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
	}
}

// CheckConsistency verifies that no money was created or destroyed:
// transfers only move value, so the sum of all balances must equal the
// starting balance handed to every account.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	total, count, err := uc.accountRepo.TotalBalance(ctx)
	if err != nil {
		return nil, err
	}

	expected := domain.StartingBalance.Mul(decimal.NewFromInt(count))
	report := &ConsistencyReport{
		Accounts:     count,
		TotalBalance: total,
		Expected:     expected,
		Consistent:   total.Equal(expected),
	}

	if !report.Consistent {
		return report, domain.ErrLedgerInconsistent
	}

	return report, nil
}
