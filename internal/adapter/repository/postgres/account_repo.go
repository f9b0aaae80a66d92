package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/postgres/generated"
	"github.com/iho/cashflow/internal/usecase"
)

// AccountRepository reads and creates accounts. Balances are only ever
// changed by LedgerRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates an AccountRepository on pool.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// CreateTx inserts account inside tx.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q, err := queriesFor(tx)
	if err != nil {
		return err
	}

	return q.CreateAccount(ctx, generated.CreateAccountParams{
		ID:        account.ID,
		Balance:   decimalToNumeric(account.Balance),
		Version:   account.Version,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})
}

// GetByUserID returns the account owned by userID or
// domain.ErrAccountNotFound.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	return toAccount(r.queries.GetAccountByUserID(ctx, userID))
}

// TotalBalance returns the sum of all balances and the account count.
func (r *AccountRepository) TotalBalance(ctx context.Context) (decimal.Decimal, int64, error) {
	row, err := r.queries.SumBalances(ctx)
	if err != nil {
		return decimal.Zero, 0, err
	}

	return numericToDecimal(row.Total), row.Accounts, nil
}

func toAccount(row generated.Account, err error) (*domain.Account, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:        row.ID,
		Balance:   numericToDecimal(row.Balance),
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}, nil
}
