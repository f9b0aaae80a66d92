package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/postgres/generated"
	"github.com/iho/cashflow/internal/usecase"
)

// LedgerRepository implements usecase.TransactionRepository.
type LedgerRepository struct {
	pool    pgxPool
	idGen   usecase.IDGenerator
	retrier *Retrier
	now     func() time.Time
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool, idGen usecase.IDGenerator, retrier *Retrier) *LedgerRepository {
	return newLedgerRepository(pool, idGen, retrier)
}

func newLedgerRepository(pool pgxPool, idGen usecase.IDGenerator, retrier *Retrier) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		idGen:   idGen,
		retrier: retrier,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create debits, credits and records the transfer in one database
// transaction. Both rows are locked in id order, and the debit only
// applies while the balance still covers value.
func (r *LedgerRepository) Create(ctx context.Context, debitedAccountID, creditedAccountID string, value decimal.Decimal) (*domain.Transaction, error) {
	entry := &domain.Transaction{
		ID:                r.idGen.Generate(),
		DebitedAccountID:  debitedAccountID,
		CreditedAccountID: creditedAccountID,
		Value:             value,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	err := r.retrier.Retry(ctx, func() error {
		entry.CreatedAt = r.now()
		return r.apply(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *LedgerRepository) apply(ctx context.Context, entry *domain.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := generated.New(tx)

	ids := []string{entry.DebitedAccountID, entry.CreditedAccountID}
	sort.Strings(ids)

	locked, err := q.LockAccountsForUpdate(ctx, ids)
	if err != nil {
		return fmt.Errorf("lock accounts: %w", err)
	}
	if len(locked) != len(ids) {
		return domain.ErrAccountNotFound
	}

	value := decimalToNumeric(entry.Value)
	updatedAt := timeToPgTimestamptz(entry.CreatedAt)

	debited, err := q.DebitAccount(ctx, generated.DebitAccountParams{
		ID:        entry.DebitedAccountID,
		Balance:   value,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		return fmt.Errorf("debit account: %w", err)
	}
	if debited == 0 {
		return domain.ErrInsufficientBalance
	}

	credited, err := q.CreditAccount(ctx, generated.CreditAccountParams{
		ID:        entry.CreditedAccountID,
		Balance:   value,
		UpdatedAt: updatedAt,
	})
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}
	if credited == 0 {
		return domain.ErrAccountNotFound
	}

	err = q.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:                entry.ID,
		DebitedAccountID:  entry.DebitedAccountID,
		CreditedAccountID: entry.CreditedAccountID,
		Value:             value,
		CreatedAt:         updatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return tx.Commit(ctx)
}

// List returns the transactions of accountID matching filter, oldest
// first.
func (r *LedgerRepository) List(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	query, args := buildTransactionQuery(accountID, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []*domain.Transaction{}
	for rows.Next() {
		var (
			t         domain.Transaction
			value     pgtype.Numeric
			createdAt time.Time
		)
		if err := rows.Scan(&t.ID, &t.DebitedAccountID, &t.CreditedAccountID, &value, &createdAt); err != nil {
			return nil, err
		}

		t.Value = numericToDecimal(value)
		t.CreatedAt = createdAt.UTC()
		txs = append(txs, &t)
	}

	return txs, rows.Err()
}

// buildTransactionQuery renders the history query for filter. The
// account id is always $1.
func buildTransactionQuery(accountID string, filter domain.TransactionFilter) (string, []any) {
	var sb strings.Builder
	args := []any{accountID}

	sb.WriteString("SELECT id, debited_account_id, credited_account_id, value, created_at FROM transactions WHERE ")

	switch filter.Type {
	case domain.CashIn:
		sb.WriteString("credited_account_id = $1")
	case domain.CashOut:
		sb.WriteString("debited_account_id = $1")
	default:
		sb.WriteString("(debited_account_id = $1 OR credited_account_id = $1)")
	}

	if start, end, ok := filter.Window(); ok {
		args = append(args, start, end)
		fmt.Fprintf(&sb, " AND created_at >= $%d AND created_at < $%d", len(args)-1, len(args))
	}

	sb.WriteString(" ORDER BY created_at, id")

	return sb.String(), args
}
