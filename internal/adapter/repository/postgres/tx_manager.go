package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/cashflow/internal/infrastructure/postgres/generated"
	"github.com/iho/cashflow/internal/usecase"
)

var errForeignTransaction = errors.New("postgres: transaction was not started by TxManager")

// registrationTxOptions are used for the account+user insert pair.
// Uniqueness is enforced by constraints, so read committed suffices.
var registrationTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.ReadCommitted,
	AccessMode: pgx.ReadWrite,
}

// pgxPool is the subset of *pgxpool.Pool the repositories use.
type pgxPool interface {
	generated.DBTX
	Begin(context.Context) (pgx.Tx, error)
	BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error)
}

// TxManager hands out transactions that the repositories' CreateTx
// methods accept.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a TxManager on pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a read-committed, read-write transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.BeginTx(ctx, registrationTxOptions)
	if err != nil {
		return nil, err
	}

	return &pgTransaction{tx: tx}, nil
}

type pgTransaction struct {
	tx pgx.Tx
}

func (t *pgTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback after Commit is a no-op, so callers can always defer it.
func (t *pgTransaction) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// queriesFor binds generated queries to a transaction from TxManager.
func queriesFor(tx usecase.Transaction) (*generated.Queries, error) {
	pt, ok := tx.(*pgTransaction)
	if !ok {
		return nil, errForeignTransaction
	}
	return generated.New(pt.tx), nil
}
