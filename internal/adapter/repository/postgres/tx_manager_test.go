package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/cashflow/internal/infrastructure/postgres/generated"
)

func TestTxManagerCommitsRegistrationUnit(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBeginTx(registrationTxOptions)
	mockPool.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	ctx := context.Background()
	tx, err := newTxManagerWithPool(mockPool).Begin(ctx)
	require.NoError(t, err)

	q, err := queriesFor(tx)
	require.NoError(t, err)

	require.NoError(t, q.CreateAccount(ctx, generated.CreateAccountParams{ID: "acc-1"}))
	require.NoError(t, q.CreateUser(ctx, generated.CreateUserParams{ID: "user-1", Username: "alice", AccountID: "acc-1"}))
	require.NoError(t, tx.Commit(ctx))

	assertExpectations(t, mockPool)
}

func TestTxManagerBeginError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("begin failed")
	mockPool.ExpectBeginTx(registrationTxOptions).WillReturnError(mockErr)

	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	assert.ErrorIs(t, err, mockErr)
	assert.Nil(t, tx)
}

func TestTxRollback(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBeginTx(registrationTxOptions)
	mockPool.ExpectRollback()

	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(context.Background()))

	assertExpectations(t, mockPool)
}

// closedTx behaves like a pgx.Tx that has already been committed.
type closedTx struct {
	pgx.Tx
	rollbackErr error
}

func (c closedTx) Rollback(context.Context) error {
	return c.rollbackErr
}

func TestTxRollbackAfterCommitIsNoop(t *testing.T) {
	tx := &pgTransaction{tx: closedTx{rollbackErr: pgx.ErrTxClosed}}
	assert.NoError(t, tx.Rollback(context.Background()))

	failing := errors.New("conn reset")
	tx = &pgTransaction{tx: closedTx{rollbackErr: failing}}
	assert.ErrorIs(t, tx.Rollback(context.Background()), failing)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
