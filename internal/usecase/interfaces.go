package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// AccountRepository defines data access for accounts. Balances change
// only through TransactionRepository.Create.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	TotalBalance(ctx context.Context) (total decimal.Decimal, count int64, err error)
}

// UserDirectory resolves transfer recipients by username. Users it
// returns may lack HashedPassword.
type UserDirectory interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserRepository defines data access for users, credentials included.
type UserRepository interface {
	UserDirectory
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
}

// TransactionRepository is the transfer ledger.
type TransactionRepository interface {
	// Create records the transfer and moves value from the debited to the
	// credited account as one atomic unit. It returns
	// domain.ErrInsufficientBalance if the debited balance no longer
	// covers value at commit time.
	Create(ctx context.Context, debitedAccountID, creditedAccountID string, value decimal.Decimal) (*domain.Transaction, error)
	List(ctx context.Context, accountID string, filter domain.TransactionFilter) ([]*domain.Transaction, error)
}

// TokenVerifier turns a bearer token into the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

// TransferRecorder observes transfer outcomes.
type TransferRecorder interface {
	TransferSucceeded(value decimal.Decimal, duration time.Duration)
	TransferFailed(reason string)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ErrCacheMiss is returned by Cache.Get when key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops the key so the request may be retried.
	Release(ctx context.Context, key string) error
}

type nopRecorder struct{}

func (nopRecorder) TransferSucceeded(decimal.Decimal, time.Duration) {}
func (nopRecorder) TransferFailed(string)                            {}
