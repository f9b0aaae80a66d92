package usecase

import "time"

const (
	// DefaultTransferTimeout bounds one transfer end to end, ledger
	// retries included.
	DefaultTransferTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
