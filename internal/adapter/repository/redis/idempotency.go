package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingMarker is stored when CheckAndSet is called without a response.
const pendingMarker = "processing"

// claimAttempts covers a claim that expires between SETNX and GET.
const claimAttempts = 2

// IdempotencyStore implements usecase.IdempotencyStore on Redis.
type IdempotencyStore struct {
	client redis.Cmdable
	ns     keyspace
}

// NewIdempotencyStore creates an IdempotencyStore under the
// "idempotency:" namespace.
func NewIdempotencyStore(client redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{client: client, ns: idempotencyKeyspace}
}

// CheckAndSet claims key with response, or with a pending marker when
// response is nil. If another request holds the key it returns true and
// the value stored there.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	var value any = pendingMarker
	if response != nil {
		value = response
	}

	for i := 0; i < claimAttempts; i++ {
		claimed, err := s.client.SetNX(ctx, s.ns.key(key), value, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if claimed {
			return false, nil, nil
		}

		existing, err := s.client.Get(ctx, s.ns.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return false, nil, err
		}
		return true, existing, nil
	}

	return true, nil, nil
}

// Update replaces the claim on key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.ns.key(key), response, ttl).Err()
}

// Release drops a claim so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.ns.key(key)).Err()
}
