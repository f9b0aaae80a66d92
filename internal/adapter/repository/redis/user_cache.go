package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// cachedUser is what reaches Redis. Password hashes never do, so users
// served from the cache come back without HashedPassword.
type cachedUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	AccountID string    `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CachedUserDirectory is a read-through cache in front of a
// usecase.UserDirectory for recipient lookups. Only hits are cached; a
// miss always reaches the store so a fresh registration is visible at
// once. Cache faults are logged and fall through to the store.
type CachedUserDirectory struct {
	next   usecase.UserDirectory
	cache  usecase.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedUserDirectory wraps next with cache.
func NewCachedUserDirectory(next usecase.UserDirectory, cache usecase.Cache, ttl time.Duration, logger zerolog.Logger) *CachedUserDirectory {
	return &CachedUserDirectory{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByUsername returns the user named username, without its password
// hash.
func (d *CachedUserDirectory) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	key := "user:name:" + username

	if user, ok := d.lookup(ctx, key); ok {
		return user, nil
	}

	user, err := d.next.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	entry := cachedUser{
		ID:        user.ID,
		Username:  user.Username,
		AccountID: user.AccountID,
		CreatedAt: user.CreatedAt,
	}
	if raw, err := json.Marshal(entry); err == nil {
		if err := d.cache.Set(ctx, key, raw, d.ttl); err != nil {
			d.logger.Warn().Err(err).Str("key", key).Msg("user cache write failed")
		}
	}

	return entry.user(), nil
}

func (d *CachedUserDirectory) lookup(ctx context.Context, key string) (*domain.User, bool) {
	raw, err := d.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, usecase.ErrCacheMiss) {
			d.logger.Warn().Err(err).Str("key", key).Msg("user cache read failed")
		}
		return nil, false
	}

	var entry cachedUser
	if err := json.Unmarshal(raw, &entry); err != nil || entry.ID == "" {
		d.logger.Warn().Str("key", key).Msg("discarding undecodable cached user")
		if err := d.cache.Delete(ctx, key); err != nil {
			d.logger.Warn().Err(err).Str("key", key).Msg("user cache delete failed")
		}
		return nil, false
	}

	return entry.user(), true
}

func (c cachedUser) user() *domain.User {
	return &domain.User{
		ID:        c.ID,
		Username:  c.Username,
		AccountID: c.AccountID,
		CreatedAt: c.CreatedAt,
	}
}
