package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	revokedKeyPrefix = "session:revoked:"
	// revokedTTL bounds entries for tokens without an expiry.
	revokedTTL = 24 * time.Hour
)

// Store remembers signed-out token ids in Redis until the token would have
// expired anyway.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a new revocation store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = revokedTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Revoke marks tokenID as signed out until expiresAt.
func (s *Store) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := s.ttl
	if !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
		if ttl <= 0 {
			return nil
		}
	}
	return s.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// Revoked reports whether tokenID was signed out.
func (s *Store) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
