package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore tracks bearer tokens that were invalidated by logout
// before their natural expiry. Keys carry a TTL equal to the remaining
// token lifetime, so the set cleans itself up.
type RevocationStore struct {
	rdb *redis.Client
}

func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked_token:" + hex.EncodeToString(sum[:])
}

// Revoke marks a token as invalid for the given remaining lifetime.
func (s *RevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	if ttl <= 0 {
		// Already expired, nothing to track.
		return nil
	}
	return s.rdb.Set(ctx, tokenKey(token), "1", ttl).Err()
}

// IsRevoked reports whether a token was invalidated by logout.
// Redis being unreachable fails open: the token stays valid until expiry.
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if s == nil || s.rdb == nil {
		return false, nil
	}
	n, err := s.rdb.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
