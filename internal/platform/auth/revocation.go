package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList is a Redis-backed token deny list keyed by JTI. Entries
// expire with the token itself; a revocation for an expired token is
// useless anyway.
type RevocationList struct {
	rdb *redis.Client
}

func NewRevocationList(rdb *redis.Client) *RevocationList {
	return &RevocationList{rdb: rdb}
}

const revocationPrefix = "revoked_jti:"

// Revoke marks a token id as revoked until its natural expiry.
func (l *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return l.rdb.Set(ctx, revocationPrefix+jti, "1", ttl).Err()
}

// IsRevoked implements RevocationChecker.
func (l *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.rdb.Exists(ctx, revocationPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
