package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "revoked_token:"

// RevocationList tracks tokens invalidated before their natural expiry.
type RevocationList interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevocationList struct {
	client *redis.Client
}

// NewRedisRevocationList stores revoked token IDs in Redis, keyed by jti with
// a TTL matching the token's remaining lifetime. A nil client yields a no-op
// list so the service degrades to stateless JWTs when Redis is unavailable.
func NewRedisRevocationList(client *redis.Client) RevocationList {
	if client == nil {
		return noopRevocationList{}
	}
	return &redisRevocationList{client: client}
}

func (l *redisRevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revocationKeyPrefix+jti, "1", ttl).Err()
}

func (l *redisRevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.client.Exists(ctx, revocationKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type noopRevocationList struct{}

func (noopRevocationList) Revoke(context.Context, string, time.Time) error { return nil }

func (noopRevocationList) IsRevoked(context.Context, string) (bool, error) { return false, nil }
