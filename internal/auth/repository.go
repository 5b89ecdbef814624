// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:"

// Repository records revoked access tokens until they would have expired
// on their own.
type Repository interface {
	Revoke(ctx context.Context, token RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type repository struct {
	rdb redis.Cmdable
}

func NewRepository(rdb redis.Cmdable) Repository {
	return &repository{rdb: rdb}
}

func (r *repository) Revoke(ctx context.Context, token RevokedToken) error {
	ttl := token.TTL()
	if ttl <= 0 {
		return nil
	}

	if err := r.rdb.Set(ctx, blacklistPrefix+token.JTI, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (r *repository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}
