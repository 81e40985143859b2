package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// EphemeralStoreImpl implements domain.EphemeralStore using Redis
type EphemeralStoreImpl struct {
	client *redis.Client
	prefix string
}

// NewEphemeralStore creates a Redis-backed store for single-use values
func NewEphemeralStore(client *redis.Client) domain.EphemeralStore {
	return &EphemeralStoreImpl{client: client, prefix: "eph:"}
}

// Put implements domain.EphemeralStore
func (s *EphemeralStoreImpl) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Take implements domain.EphemeralStore
func (s *EphemeralStoreImpl) Take(ctx context.Context, key string) (string, error) {
	value, err := s.client.GetDel(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrResourceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}
