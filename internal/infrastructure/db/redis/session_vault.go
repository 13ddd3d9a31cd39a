package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/collabhub/marketplace-api/internal/core/domain"
)

// SessionVault is the Redis-backed per-device key-value storage behind the
// session service. Key format: session:<device_id>:<key>
type SessionVault struct {
	client *redis.Client
}

// NewSessionVault creates a SessionVault wrapping the given Redis client.
func NewSessionVault(client *redis.Client) *SessionVault {
	return &SessionVault{client: client}
}

func (v *SessionVault) Get(ctx context.Context, deviceID, key string) (string, error) {
	val, err := v.client.Get(ctx, v.key(deviceID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("vault get %s: %w", key, err)
	}
	return val, nil
}

func (v *SessionVault) Set(ctx context.Context, deviceID, key, value string) error {
	if err := v.client.Set(ctx, v.key(deviceID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("vault set %s: %w", key, err)
	}
	return nil
}

// Delete removes the keys; missing keys are silently skipped, which makes
// logout idempotent.
func (v *SessionVault) Delete(ctx context.Context, deviceID string, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = v.key(deviceID, k)
	}
	if err := v.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("vault delete: %w", err)
	}
	return nil
}

func (v *SessionVault) key(deviceID, key string) string {
	return fmt.Sprintf("session:%s:%s", deviceID, key)
}
