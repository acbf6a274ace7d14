// Package orderlock serializes writes to a single order across service instances
// with a Redis lease per order id.
package orderlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "fulfillment:order-lock:"
	pollInterval = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an expired
// lease taken over by another writer is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOrderLocker implements ports.OrderLocker with SET NX PX leases.
type RedisOrderLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisOrderLocker creates a locker. ttl bounds how long a crashed writer can block
// an order; wait bounds how long Lock polls for a busy order.
func NewRedisOrderLocker(client redis.UniversalClient, ttl, wait time.Duration) *RedisOrderLocker {
	return &RedisOrderLocker{client: client, ttl: ttl, wait: wait}
}

// NewClient parses a redis:// URL into a client.
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Lock acquires the lease for orderID, polling until it is free, the wait elapses
// (ports.ErrOrderIsLocked) or ctx ends.
func (l *RedisOrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (ports.UnlockFunc, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	key := keyPrefix + orderID.String()
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if acquired {
			return l.unlockFunc(key, token), nil
		}

		if !time.Now().Before(deadline) {
			return nil, ports.ErrOrderIsLocked
		}

		timer := time.NewTimer(pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisOrderLocker) unlockFunc(key, token string) ports.UnlockFunc {
	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}
}
