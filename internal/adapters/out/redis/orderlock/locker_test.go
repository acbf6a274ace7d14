package orderlock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/redis/orderlock"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T, ttl, wait time.Duration) (*orderlock.RedisOrderLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := orderlock.NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return orderlock.NewRedisOrderLocker(client, ttl, wait), mr
}

func TestRedisOrderLocker_LockAndUnlock(t *testing.T) {
	locker, mr := newLocker(t, time.Minute, 0)
	ctx := context.Background()
	orderID := kernel.NewUUID()

	unlock, err := locker.Lock(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, mr.Exists("fulfillment:order-lock:"+orderID.String()))

	_, err = locker.Lock(ctx, orderID)
	require.ErrorIs(t, err, ports.ErrOrderIsLocked)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("fulfillment:order-lock:"+orderID.String()))

	unlock, err = locker.Lock(ctx, orderID)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestRedisOrderLocker_DifferentOrdersAreIndependent(t *testing.T) {
	locker, _ := newLocker(t, time.Minute, 0)
	ctx := context.Background()

	unlock1, err := locker.Lock(ctx, kernel.NewUUID())
	require.NoError(t, err)
	unlock2, err := locker.Lock(ctx, kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, unlock1(ctx))
	require.NoError(t, unlock2(ctx))
}

func TestRedisOrderLocker_ExpiredLeaseIsNotReleasedByOldOwner(t *testing.T) {
	locker, mr := newLocker(t, time.Second, 0)
	ctx := context.Background()
	orderID := kernel.NewUUID()
	key := "fulfillment:order-lock:" + orderID.String()

	staleUnlock, err := locker.Lock(ctx, orderID)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key))

	_, err = locker.Lock(ctx, orderID)
	require.NoError(t, err)

	require.NoError(t, staleUnlock(ctx))
	assert.True(t, mr.Exists(key), "new owner's lease must survive")
}

func TestRedisOrderLocker_WaitsForRelease(t *testing.T) {
	locker, _ := newLocker(t, time.Minute, 2*time.Second)
	ctx := context.Background()
	orderID := kernel.NewUUID()

	unlock, err := locker.Lock(ctx, orderID)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = unlock(context.Background())
	}()

	second, err := locker.Lock(ctx, orderID)
	require.NoError(t, err)
	require.NoError(t, second(ctx))
}

func TestRedisOrderLocker_SerializesWriters(t *testing.T) {
	locker, _ := newLocker(t, time.Minute, 5*time.Second)
	ctx := context.Background()
	orderID := kernel.NewUUID()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, orderID)
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(5 * time.Millisecond)
			inside.Add(-1)
			assert.NoError(t, unlock(ctx))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestRedisOrderLocker_ContextCancelled(t *testing.T) {
	locker, _ := newLocker(t, time.Minute, time.Minute)
	orderID := kernel.NewUUID()

	_, err := locker.Lock(context.Background(), orderID)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, orderID)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisOrderLocker_InvalidID(t *testing.T) {
	locker, _ := newLocker(t, time.Minute, 0)

	_, err := locker.Lock(context.Background(), kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
