package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrOrderIsLocked is returned when another writer holds the order lock for longer
// than the locker is willing to wait.
var ErrOrderIsLocked = errors.New("order is locked by another operation")

// UnlockFunc releases a lock obtained from OrderLocker.Lock. Releasing a lock that has
// already expired is not an error.
type UnlockFunc func(ctx context.Context) error

// OrderLocker serializes state-changing operations on a single order across service
// instances. Locks on different orders are independent.
type OrderLocker interface {
	Lock(ctx context.Context, orderID kernel.UUID) (UnlockFunc, error)
}
