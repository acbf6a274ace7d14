package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork wraps one database transaction. An order update writes the order row,
// its product rows and new history rows, and those must land together or not at all.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback discards pending writes. Calling it after Commit returns an error
	// that callers deferring it may ignore.
	Rollback(ctx context.Context) error

	// OrderRepository is bound to the active transaction, or to the plain
	// connection before Begin.
	OrderRepository() OrderRepository
}
