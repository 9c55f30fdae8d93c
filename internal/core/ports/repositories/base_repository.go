package repositories

import (
	"context"
)

// TxFunc runs inside a unit of work. The repositories it receives are bound to the
// transaction; returning an error rolls everything back.
type TxFunc func(ctx context.Context, repos Repositories) error

// UnitOfWork runs fn atomically: every write it performs is committed together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// Store is the persistence entry point handed to the service container.
type Store interface {
	UnitOfWork

	// Repos returns repositories bound to the pool, for reads outside a transaction.
	Repos() Repositories
}
