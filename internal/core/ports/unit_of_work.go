package ports

import "context"

// UnitOfWork coordinates a database transaction across repositories.
// Each business operation gets a fresh instance; Begin, Commit and
// Rollback bracket the repository calls made through it.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// BookingRepository returns a repository bound to the current
	// transaction when one is active.
	BookingRepository() BookingRepository
}
