// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"courierhub/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// BookingRepoFactory provides access to the booking repository within
	// a transaction.
	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	// BookingUoW manages transactions for booking operations.
	BookingUoW interface {
		TxManager
		BookingRepoFactory
	}

	// BookingUoWFactory creates new booking unit of work instances.
	BookingUoWFactory interface {
		Create() BookingUoW
	}
)
