// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderNumberSequenceFactory provides access to the order number counter within a transaction.
	OrderNumberSequenceFactory interface {
		OrderNumberSequence() ports.OrderNumberSequence
	}

	// StatusRepoFactory provides access to the status repository within a transaction.
	StatusRepoFactory interface {
		StatusRepository() ports.StatusRepository
	}

	// ClientRepoFactory provides access to the client repository within a transaction.
	ClientRepoFactory interface {
		ClientRepository() ports.ClientRepository
	}

	// OrderUoW manages transactions for service order operations. Opening an order
	// also draws a number from the counter and checks the client.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   number, err := uow.OrderNumberSequence().Next(ctx)
	//   err = uow.OrderRepository().Add(ctx, so)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderNumberSequenceFactory
		ClientRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// StatusUoW manages transactions for status administration.
	StatusUoW interface {
		TxManager
		StatusRepoFactory
	}

	// StatusUoWFactory creates new status unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// ClientUoW manages transactions for client registration.
	ClientUoW interface {
		TxManager
		ClientRepoFactory
	}

	// ClientUoWFactory creates new client unit of work instances.
	ClientUoWFactory interface {
		Create() ClientUoW
	}
)

// StatusRegistry is the cached read model of all statuses.
type StatusRegistry interface {
	Current(ctx context.Context) (*status.Registry, error)
	Invalidate()
}
