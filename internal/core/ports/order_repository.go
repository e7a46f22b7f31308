// Package ports defines the contracts between the repair order core and its
// infrastructure: persistence, the order number counter, client notification,
// status-change events and attachment storage.
package ports

import (
	"context"
	"errors"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by OrderRepository.Update when the stored
// version no longer matches the version the order was loaded with.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for service order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its first log entry.
	Add(ctx context.Context, aggregate *order.ServiceOrder) error

	// Update persists the order's current fields and appends its unsaved log and edit
	// log entries. The write only succeeds if the stored version equals
	// aggregate.Version(); otherwise it returns ErrConcurrentModification and writes nothing.
	// On success the aggregate is marked persisted with the incremented version.
	//
	// Example:
	//   err := repo.Update(ctx, so)
	//   if errors.Is(err, ports.ErrConcurrentModification) {
	//       // reload and let the user retry
	//   }
	Update(ctx context.Context, aggregate *order.ServiceOrder) error

	// Get retrieves an order with its services, attachments and both histories.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error)
}

// OrderNumberSequence hands out order numbers. Next must be called inside the
// transaction that inserts the order so that a rolled back creation does not burn
// a number and concurrent creators never receive the same one.
type OrderNumberSequence interface {
	Next(ctx context.Context) (order.OrderNumber, error)
}
