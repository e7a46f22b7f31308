package ports

import (
	"context"

	"repairdesk/internal/core/domain/model/kernel"
)

// NotificationResult reports the outcome of a client notification. A failed
// notification never undoes the transition that requested it.
type NotificationResult struct {
	Sent  bool
	Error string
}

// Notifier asks the notification service to email the client about an order's
// new status. Implementations apply their own timeout and report transport and
// service failures through the result instead of an error.
type Notifier interface {
	Notify(ctx context.Context, orderID kernel.UUID, statusName string) NotificationResult
}
