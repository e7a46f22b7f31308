package ports

import (
	"context"
	"time"

	"repairdesk/internal/core/domain/model/kernel"
)

// StatusChangedEvent is published after a transition that changed an order's status
// has been committed.
type StatusChangedEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	FromStatus  kernel.UUID
	ToStatus    kernel.UUID
	ToName      string
	Responsible string
	At          time.Time
}

// EventPublisher delivers status-change events to other systems. Publication is
// best-effort: callers log failures and move on.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
