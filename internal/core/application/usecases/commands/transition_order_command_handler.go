package commands

import (
	"context"
	"log/slog"
	"time"

	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/core/domain/services"
	"repairdesk/internal/core/ports"
	"repairdesk/internal/pkg/metrics"
)

// NotificationOutcome tells the caller whether a client email was due and how the
// attempt went. A failed attempt is a warning; the transition stays committed.
type NotificationOutcome struct {
	Attempted bool
	Sent      bool
	Error     string
}

// TransitionOrderResult describes a committed transition.
type TransitionOrderResult struct {
	Entry         order.LogEntry
	StatusChanged bool

	// From and To are nil when they refer to a status that has since been deleted.
	From         *status.Status
	To           *status.Status
	Notification NotificationOutcome
}

// TransitionOrderCommandHandler runs the order state machine inside a unit of
// work, then dispatches the client notification and the status-change event
// once the transaction has committed.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, registryCache, notifier, publisher, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNothingToSave):
//	    // nothing changed
//	case errors.Is(err, services.ErrServicesNotConfirmed):
//	    // confirm the contracted services first
//	case err != nil:
//	    return err
//	}
//	if result.Notification.Attempted && !result.Notification.Sent {
//	    log.Printf("saved, but the client was not notified: %s", result.Notification.Error)
//	}
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   StatusRegistry
	machine    services.OrderStateMachine
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a transition handler. publisher may be
// nil, in which case no events are published.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	registry StatusRegistry,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		machine:    services.NewOrderStateMachine(),
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger.With("component", "TransitionOrderCommandHandler"),
	}
}

// Handle validates and applies the transition. Validation and gate failures return
// before anything is written; a stale version returns ports.ErrConcurrentModification
// and rolls back.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (TransitionOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOrderResult{}, err
	}

	reg, err := h.registry.Current(ctx)
	if err != nil {
		return TransitionOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return TransitionOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	so, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return TransitionOrderResult{}, err
	}

	changes := cmd.Changes()
	outcome, err := h.machine.Apply(so, reg, cmd.Actor(), services.TransitionRequest{
		StatusID:            cmd.StatusID(),
		Observation:         cmd.Observation(),
		TechnicalSolution:   changes.TechnicalSolution,
		Attachments:         changes.Attachments,
		ConfirmedServiceIDs: changes.ConfirmedServiceIDs,
		At:                  time.Now(),
	})
	if err != nil {
		return TransitionOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, so); err != nil {
		return TransitionOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionOrderResult{}, err
	}

	result := TransitionOrderResult{
		Entry:         outcome.Entry,
		StatusChanged: outcome.StatusChanged,
		From:          outcome.From,
		To:            outcome.To,
	}

	if outcome.StatusChanged {
		metrics.TransitionsTotal.WithLabelValues(outcome.To.Name()).Inc()
	}
	if outcome.NotifyRequested {
		result.Notification = h.notify(ctx, so, outcome.To)
	}
	if outcome.StatusChanged {
		h.publish(ctx, so, outcome)
	}

	return result, nil
}

func (h TransitionOrderCommandHandler) notify(ctx context.Context, so *order.ServiceOrder, to *status.Status) NotificationOutcome {
	res := h.notifier.Notify(ctx, so.ID(), to.Name())
	if !res.Sent {
		metrics.NotificationsTotal.WithLabelValues(metrics.NotificationFailed).Inc()
		h.logger.Warn("client notification failed",
			"order", so.Number().String(),
			"status", to.Name(),
			"error", res.Error,
		)
		return NotificationOutcome{Attempted: true, Error: res.Error}
	}

	metrics.NotificationsTotal.WithLabelValues(metrics.NotificationSent).Inc()
	return NotificationOutcome{Attempted: true, Sent: true}
}

func (h TransitionOrderCommandHandler) publish(ctx context.Context, so *order.ServiceOrder, outcome services.TransitionOutcome) {
	if h.publisher == nil {
		return
	}

	event := ports.StatusChangedEvent{
		OrderID:     so.ID(),
		OrderNumber: so.Number().String(),
		FromStatus:  outcome.Entry.FromStatus(),
		ToStatus:    outcome.Entry.ToStatus(),
		ToName:      outcome.To.Name(),
		Responsible: outcome.Entry.Responsible(),
		At:          outcome.Entry.At(),
	}
	if err := h.publisher.PublishStatusChanged(ctx, event); err != nil {
		metrics.EventPublishFailuresTotal.Inc()
		h.logger.Warn("status change event not published",
			"order", event.OrderNumber,
			"error", err,
		)
	}
}
