package services

import (
	"errors"
	"strings"
	"time"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
)

// ErrActorIsRequired is returned when Apply is called without an actor.
var ErrActorIsRequired = errors.New("actor is required")

// TransitionRequest is what a caller submits to move an order. Nil optional
// fields leave the current values unchanged.
type TransitionRequest struct {
	StatusID            kernel.UUID
	Observation         string
	TechnicalSolution   *string
	Attachments         []order.Attachment
	ConfirmedServiceIDs *kernel.UUIDSet
	At                  time.Time
}

// TransitionOutcome describes an applied transition.
type TransitionOutcome struct {
	Entry order.LogEntry

	// From is nil when the previous status no longer exists.
	From *status.Status
	To   *status.Status

	StatusChanged bool

	// NotifyRequested is true when the order moved into a status that triggers email.
	NotifyRequested bool
}

// OrderStateMachine applies transitions to service orders. It owns the order's
// status: every change goes through Apply, which validates the move, enforces
// the service confirmation gate and appends exactly one log entry.
//
// Apply checks, in order:
//  1. a final current status accepts no further transitions
//  2. a request that changes neither status, technical solution nor confirmed
//     services is rejected with ErrNothingToSave
//  3. changing confirmed services requires access.UpdateOrder
//  4. a status change must pass the TransitionResolver
//  5. a status change into a triggersEmail status must pass the gate
//
// Nothing is mutated unless every check passes.
type OrderStateMachine struct {
	resolver TransitionResolver
	gate     ServiceConfirmationGate
}

// NewOrderStateMachine creates an OrderStateMachine.
func NewOrderStateMachine() OrderStateMachine {
	return OrderStateMachine{
		resolver: NewTransitionResolver(),
		gate:     NewServiceConfirmationGate(),
	}
}

// Apply validates req against the registry and the actor's capabilities and, if
// allowed, applies it to o.
//
// Returns:
//   - the outcome, including whether a client notification should be sent
//   - ErrNothingToSave for a no-op request
//   - *TransitionNotAllowedError, *ServicesNotConfirmedError or access.ErrForbidden
//     when a rule rejects the request
//
// Example:
//
//	outcome, err := machine.Apply(so, registry, actor, services.TransitionRequest{
//	    StatusID: readyID,
//	    At:       time.Now(),
//	})
//	if errors.Is(err, services.ErrNothingToSave) {
//	    // tell the user there was nothing to save
//	}
func (m OrderStateMachine) Apply(
	o *order.ServiceOrder,
	registry *status.Registry,
	actor access.Actor,
	req TransitionRequest,
) (TransitionOutcome, error) {
	if err := o.Validate(); err != nil {
		return TransitionOutcome{}, err
	}
	if actor == nil {
		return TransitionOutcome{}, ErrActorIsRequired
	}

	currentID := o.StatusID()
	from, _ := registry.Get(currentID)
	if from != nil && from.IsFinal() {
		return TransitionOutcome{}, &TransitionNotAllowedError{From: currentID, To: req.StatusID, Reason: "current status is final"}
	}

	statusChanged := !req.StatusID.IsEqual(currentID)
	solutionChanged := req.TechnicalSolution != nil &&
		strings.TrimSpace(*req.TechnicalSolution) != o.TechnicalSolution()
	confirmedChanged := req.ConfirmedServiceIDs != nil &&
		!req.ConfirmedServiceIDs.Equal(o.ConfirmedServiceIDs())

	if !statusChanged && !solutionChanged && !confirmedChanged {
		return TransitionOutcome{}, ErrNothingToSave
	}

	if confirmedChanged {
		if err := access.Require(actor, access.UpdateOrder); err != nil {
			return TransitionOutcome{}, err
		}
	}

	to := from
	if statusChanged {
		if err := m.resolver.Validate(currentID, registry, actor.Can(access.UnrestrictedTransition), req.StatusID); err != nil {
			return TransitionOutcome{}, err
		}
		to, _ = registry.Get(req.StatusID)

		if to.TriggersEmail() {
			confirmed := o.ConfirmedServiceIDs()
			if req.ConfirmedServiceIDs != nil {
				confirmed = *req.ConfirmedServiceIDs
			}
			if err := m.gate.Check(o.ContractedServiceIDs(), confirmed); err != nil {
				return TransitionOutcome{}, err
			}
		}
	}

	var confirmed *kernel.UUIDSet
	if confirmedChanged {
		confirmed = req.ConfirmedServiceIDs
	}

	entry, err := o.ApplyTransition(order.Transition{
		To:                req.StatusID,
		Responsible:       actor.Name(),
		Observation:       req.Observation,
		At:                req.At,
		TechnicalSolution: req.TechnicalSolution,
		Attachments:       req.Attachments,
		Confirmed:         confirmed,
	})
	if err != nil {
		return TransitionOutcome{}, err
	}

	return TransitionOutcome{
		Entry:           entry,
		From:            from,
		To:              to,
		StatusChanged:   statusChanged,
		NotifyRequested: statusChanged && to.TriggersEmail(),
	}, nil
}
