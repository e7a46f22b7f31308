package services

import (
	"errors"
	"fmt"
	"strings"

	"repairdesk/internal/core/domain/model/kernel"
)

var (
	// ErrNothingToSave signals a transition request that changes nothing. It is an
	// informational outcome for the caller, not a failure.
	ErrNothingToSave = errors.New("nothing to save")

	// ErrTransitionNotAllowed is the sentinel behind TransitionNotAllowedError.
	ErrTransitionNotAllowed = errors.New("transition is not allowed")

	// ErrServicesNotConfirmed is the sentinel behind ServicesNotConfirmedError.
	ErrServicesNotConfirmed = errors.New("contracted services are not confirmed")
)

// TransitionNotAllowedError rejects a status change before anything is written.
type TransitionNotAllowedError struct {
	From   kernel.UUID
	To     kernel.UUID
	Reason string
}

func (e *TransitionNotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %s", ErrTransitionNotAllowed, e.From.String(), e.To.String(), e.Reason)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// ServicesNotConfirmedError blocks a notifying transition while contracted services
// are still unconfirmed.
type ServicesNotConfirmedError struct {
	Missing []kernel.UUID
}

func (e *ServicesNotConfirmedError) Error() string {
	ids := make([]string, 0, len(e.Missing))
	for _, id := range e.Missing {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("%s: %s", ErrServicesNotConfirmed, strings.Join(ids, ", "))
}

func (e *ServicesNotConfirmedError) Unwrap() error {
	return ErrServicesNotConfirmed
}
