package status

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"
)

var (
	// ErrStatusIsNotConstructed is returned when a Status did not come from NewStatus.
	ErrStatusIsNotConstructed = errors.New("Status must be created via NewStatus constructor")
)

// Flags are the behavioural switches an administrator sets on a status.
// They are the only source of truth for terminal, pickup and notification
// behaviour; status names never drive logic.
type Flags struct {
	// Initial marks the entry point for newly created orders.
	Initial bool

	// Final marks a terminal stage. No transition leaves a final status.
	Final bool

	// Pickup marks "ready for client pickup" and drives the pickup listing.
	Pickup bool

	// TriggersEmail fires a client notification when an order moves into the status.
	TriggersEmail bool
}

// Definition carries the administrator-editable attributes of a status.
type Definition struct {
	Name  string
	Order int
	Color string
	Icon  string
	Flags Flags

	// AllowedNext lists statuses reachable forward from this one.
	AllowedNext kernel.UUIDSet

	// AllowedPrevious lists statuses reachable backward ("undo") from this one.
	AllowedPrevious kernel.UUIDSet
}

// Status is a named stage in the service-order lifecycle. Statuses are data, not
// code: administrators create, rename, reorder and rewire them at runtime, and the
// transition engine reads them through a Registry snapshot.
//
// Status follows these invariants:
//   - id is stable across renames, so orders and log entries refer to it safely
//   - name and color are required, order is non-negative
//   - a status never lists itself in its own allow-lists
type Status struct {
	id         kernel.UUID
	definition Definition

	isConstructed bool
}

// NewStatus validates def and builds a Status.
//
// Parameters:
//   - id: stable identifier
//   - def: editable attributes; names and colors are trimmed
//
// Returns:
//   - *Status when every rule holds
//   - a joined validation error otherwise
//
// Example:
//
//	received, err := status.NewStatus(kernel.NewUUID(), status.Definition{
//	    Name:  "Received",
//	    Order: 0,
//	    Color: "#1e88e5",
//	    Flags: status.Flags{Initial: true},
//	})
func NewStatus(id kernel.UUID, def Definition) (*Status, error) {
	s := &Status{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setDefinition(def),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Status was built through NewStatus.
func (s *Status) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStatusIsNotConstructed
	}
	return nil
}

// Redefine replaces the editable attributes, keeping the id. On error the status
// is left untouched.
func (s *Status) Redefine(def Definition) error {
	candidate := &Status{id: s.id, isConstructed: true}
	if err := candidate.setDefinition(def); err != nil {
		return err
	}
	s.definition = candidate.definition
	return nil
}

// ForgetStatus removes id from both allow-lists and reports whether anything changed.
// Used when the referenced status is deleted.
func (s *Status) ForgetStatus(id kernel.UUID) bool {
	changed := false
	if s.definition.AllowedNext.Contains(id) {
		s.definition.AllowedNext = without(s.definition.AllowedNext, id)
		changed = true
	}
	if s.definition.AllowedPrevious.Contains(id) {
		s.definition.AllowedPrevious = without(s.definition.AllowedPrevious, id)
		changed = true
	}
	return changed
}

func (s *Status) ID() kernel.UUID                 { return s.id }
func (s *Status) Name() string                    { return s.definition.Name }
func (s *Status) Order() int                      { return s.definition.Order }
func (s *Status) Color() string                   { return s.definition.Color }
func (s *Status) Icon() string                    { return s.definition.Icon }
func (s *Status) Flags() Flags                    { return s.definition.Flags }
func (s *Status) IsInitial() bool                 { return s.definition.Flags.Initial }
func (s *Status) IsFinal() bool                   { return s.definition.Flags.Final }
func (s *Status) IsPickup() bool                  { return s.definition.Flags.Pickup }
func (s *Status) TriggersEmail() bool             { return s.definition.Flags.TriggersEmail }
func (s *Status) AllowedNext() kernel.UUIDSet     { return s.definition.AllowedNext }
func (s *Status) AllowedPrevious() kernel.UUIDSet { return s.definition.AllowedPrevious }

// Definition returns a copy of the editable attributes.
func (s *Status) Definition() Definition {
	return s.definition
}

// IsEqual compares statuses by id.
func (s *Status) IsEqual(other *Status) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Status) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Status) setDefinition(def Definition) error {
	def.Name = strings.TrimSpace(def.Name)
	def.Color = strings.TrimSpace(def.Color)
	def.Icon = strings.TrimSpace(def.Icon)

	var problems []error
	if def.Name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("name"))
	}
	if def.Color == "" {
		problems = append(problems, errs.NewValueIsRequiredError("color"))
	}
	if def.Order < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("order", def.Order, 0, math.MaxInt32))
	}
	if def.AllowedNext.Contains(s.id) || def.AllowedPrevious.Contains(s.id) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"allowed statuses",
			fmt.Errorf("status %s cannot list itself", s.id.String()),
		))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	s.definition = def
	return nil
}

func without(set kernel.UUIDSet, id kernel.UUID) kernel.UUIDSet {
	kept := make([]kernel.UUID, 0, set.Len())
	for _, candidate := range set.Slice() {
		if !candidate.IsEqual(id) {
			kept = append(kept, candidate)
		}
	}
	return kernel.NewUUIDSet(kept...)
}
