package status

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"
)

// UnknownStatusName labels status ids that no longer resolve, e.g. in the history
// of an order whose status was deleted afterwards.
const UnknownStatusName = "unknown status"

var (
	ErrNoInitialStatus         = errors.New("no initial status is configured")
	ErrMultipleInitialStatuses = errors.New("more than one initial status is configured")
	ErrDuplicateStatus         = errors.New("status is listed twice")
)

// Registry is an immutable snapshot of every defined status, sorted by
// (order, name). It is the read model the transition engine works on; callers
// obtain a fresh snapshot after administrators change the configuration.
type Registry struct {
	statuses []*Status
	byID     map[kernel.UUID]*Status
}

// NewRegistry builds a snapshot. Every status must be constructed and ids must be unique.
func NewRegistry(statuses []*Status) (*Registry, error) {
	r := &Registry{
		statuses: make([]*Status, 0, len(statuses)),
		byID:     make(map[kernel.UUID]*Status, len(statuses)),
	}

	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.byID[s.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStatus, s.ID().String())
		}
		r.byID[s.ID()] = s
		r.statuses = append(r.statuses, s)
	}

	slices.SortStableFunc(r.statuses, Compare)
	return r, nil
}

// Compare orders statuses by display order, then name, then id.
func Compare(a, b *Status) int {
	return cmp.Or(
		cmp.Compare(a.Order(), b.Order()),
		cmp.Compare(a.Name(), b.Name()),
		cmp.Compare(a.ID().String(), b.ID().String()),
	)
}

// All returns the statuses in display order. The slice is a copy.
func (r *Registry) All() []*Status {
	return slices.Clone(r.statuses)
}

// Len returns the number of statuses.
func (r *Registry) Len() int {
	return len(r.statuses)
}

// Get resolves id. Missing ids are not an error: history may reference deleted statuses.
func (r *Registry) Get(id kernel.UUID) (*Status, bool) {
	s, ok := r.byID[id]
	return s, ok
}

// Find resolves id or returns an ObjectNotFoundError.
func (r *Registry) Find(id kernel.UUID) (*Status, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("status", id.String())
	}
	return s, nil
}

// NameOf returns the display name of id, or UnknownStatusName.
func (r *Registry) NameOf(id kernel.UUID) string {
	if s, ok := r.byID[id]; ok {
		return s.Name()
	}
	return UnknownStatusName
}

// Initial returns the single entry-point status.
func (r *Registry) Initial() (*Status, error) {
	var initial *Status
	for _, s := range r.statuses {
		if !s.IsInitial() {
			continue
		}
		if initial != nil {
			return nil, ErrMultipleInitialStatuses
		}
		initial = s
	}
	if initial == nil {
		return nil, ErrNoInitialStatus
	}
	return initial, nil
}

// PickupIDs returns the ids of every status flagged as pickup.
func (r *Registry) PickupIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0)
	for _, s := range r.statuses {
		if s.IsPickup() {
			ids = append(ids, s.ID())
		}
	}
	return ids
}

// CheckCandidate validates a status about to be saved against the rest of the
// configuration: at most one status may be initial, and allow-lists may only
// reference statuses that exist.
func (r *Registry) CheckCandidate(candidate *Status) error {
	if err := candidate.Validate(); err != nil {
		return err
	}

	var problems []error
	if candidate.IsInitial() {
		for _, s := range r.statuses {
			if s.IsInitial() && !s.IsEqual(candidate) {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
					"isInitial",
					fmt.Errorf("%w: %q is already initial", ErrMultipleInitialStatuses, s.Name()),
				))
				break
			}
		}
	}

	for _, list := range []kernel.UUIDSet{candidate.AllowedNext(), candidate.AllowedPrevious()} {
		for _, id := range list.Slice() {
			if _, ok := r.byID[id]; !ok {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
					"allowedStatuses",
					errs.NewObjectNotFoundError("status", id.String()),
				))
			}
		}
	}

	return errors.Join(problems...)
}
