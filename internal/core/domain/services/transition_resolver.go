package services

import (
	"slices"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
)

// Candidate is a status an order may move to next. Backward candidates come from
// the current status' allowedPrevious list and are shown as "back" actions.
type Candidate struct {
	Status       *status.Status
	IsBackButton bool
}

// TransitionResolver computes which statuses an order may move to from its current
// status, and validates proposed moves server-side.
//
// Rules:
//   - a final current status yields no candidates for anyone
//   - an unrestricted actor may reach every status except the current one
//   - a restricted actor may reach allowedNext (forward) and allowedPrevious
//     (backward); a status in both lists is offered once, as backward
//   - ids that no longer resolve are skipped
//   - backward candidates sort before forward ones, each group by display order
//
// A restricted actor facing a status with two empty lists gets no candidates;
// the order stays where it is until an administrator moves it or rewires the status.
type TransitionResolver struct{}

// NewTransitionResolver creates a TransitionResolver.
func NewTransitionResolver() TransitionResolver {
	return TransitionResolver{}
}

// Resolve returns the ordered candidates for an order currently in currentID.
//
// Parameters:
//   - currentID: the order's status; it may have been deleted since
//   - registry: the status snapshot
//   - unrestricted: whether the actor bypasses allow-lists
//
// Example:
//
//	candidates := resolver.Resolve(so.StatusID(), registry, actor.Can(access.UnrestrictedTransition))
//	for _, c := range candidates {
//	    fmt.Println(c.Status.Name(), c.IsBackButton)
//	}
func (r TransitionResolver) Resolve(currentID kernel.UUID, registry *status.Registry, unrestricted bool) []Candidate {
	current, known := registry.Get(currentID)
	if known && current.IsFinal() {
		return []Candidate{}
	}

	if unrestricted {
		candidates := make([]Candidate, 0, registry.Len())
		for _, s := range registry.All() {
			if s.ID().IsEqual(currentID) {
				continue
			}
			back := known && current.AllowedPrevious().Contains(s.ID())
			candidates = append(candidates, Candidate{Status: s, IsBackButton: back})
		}
		sortCandidates(candidates)
		return candidates
	}

	if !known {
		return []Candidate{}
	}

	seen := make(map[kernel.UUID]struct{})
	candidates := make([]Candidate, 0, current.AllowedPrevious().Len()+current.AllowedNext().Len())
	collect := func(ids kernel.UUIDSet, back bool) {
		for _, id := range ids.Slice() {
			if id.IsEqual(currentID) {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			s, ok := registry.Get(id)
			if !ok {
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, Candidate{Status: s, IsBackButton: back})
		}
	}
	collect(current.AllowedPrevious(), true)
	collect(current.AllowedNext(), false)

	sortCandidates(candidates)
	return candidates
}

// Validate returns nil when targetID is among the resolved candidates and a
// *TransitionNotAllowedError otherwise.
func (r TransitionResolver) Validate(currentID kernel.UUID, registry *status.Registry, unrestricted bool, targetID kernel.UUID) error {
	reject := func(reason string) error {
		return &TransitionNotAllowedError{From: currentID, To: targetID, Reason: reason}
	}

	if targetID.IsEqual(currentID) {
		return reject("order is already in this status")
	}
	if _, ok := registry.Get(targetID); !ok {
		return reject("target status does not exist")
	}
	if current, ok := registry.Get(currentID); ok && current.IsFinal() {
		return reject("current status is final")
	}

	for _, c := range r.Resolve(currentID, registry, unrestricted) {
		if c.Status.ID().IsEqual(targetID) {
			return nil
		}
	}
	return reject("target status is not reachable from the current status")
}

func sortCandidates(candidates []Candidate) {
	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		if a.IsBackButton != b.IsBackButton {
			if a.IsBackButton {
				return -1
			}
			return 1
		}
		return status.Compare(a.Status, b.Status)
	})
}
