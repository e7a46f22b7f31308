// Package queries contains read operations for the repair desk. Handlers read
// with raw SQL and resolve status names through the cached status registry, so a
// deleted status renders as "unknown status" instead of failing the read.
package queries

import (
	"context"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// StatusRegistry provides the current status snapshot.
type StatusRegistry interface {
	Current(ctx context.Context) (*status.Registry, error)
}

// StatusView is the read model of a status definition.
type StatusView struct {
	ID              kernel.UUID
	Name            string
	Order           int
	Color           string
	Icon            string
	IsInitial       bool
	IsFinal         bool
	IsPickup        bool
	TriggersEmail   bool
	AllowedNext     []kernel.UUID
	AllowedPrevious []kernel.UUID
}

func newStatusView(s *status.Status) StatusView {
	flags := s.Flags()
	return StatusView{
		ID:              s.ID(),
		Name:            s.Name(),
		Order:           s.Order(),
		Color:           s.Color(),
		Icon:            s.Icon(),
		IsInitial:       flags.Initial,
		IsFinal:         flags.Final,
		IsPickup:        flags.Pickup,
		TriggersEmail:   flags.TriggersEmail,
		AllowedNext:     s.AllowedNext().Slice(),
		AllowedPrevious: s.AllowedPrevious().Slice(),
	}
}

// StatusRef names a status referenced by an order or a log entry.
type StatusRef struct {
	ID    kernel.UUID
	Name  string
	Color string
}

func newStatusRef(registry *status.Registry, id kernel.UUID) StatusRef {
	ref := StatusRef{ID: id, Name: registry.NameOf(id)}
	if s, ok := registry.Get(id); ok {
		ref.Color = s.Color()
	}
	return ref
}

func toKernel(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
