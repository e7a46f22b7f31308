package ports

import (
	"context"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
)

// StatusRepository defines the persistence contract for status definitions.
type StatusRepository interface {
	Add(ctx context.Context, s *status.Status) error
	Update(ctx context.Context, s *status.Status) error

	// Delete removes a status. Logs and orders that reference it are left untouched.
	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*status.Status, error)

	// GetAll returns every status; callers sort through status.NewRegistry.
	GetAll(ctx context.Context) ([]*status.Status, error)
}
