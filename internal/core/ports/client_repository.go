package ports

import (
	"context"

	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"
)

// ClientRepository defines the persistence contract for clients.
type ClientRepository interface {
	Add(ctx context.Context, c *client.Client) error
	Get(ctx context.Context, id kernel.UUID) (*client.Client, error)
	GetAll(ctx context.Context) ([]*client.Client, error)
}
