package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListClientsQueryHandler reads clients with a direct SQL query.
type ListClientsQueryHandler struct {
	db *gorm.DB
}

// NewListClientsQueryHandler creates a handler for client listing.
func NewListClientsQueryHandler(db *gorm.DB) ListClientsQueryHandler {
	return ListClientsQueryHandler{db: db}
}

// Handle returns every client ordered by name.
func (h ListClientsQueryHandler) Handle(ctx context.Context, query ListClientsQuery) ([]ClientView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, email, phone
		FROM clients
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]ClientView, 0)
	for rows.Next() {
		var view ClientView
		var id uuid.UUID
		if err = rows.Scan(&id, &view.Name, &view.Email, &view.Phone); err != nil {
			return nil, err
		}
		if view.ID, err = toKernel(id); err != nil {
			return nil, err
		}
		clients = append(clients, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}
