package clientrepo

import (
	"context"
	"errors"

	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GORM client repository.
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Add saves a new client.
func (r *GormClientRepository) Add(ctx context.Context, c *client.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a client by ID.
func (r *GormClientRepository) Get(ctx context.Context, id kernel.UUID) (*client.Client, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ClientDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("client", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every client ordered by name.
func (r *GormClientRepository) GetAll(ctx context.Context) ([]*client.Client, error) {
	var dtos []ClientDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	clients := make([]*client.Client, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	return clients, nil
}
