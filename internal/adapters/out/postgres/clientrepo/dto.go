// Package clientrepo persists clients.
package clientrepo

import (
	"time"

	"repairdesk/internal/core/domain/model/client"
	"repairdesk/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ClientDTO represents the database structure for clients.
type ClientDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(64)"`
	CreatedAt time.Time
}

// TableName specifies the database table name for clients.
func (ClientDTO) TableName() string {
	return "clients"
}

func fromDomain(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:    c.ID().Bytes(),
		Name:  c.Name(),
		Email: c.Email(),
		Phone: c.Phone(),
	}
}

func toDomain(dto ClientDTO) (*client.Client, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return client.NewClient(id, dto.Name, dto.Email, dto.Phone)
}
