// Package statusrepo persists status definitions. Allow-lists are stored as
// Postgres text arrays of status ids.
package statusrepo

import (
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StatusDTO represents the database structure for status definitions. The
// partial unique index on is_initial allows at most one initial status.
type StatusDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name            string         `gorm:"type:varchar(255);not null"`
	SortOrder       int            `gorm:"type:int;not null;default:0"`
	Color           string         `gorm:"type:varchar(64);not null"`
	Icon            string         `gorm:"type:varchar(64)"`
	IsInitial       bool           `gorm:"not null;default:false;uniqueIndex:idx_statuses_single_initial,where:is_initial"`
	IsFinal         bool           `gorm:"not null;default:false"`
	IsPickup        bool           `gorm:"not null;default:false"`
	TriggersEmail   bool           `gorm:"not null;default:false"`
	AllowedNext     pq.StringArray `gorm:"type:text[]"`
	AllowedPrevious pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for status definitions.
func (StatusDTO) TableName() string {
	return "statuses"
}

func fromDomain(s *status.Status) StatusDTO {
	flags := s.Flags()
	return StatusDTO{
		ID:              s.ID().Bytes(),
		Name:            s.Name(),
		SortOrder:       s.Order(),
		Color:           s.Color(),
		Icon:            s.Icon(),
		IsInitial:       flags.Initial,
		IsFinal:         flags.Final,
		IsPickup:        flags.Pickup,
		TriggersEmail:   flags.TriggersEmail,
		AllowedNext:     pq.StringArray(s.AllowedNext().Strings()),
		AllowedPrevious: pq.StringArray(s.AllowedPrevious().Strings()),
	}
}

func toDomain(dto StatusDTO) (*status.Status, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	next, err := kernel.UUIDSetFromStrings(dto.AllowedNext)
	if err != nil {
		return nil, err
	}
	previous, err := kernel.UUIDSetFromStrings(dto.AllowedPrevious)
	if err != nil {
		return nil, err
	}

	return status.NewStatus(id, status.Definition{
		Name:  dto.Name,
		Order: dto.SortOrder,
		Color: dto.Color,
		Icon:  dto.Icon,
		Flags: status.Flags{
			Initial:       dto.IsInitial,
			Final:         dto.IsFinal,
			Pickup:        dto.IsPickup,
			TriggersEmail: dto.TriggersEmail,
		},
		AllowedNext:     next,
		AllowedPrevious: previous,
	})
}
