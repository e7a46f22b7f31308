package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/ports"
	"repairdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order with its services and initial history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.ServiceOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			return err
		}
		return r.appendHistory(tx, dto.ID, aggregate)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictError("order "+aggregate.Number().String(), err)
		}
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Update writes the order row if the stored version still matches, then
// appends the unsaved history.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.ServiceOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1
	dto.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, expected).
			Select("*").
			Omit("id", "number_seq", "created_at", clause.Associations).
			Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.missingOrStale(tx, aggregate.ID())
		}

		for _, s := range dto.Services {
			if err := tx.Model(&ServiceDTO{}).
				Where("order_id = ? AND service_id = ?", s.OrderID, s.ServiceID).
				Update("confirmed", s.Confirmed).Error; err != nil {
				return err
			}
		}

		return r.appendHistory(tx, dto.ID, aggregate)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ports.ErrConcurrentModification, err)
		}
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Get retrieves an order by ID with its services and both histories.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ServiceOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto OrderDTO
	err := db.Preload("Services", func(q *gorm.DB) *gorm.DB {
		return q.Order("position")
	}).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var logs []LogDTO
	if err := db.Where("order_id = ?", dto.ID).Order("seq").Find(&logs).Error; err != nil {
		return nil, err
	}

	var editLogs []EditLogDTO
	if err := db.Where("order_id = ?", dto.ID).Order("seq").Find(&editLogs).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, logs, editLogs)
}

func (r *GormOrderRepository) appendHistory(tx *gorm.DB, orderID uuid.UUID, aggregate *order.ServiceOrder) error {
	if logs := logsFromDomain(orderID, aggregate.UnsavedLogs()); len(logs) > 0 {
		if err := tx.Create(&logs).Error; err != nil {
			return err
		}
	}
	if edits := editLogsFromDomain(orderID, aggregate.UnsavedEditLogs()); len(edits) > 0 {
		if err := tx.Create(&edits).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) missingOrStale(tx *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := tx.Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return ports.ErrConcurrentModification
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
