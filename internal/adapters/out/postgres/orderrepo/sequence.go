package orderrepo

import (
	"context"

	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

const serviceOrderCounter = "service_order"

// GormOrderNumberSequence hands out order numbers from a counter row. The row is
// seeded from the highest stored number the first time it is needed, so orders
// imported before the counter existed are never renumbered.
type GormOrderNumberSequence struct {
	db *gorm.DB
}

// NewGormOrderNumberSequence creates a sequence bound to db. Pass the unit of
// work transaction so the number is released if the creation rolls back.
func NewGormOrderNumberSequence(db *gorm.DB) *GormOrderNumberSequence {
	return &GormOrderNumberSequence{db: db}
}

// Next increments the counter and returns the new order number. The UPDATE holds
// the counter row lock until the surrounding transaction ends, which serialises
// concurrent creators.
func (s *GormOrderNumberSequence) Next(ctx context.Context) (order.OrderNumber, error) {
	db := s.db.WithContext(ctx)

	seed := db.Exec(
		`INSERT INTO order_counters (name, value)
		 SELECT ?, COALESCE(MAX(number_seq), 0) FROM service_orders
		 ON CONFLICT (name) DO NOTHING`,
		serviceOrderCounter,
	)
	if seed.Error != nil {
		return order.OrderNumber{}, seed.Error
	}

	var next int64
	err := db.Raw(
		`UPDATE order_counters SET value = value + 1 WHERE name = ? RETURNING value`,
		serviceOrderCounter,
	).Scan(&next).Error
	if err != nil {
		if isUniqueViolation(err) {
			return order.OrderNumber{}, errs.NewConflictError("order number", err)
		}
		return order.OrderNumber{}, err
	}

	return order.NewOrderNumber(next)
}
