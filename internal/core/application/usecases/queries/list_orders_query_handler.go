package queries

import (
	"context"
	"database/sql"
	"time"

	"repairdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const orderSummaryColumns = `
	o.id,
	o.number_seq,
	o.client_id,
	COALESCE(c.name, ''),
	o.equipment_type,
	o.equipment_brand,
	o.equipment_model,
	o.analyst,
	o.status_id,
	o.created_at`

// ListOrdersQueryHandler lists orders with a direct SQL query joined to clients.
type ListOrdersQueryHandler struct {
	db       *gorm.DB
	registry StatusRegistry
}

// NewListOrdersQueryHandler creates a handler for order listing.
func NewListOrdersQueryHandler(db *gorm.DB, registry StatusRegistry) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, registry: registry}
}

// Handle returns the matching orders. The pickup filter is driven by the
// isPickupStatus flag of the current registry, never by status names.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	registry, err := h.registry.Current(ctx)
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var rows *sql.Rows
	if query.PickupOnly() {
		pickup := registry.PickupIDs()
		if len(pickup) == 0 {
			return []OrderSummary{}, nil
		}
		ids := make([]uuid.UUID, 0, len(pickup))
		for _, id := range pickup {
			ids = append(ids, id.Bytes())
		}
		rows, err = db.Raw(`
			SELECT`+orderSummaryColumns+`
			FROM service_orders o
			LEFT JOIN clients c ON c.id = o.client_id
			WHERE o.status_id IN ?
			ORDER BY o.number_seq DESC
		`, ids).Rows()
	} else {
		rows, err = db.Raw(`
			SELECT` + orderSummaryColumns + `
			FROM service_orders o
			LEFT JOIN clients c ON c.id = o.client_id
			ORDER BY o.number_seq DESC
		`).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			summary            OrderSummary
			id, clientID, stID uuid.UUID
			seq                int64
			createdAt          time.Time
		)
		err = rows.Scan(
			&id,
			&seq,
			&clientID,
			&summary.ClientName,
			&summary.EquipmentType,
			&summary.EquipmentBrand,
			&summary.EquipmentModel,
			&summary.Analyst,
			&stID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = toKernel(id); err != nil {
			return nil, err
		}
		if summary.ClientID, err = toKernel(clientID); err != nil {
			return nil, err
		}
		statusID, idErr := toKernel(stID)
		if idErr != nil {
			return nil, idErr
		}
		number, numErr := order.NewOrderNumber(seq)
		if numErr != nil {
			return nil, numErr
		}

		summary.Number = number.String()
		summary.Status = newStatusRef(registry, statusID)
		summary.CreatedAt = createdAt.UTC()
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
