package queries

import (
	"context"
	"encoding/json"
	"time"

	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order detail with direct SQL queries.
type GetOrderQueryHandler struct {
	db       *gorm.DB
	registry StatusRegistry
}

// NewGetOrderQueryHandler creates a handler for order detail reads.
func NewGetOrderQueryHandler(db *gorm.DB, registry StatusRegistry) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, registry: registry}
}

// Handle returns the order detail or errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetail, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	registry, err := h.registry.Current(ctx)
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	detail, err := h.readHeader(db, orderID, registry)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	if detail.Services, err = h.readServices(db, orderID); err != nil {
		return nil, err
	}
	if detail.Logs, err = h.readLogs(db, orderID, registry); err != nil {
		return nil, err
	}
	if detail.EditLogs, err = h.readEditLogs(db, orderID); err != nil {
		return nil, err
	}

	return detail, nil
}

func (h GetOrderQueryHandler) readHeader(db *gorm.DB, orderID uuid.UUID, registry *status.Registry) (*OrderDetail, error) {
	rows, err := db.Raw(`
		SELECT`+orderSummaryColumns+`,
			COALESCE(c.email, ''),
			o.collaborator_name,
			o.collaborator_email,
			o.collaborator_phone,
			o.equipment_serial_number,
			o.reported_problem,
			o.technical_solution,
			o.attachments,
			o.version,
			o.updated_at
		FROM service_orders o
		LEFT JOIN clients c ON c.id = o.client_id
		WHERE o.id = ?
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var (
		d                  OrderDetail
		id, clientID, stID uuid.UUID
		seq                int64
		createdAt          time.Time
		updatedAt          time.Time
		attachments        []byte
	)
	err = rows.Scan(
		&id,
		&seq,
		&clientID,
		&d.ClientName,
		&d.Equipment.Type,
		&d.Equipment.Brand,
		&d.Equipment.Model,
		&d.Analyst,
		&stID,
		&createdAt,
		&d.ClientEmail,
		&d.Collaborator.Name,
		&d.Collaborator.Email,
		&d.Collaborator.Phone,
		&d.Equipment.SerialNumber,
		&d.ReportedProblem,
		&d.TechnicalSolution,
		&attachments,
		&d.Version,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if d.ID, err = toKernel(id); err != nil {
		return nil, err
	}
	if d.ClientID, err = toKernel(clientID); err != nil {
		return nil, err
	}
	statusID, err := toKernel(stID)
	if err != nil {
		return nil, err
	}
	number, err := order.NewOrderNumber(seq)
	if err != nil {
		return nil, err
	}

	d.Number = number.String()
	d.Status = newStatusRef(registry, statusID)
	d.EquipmentType = d.Equipment.Type
	d.EquipmentBrand = d.Equipment.Brand
	d.EquipmentModel = d.Equipment.Model
	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()

	d.Attachments = make([]AttachmentView, 0)
	if len(attachments) > 0 {
		if err = json.Unmarshal(attachments, &d.Attachments); err != nil {
			return nil, err
		}
		if d.Attachments == nil {
			d.Attachments = make([]AttachmentView, 0)
		}
	}

	return &d, rows.Err()
}

func (h GetOrderQueryHandler) readServices(db *gorm.DB, orderID uuid.UUID) ([]ServiceView, error) {
	rows, err := db.Raw(`
		SELECT service_id, name, confirmed
		FROM order_services
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]ServiceView, 0)
	for rows.Next() {
		var view ServiceView
		var id uuid.UUID
		if err = rows.Scan(&id, &view.Name, &view.Confirmed); err != nil {
			return nil, err
		}
		if view.ID, err = toKernel(id); err != nil {
			return nil, err
		}
		services = append(services, view)
	}

	return services, rows.Err()
}

func (h GetOrderQueryHandler) readLogs(db *gorm.DB, orderID uuid.UUID, registry *status.Registry) ([]LogView, error) {
	rows, err := db.Raw(`
		SELECT seq, at, responsible, from_status, to_status, observation
		FROM order_logs
		WHERE order_id = ?
		ORDER BY seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]LogView, 0)
	for rows.Next() {
		var view LogView
		var from, to uuid.UUID
		if err = rows.Scan(&view.Seq, &view.At, &view.Responsible, &from, &to, &view.Observation); err != nil {
			return nil, err
		}
		fromID, fromErr := toKernel(from)
		if fromErr != nil {
			return nil, fromErr
		}
		toID, toErr := toKernel(to)
		if toErr != nil {
			return nil, toErr
		}
		view.At = view.At.UTC()
		view.From = newStatusRef(registry, fromID)
		view.To = newStatusRef(registry, toID)
		logs = append(logs, view)
	}

	return logs, rows.Err()
}

func (h GetOrderQueryHandler) readEditLogs(db *gorm.DB, orderID uuid.UUID) ([]EditLogView, error) {
	rows, err := db.Raw(`
		SELECT seq, at, responsible, observation, changes
		FROM order_edit_logs
		WHERE order_id = ?
		ORDER BY seq
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	edits := make([]EditLogView, 0)
	for rows.Next() {
		var view EditLogView
		var changes []byte
		if err = rows.Scan(&view.Seq, &view.At, &view.Responsible, &view.Observation, &changes); err != nil {
			return nil, err
		}
		if err = json.Unmarshal(changes, &view.Changes); err != nil {
			return nil, err
		}
		view.At = view.At.UTC()
		edits = append(edits, view)
	}

	return edits, rows.Err()
}
