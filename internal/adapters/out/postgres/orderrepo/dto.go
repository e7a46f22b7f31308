// Package orderrepo provides data transfer objects and mapping functions for service
// order persistence. An order spans its own row, its contracted services and two
// insert-only history tables.
package orderrepo

import (
	"time"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for service orders.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	NumberSeq         int64           `gorm:"not null;uniqueIndex"`
	ClientID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Collaborator      CollaboratorDTO `gorm:"embedded;embeddedPrefix:collaborator_"`
	Equipment         EquipmentDTO    `gorm:"embedded;embeddedPrefix:equipment_"`
	ReportedProblem   string          `gorm:"type:text;not null"`
	Analyst           string          `gorm:"type:varchar(255);not null"`
	StatusID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	TechnicalSolution string          `gorm:"type:text"`
	Attachments       []AttachmentDTO `gorm:"serializer:json;type:jsonb"`
	Version           int64           `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Services []ServiceDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for service orders.
func (OrderDTO) TableName() string {
	return "service_orders"
}

// CollaboratorDTO is the embedded on-site contact.
type CollaboratorDTO struct {
	Name  string `gorm:"type:varchar(255)"`
	Email string `gorm:"type:varchar(255)"`
	Phone string `gorm:"type:varchar(64)"`
}

// EquipmentDTO is the embedded equipment description.
type EquipmentDTO struct {
	Type         string `gorm:"type:varchar(255);not null"`
	Brand        string `gorm:"type:varchar(255)"`
	Model        string `gorm:"type:varchar(255)"`
	SerialNumber string `gorm:"type:varchar(255)"`
}

// AttachmentDTO is one attachment reference, stored as JSON on the order row.
type AttachmentDTO struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ServiceDTO is a contracted service snapshot.
type ServiceDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Confirmed bool      `gorm:"not null;default:false"`
}

// TableName specifies the database table name for contracted services.
func (ServiceDTO) TableName() string {
	return "order_services"
}

// LogDTO is one row of the status history. Rows are only ever inserted.
type LogDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_logs_seq"`
	Seq         int       `gorm:"not null;uniqueIndex:idx_order_logs_seq"`
	At          time.Time `gorm:"not null"`
	Responsible string    `gorm:"type:varchar(255);not null"`
	FromStatus  uuid.UUID `gorm:"type:uuid;not null"`
	ToStatus    uuid.UUID `gorm:"type:uuid;not null"`
	Observation string    `gorm:"type:text"`
}

// TableName specifies the database table name for status history.
func (LogDTO) TableName() string {
	return "order_logs"
}

// EditLogDTO is one row of the edit history. Rows are only ever inserted.
type EditLogDTO struct {
	ID          uint                `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_order_edit_logs_seq"`
	Seq         int                 `gorm:"not null;uniqueIndex:idx_order_edit_logs_seq"`
	At          time.Time           `gorm:"not null"`
	Responsible string              `gorm:"type:varchar(255);not null"`
	Observation string              `gorm:"type:text"`
	Changes     []order.FieldChange `gorm:"serializer:json;type:jsonb;not null"`
}

// TableName specifies the database table name for edit history.
func (EditLogDTO) TableName() string {
	return "order_edit_logs"
}

// CounterDTO holds a named monotonically increasing counter.
type CounterDTO struct {
	Name  string `gorm:"type:varchar(64);primaryKey"`
	Value int64  `gorm:"not null"`
}

// TableName specifies the database table name for counters.
func (CounterDTO) TableName() string {
	return "order_counters"
}

// Models lists every table owned by this package, for migrations.
func Models() []any {
	return []any{&OrderDTO{}, &ServiceDTO{}, &LogDTO{}, &EditLogDTO{}, &CounterDTO{}}
}

// fromDomain converts the order row and its services. History rows are mapped
// separately because only unsaved entries are written.
func fromDomain(o *order.ServiceOrder) OrderDTO {
	d := o.Details()
	orderID := o.ID().Bytes()

	attachments := make([]AttachmentDTO, 0, len(o.Attachments()))
	for _, a := range o.Attachments() {
		attachments = append(attachments, AttachmentDTO{Name: a.Name(), URL: a.URL()})
	}

	services := make([]ServiceDTO, 0, len(o.Services()))
	for i, s := range o.Services() {
		services = append(services, ServiceDTO{
			OrderID:   orderID,
			ServiceID: s.ID().Bytes(),
			Position:  i,
			Name:      s.Name(),
			Confirmed: s.Confirmed(),
		})
	}

	return OrderDTO{
		ID:        orderID,
		NumberSeq: o.Number().Sequence(),
		ClientID:  d.ClientID.Bytes(),
		Collaborator: CollaboratorDTO{
			Name:  d.Collaborator.Name,
			Email: d.Collaborator.Email,
			Phone: d.Collaborator.Phone,
		},
		Equipment: EquipmentDTO{
			Type:         d.Equipment.Type,
			Brand:        d.Equipment.Brand,
			Model:        d.Equipment.Model,
			SerialNumber: d.Equipment.SerialNumber,
		},
		ReportedProblem:   d.ReportedProblem,
		Analyst:           o.Analyst(),
		StatusID:          o.StatusID().Bytes(),
		TechnicalSolution: o.TechnicalSolution(),
		Attachments:       attachments,
		Version:           o.Version(),
		CreatedAt:         o.CreatedAt(),
		Services:          services,
	}
}

func logsFromDomain(orderID uuid.UUID, entries []order.LogEntry) []LogDTO {
	dtos := make([]LogDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, LogDTO{
			OrderID:     orderID,
			Seq:         e.Seq(),
			At:          e.At(),
			Responsible: e.Responsible(),
			FromStatus:  e.FromStatus().Bytes(),
			ToStatus:    e.ToStatus().Bytes(),
			Observation: e.Observation(),
		})
	}
	return dtos
}

func editLogsFromDomain(orderID uuid.UUID, entries []order.EditLogEntry) []EditLogDTO {
	dtos := make([]EditLogDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, EditLogDTO{
			OrderID:     orderID,
			Seq:         e.Seq(),
			At:          e.At(),
			Responsible: e.Responsible(),
			Observation: e.Observation(),
			Changes:     e.Changes(),
		})
	}
	return dtos
}

// toDomain rebuilds the aggregate from its rows.
func toDomain(dto OrderDTO, logs []LogDTO, editLogs []EditLogDTO) (*order.ServiceOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	statusID, err := kernel.UUIDFromBytes(dto.StatusID[:])
	if err != nil {
		return nil, err
	}
	number, err := order.NewOrderNumber(dto.NumberSeq)
	if err != nil {
		return nil, err
	}

	services := make([]order.ContractedService, 0, len(dto.Services))
	for _, s := range dto.Services {
		serviceID, idErr := kernel.UUIDFromBytes(s.ServiceID[:])
		if idErr != nil {
			return nil, idErr
		}
		cs, csErr := order.RestoreContractedService(serviceID, s.Name, s.Confirmed)
		if csErr != nil {
			return nil, csErr
		}
		services = append(services, cs)
	}

	attachments := make([]order.Attachment, 0, len(dto.Attachments))
	for _, a := range dto.Attachments {
		att, attErr := order.NewAttachment(a.Name, a.URL)
		if attErr != nil {
			return nil, attErr
		}
		attachments = append(attachments, att)
	}

	history := make([]order.LogEntry, 0, len(logs))
	for _, l := range logs {
		from, fromErr := kernel.UUIDFromBytes(l.FromStatus[:])
		if fromErr != nil {
			return nil, fromErr
		}
		to, toErr := kernel.UUIDFromBytes(l.ToStatus[:])
		if toErr != nil {
			return nil, toErr
		}
		entry, entryErr := order.RestoreLogEntry(l.Seq, l.At, l.Responsible, from, to, l.Observation)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	edits := make([]order.EditLogEntry, 0, len(editLogs))
	for _, e := range editLogs {
		entry, entryErr := order.RestoreEditLogEntry(e.Seq, e.At, e.Responsible, e.Observation, e.Changes)
		if entryErr != nil {
			return nil, entryErr
		}
		edits = append(edits, entry)
	}

	return order.RestoreServiceOrder(order.Snapshot{
		ID:     id,
		Number: number,
		Details: order.Details{
			ClientID: clientID,
			Collaborator: order.Collaborator{
				Name:  dto.Collaborator.Name,
				Email: dto.Collaborator.Email,
				Phone: dto.Collaborator.Phone,
			},
			Equipment: order.Equipment{
				Type:         dto.Equipment.Type,
				Brand:        dto.Equipment.Brand,
				Model:        dto.Equipment.Model,
				SerialNumber: dto.Equipment.SerialNumber,
			},
			ReportedProblem: dto.ReportedProblem,
		},
		Analyst:           dto.Analyst,
		StatusID:          statusID,
		TechnicalSolution: dto.TechnicalSolution,
		Services:          services,
		Attachments:       attachments,
		Logs:              history,
		EditLogs:          edits,
		Version:           dto.Version,
		CreatedAt:         dto.CreatedAt,
	})
}
