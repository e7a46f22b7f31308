package queries

import (
	"errors"
	"time"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its services and both histories.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates the query for orderID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// OrderDetail is the full read model of a service order.
type OrderDetail struct {
	OrderSummary

	ClientEmail       string
	Collaborator      order.Collaborator
	Equipment         order.Equipment
	ReportedProblem   string
	TechnicalSolution string
	Attachments       []AttachmentView
	Services          []ServiceView
	Logs              []LogView
	EditLogs          []EditLogView
	Version           int64
	UpdatedAt         time.Time
}

// AttachmentView is an attachment reference.
type AttachmentView struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ServiceView is a contracted service with its confirmation flag.
type ServiceView struct {
	ID        kernel.UUID
	Name      string
	Confirmed bool
}

// LogView is one status history entry. From and To carry "unknown status" when
// the referenced status was deleted.
type LogView struct {
	Seq         int
	At          time.Time
	Responsible string
	From        StatusRef
	To          StatusRef
	Observation string
}

// EditLogView is one detail edit with its field changes.
type EditLogView struct {
	Seq         int
	At          time.Time
	Responsible string
	Observation string
	Changes     []order.FieldChange
}
