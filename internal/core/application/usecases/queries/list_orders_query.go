package queries

import (
	"errors"
	"time"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists service orders, newest number first.
//
// Example:
//
//	query := NewListOrdersQuery(true)
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s %s (%s)\n", o.Number, o.ClientName, o.Status.Name)
//	}
type ListOrdersQuery struct {
	pickupOnly bool

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates the query. With pickupOnly set, only orders whose
// current status is flagged as a pickup status are returned.
func NewListOrdersQuery(pickupOnly bool) ListOrdersQuery {
	return ListOrdersQuery{pickupOnly: pickupOnly, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) PickupOnly() bool { return q.pickupOnly }

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID             kernel.UUID
	Number         string
	ClientID       kernel.UUID
	ClientName     string
	EquipmentType  string
	EquipmentBrand string
	EquipmentModel string
	Analyst        string
	Status         StatusRef
	CreatedAt      time.Time
}
