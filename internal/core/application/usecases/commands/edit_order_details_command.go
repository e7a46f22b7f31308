package commands

import (
	"errors"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/guard"
)

var ErrEditOrderDetailsCommandIsNotConstructed = errors.New(
	"EditOrderDetailsCommand must be created via NewEditOrderDetailsCommand constructor",
)

// DetailsPatch lists the descriptive fields to overwrite. Nil fields keep their
// current value; a pointer to an empty string clears an optional field.
type DetailsPatch struct {
	ClientID          *kernel.UUID
	CollaboratorName  *string
	CollaboratorEmail *string
	CollaboratorPhone *string
	EquipmentType     *string
	EquipmentBrand    *string
	EquipmentModel    *string
	EquipmentSerial   *string
	ReportedProblem   *string
}

// IsEmpty reports whether the patch names no field at all.
func (p DetailsPatch) IsEmpty() bool {
	return p == DetailsPatch{}
}

// ApplyTo returns current with the patched fields replaced.
func (p DetailsPatch) ApplyTo(current order.Details) order.Details {
	next := current
	if p.ClientID != nil {
		next.ClientID = *p.ClientID
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&next.Collaborator.Name, p.CollaboratorName)
	set(&next.Collaborator.Email, p.CollaboratorEmail)
	set(&next.Collaborator.Phone, p.CollaboratorPhone)
	set(&next.Equipment.Type, p.EquipmentType)
	set(&next.Equipment.Brand, p.EquipmentBrand)
	set(&next.Equipment.Model, p.EquipmentModel)
	set(&next.Equipment.SerialNumber, p.EquipmentSerial)
	set(&next.ReportedProblem, p.ReportedProblem)
	return next
}

// EditOrderDetailsCommand records an edit of an order's descriptive fields.
type EditOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	actor       access.Actor
	orderID     kernel.UUID
	patch       DetailsPatch
	observation string

	guard guard.ConstructorGuard
}

// NewEditOrderDetailsCommand validates the actor and order id.
func NewEditOrderDetailsCommand(
	actor access.Actor,
	orderID kernel.UUID,
	patch DetailsPatch,
	observation string,
) (EditOrderDetailsCommand, error) {
	if err := errors.Join(requireActor(actor), orderID.Validate()); err != nil {
		return EditOrderDetailsCommand{}, err
	}

	return EditOrderDetailsCommand{
		actor:       actor,
		orderID:     orderID,
		patch:       patch,
		observation: observation,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderDetailsCommandIsNotConstructed)
}

func (c EditOrderDetailsCommand) Actor() access.Actor  { return c.actor }
func (c EditOrderDetailsCommand) OrderID() kernel.UUID { return c.orderID }
func (c EditOrderDetailsCommand) Patch() DetailsPatch  { return c.patch }
func (c EditOrderDetailsCommand) Observation() string  { return c.observation }

func requireActor(actor access.Actor) error {
	if actor == nil {
		return ErrActorIsRequired
	}
	return nil
}
