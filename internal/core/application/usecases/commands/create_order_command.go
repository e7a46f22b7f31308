package commands

import (
	"errors"
	"strings"

	"repairdesk/internal/core/domain/model/access"
	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/order"
	"repairdesk/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// ServiceLine is a contracted service as sent by the caller.
type ServiceLine struct {
	ID   kernel.UUID
	Name string
}

// CreateOrderCommand represents a request to open a new service order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), details, "maria",
//	    []ServiceLine{{ID: cleaningID, Name: "Cleaning"}}, "left at front desk")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Printf("Order %s opened", result.Number)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor       access.Actor
	orderID     kernel.UUID
	details     order.Details
	analyst     string
	services    []order.ContractedService
	observation string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request fields. An empty analyst defaults to
// the actor's name.
func NewCreateOrderCommand(
	actor access.Actor,
	orderID kernel.UUID,
	details order.Details,
	analyst string,
	services []ServiceLine,
	observation string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor:       actor,
		observation: strings.TrimSpace(observation),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireActor(actor),
		cmd.setOrderID(orderID),
		cmd.setDetails(details),
		cmd.setServices(services),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.analyst = strings.TrimSpace(analyst)
	if cmd.analyst == "" {
		cmd.analyst = actor.Name()
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() access.Actor    { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CreateOrderCommand) Details() order.Details { return c.details }
func (c CreateOrderCommand) Analyst() string        { return c.analyst }
func (c CreateOrderCommand) Observation() string    { return c.observation }
func (c CreateOrderCommand) Services() []order.ContractedService {
	return append([]order.ContractedService(nil), c.services...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	details = details.Normalized()
	if err := details.Validate(); err != nil {
		return err
	}

	c.details = details
	return nil
}

func (c *CreateOrderCommand) setServices(lines []ServiceLine) error {
	services := make([]order.ContractedService, 0, len(lines))
	var errList []error
	for _, line := range lines {
		s, err := order.NewContractedService(line.ID, line.Name)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		services = append(services, s)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.services = services
	return nil
}
