package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a client's request for a new paper.
// The price is not part of the command; the handler computes it from the
// pricing configuration inside the same transaction.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), details, &clientID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details order.Details
	actorID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and counts.
func NewCreateOrderCommand(orderID kernel.UUID, details order.Details, actorID *kernel.UUID) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDetails(details),
		cmd.setActorID(actorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

// ActorID is who placed the order; nil for system imports.
func (c CreateOrderCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}

	c.details = details
	return nil
}

func (c *CreateOrderCommand) setActorID(actorID *kernel.UUID) error {
	id, err := optionalID(actorID)
	if err != nil {
		return err
	}

	c.actorID = id
	return nil
}
