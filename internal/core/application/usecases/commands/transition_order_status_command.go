package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand moves one order to a new status on behalf of
// an actor (nil for the system).
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actorID *kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a command to move one order to
// target. Whether the transition is allowed is decided by the handler.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	actorID *kernel.UUID,
	note string,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActorID(actorID),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TransitionOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c TransitionOrderStatusCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c TransitionOrderStatusCommand) Note() string {
	return c.note
}

func (c *TransitionOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionOrderStatusCommand) setActorID(actorID *kernel.UUID) error {
	id, err := optionalID(actorID)
	if err != nil {
		return err
	}

	c.actorID = id
	return nil
}

// optionalID copies a non-nil id after validating it.
func optionalID(actorID *kernel.UUID) (*kernel.UUID, error) {
	if actorID == nil {
		return nil, nil
	}
	if err := actorID.Validate(); err != nil {
		return nil, err
	}

	id := *actorID
	return &id, nil
}
