package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/guard"
)

var ErrAssignWriterCommandIsNotConstructed = errors.New(
	"AssignWriterCommand must be created via NewAssignWriterCommand constructor",
)

// AssignWriterCommand hands a paid order to a writer.
type AssignWriterCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	writerID kernel.UUID
	actorID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignWriterCommand creates a command to hand an order to a writer.
// Both identifiers are required; a nil actorID means a system action.
func NewAssignWriterCommand(orderID, writerID kernel.UUID, actorID *kernel.UUID) (AssignWriterCommand, error) {
	cmd := AssignWriterCommand{
		guard: guard.NewConstructorGuard(),
	}

	actor, actorErr := optionalID(actorID)
	if err := errors.Join(orderID.Validate(), writerID.Validate(), actorErr); err != nil {
		return AssignWriterCommand{}, err
	}

	cmd.orderID = orderID
	cmd.writerID = writerID
	cmd.actorID = actor
	return cmd, nil
}

func (c AssignWriterCommand) Validate() error {
	return c.guard.Validate(ErrAssignWriterCommandIsNotConstructed)
}

func (c AssignWriterCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignWriterCommand) WriterID() kernel.UUID {
	return c.writerID
}

func (c AssignWriterCommand) ActorID() *kernel.UUID {
	return c.actorID
}
