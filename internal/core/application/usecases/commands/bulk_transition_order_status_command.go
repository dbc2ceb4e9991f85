package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"

	"github.com/samber/lo"
)

// MaxBulkTransitionSize limits the number of distinct orders per bulk request.
const MaxBulkTransitionSize = 50

var ErrBulkTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"BulkTransitionOrderStatusCommand must be created via NewBulkTransitionOrderStatusCommand constructor",
)

// BulkTransitionOrderStatusCommand applies the same transition to several
// orders. Duplicate ids are dropped, keeping first occurrence order.
type BulkTransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	target   order.Status
	actorID  *kernel.UUID
	note     string

	guard guard.ConstructorGuard
}

// NewBulkTransitionOrderStatusCommand creates a command that moves every
// order in orderIDs to target. Duplicate identifiers are collapsed and an
// empty list is rejected.
func NewBulkTransitionOrderStatusCommand(
	orderIDs []kernel.UUID,
	target order.Status,
	actorID *kernel.UUID,
	note string,
) (BulkTransitionOrderStatusCommand, error) {
	cmd := BulkTransitionOrderStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setTarget(target),
		cmd.setActorID(actorID),
	); err != nil {
		return BulkTransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c BulkTransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionOrderStatusCommandIsNotConstructed)
}

func (c BulkTransitionOrderStatusCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}

func (c BulkTransitionOrderStatusCommand) Target() order.Status {
	return c.target
}

func (c BulkTransitionOrderStatusCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c BulkTransitionOrderStatusCommand) Note() string {
	return c.note
}

func (c *BulkTransitionOrderStatusCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	unique := lo.Uniq(orderIDs)
	if len(unique) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}
	if len(unique) > MaxBulkTransitionSize {
		return errs.NewValueIsOutOfRangeError("order ids", len(unique), 1, MaxBulkTransitionSize)
	}
	for _, id := range unique {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = unique
	return nil
}

func (c *BulkTransitionOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *BulkTransitionOrderStatusCommand) setActorID(actorID *kernel.UUID) error {
	id, err := optionalID(actorID)
	if err != nil {
		return err
	}

	c.actorID = id
	return nil
}
