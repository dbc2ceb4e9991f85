package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"
)

var ErrCancelOrderWithRefundCommandIsNotConstructed = errors.New(
	"CancelOrderWithRefundCommand must be created via NewCancelOrderWithRefundCommand constructor",
)

// CancelOrderWithRefundCommand cancels an active order and returns its money.
type CancelOrderWithRefundCommand struct {
	orderID kernel.UUID
	actorID *kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderWithRefundCommand creates a command to cancel a paid order and
// reverse its payments. A non-empty reason is required.
func NewCancelOrderWithRefundCommand(
	orderID kernel.UUID,
	actorID *kernel.UUID,
	reason string,
) (CancelOrderWithRefundCommand, error) {
	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	actor, actorErr := optionalID(actorID)
	if err := errors.Join(orderID.Validate(), actorErr, reasonErr); err != nil {
		return CancelOrderWithRefundCommand{}, err
	}

	return CancelOrderWithRefundCommand{
		orderID: orderID,
		actorID: actor,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderWithRefundCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderWithRefundCommandIsNotConstructed)
}

func (c CancelOrderWithRefundCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderWithRefundCommand) ActorID() *kernel.UUID {
	return c.actorID
}

func (c CancelOrderWithRefundCommand) Reason() string {
	return c.reason
}
