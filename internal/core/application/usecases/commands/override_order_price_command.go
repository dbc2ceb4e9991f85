package commands

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"
)

var ErrOverrideOrderPriceCommandIsNotConstructed = errors.New(
	"OverrideOrderPriceCommand must be created via NewOverrideOrderPriceCommand constructor",
)

// OverrideOrderPriceCommand is an admin correction of an unpaid order's price.
// The actor and a reason are mandatory.
type OverrideOrderPriceCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	price   kernel.Money
	actorID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewOverrideOrderPriceCommand creates an admin command that replaces the
// quoted price. The price must be positive and the reason non-empty.
func NewOverrideOrderPriceCommand(
	orderID kernel.UUID,
	price kernel.Money,
	actorID kernel.UUID,
	reason string,
) (OverrideOrderPriceCommand, error) {
	var reasonErr error
	if reason == "" {
		reasonErr = errs.NewValueIsRequiredError("reason")
	}

	if err := errors.Join(
		orderID.Validate(),
		price.ValidatePositive("price"),
		actorID.Validate(),
		reasonErr,
	); err != nil {
		return OverrideOrderPriceCommand{}, err
	}

	return OverrideOrderPriceCommand{
		orderID: orderID,
		price:   price,
		actorID: actorID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c OverrideOrderPriceCommand) Validate() error {
	return c.guard.Validate(ErrOverrideOrderPriceCommandIsNotConstructed)
}

func (c OverrideOrderPriceCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c OverrideOrderPriceCommand) Price() kernel.Money {
	return c.price
}

func (c OverrideOrderPriceCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c OverrideOrderPriceCommand) Reason() string {
	return c.reason
}
