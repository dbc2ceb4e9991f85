package commands

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// OverrideOrderPriceCommandHandler replaces the price of a
// WAITING_FOR_PAYMENT order and logs the change as a self-loop entry.
type OverrideOrderPriceCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewOverrideOrderPriceCommandHandler(uowFactory OrderUoWFactory) OverrideOrderPriceCommandHandler {
	return OverrideOrderPriceCommandHandler{uowFactory: uowFactory}
}

func (h OverrideOrderPriceCommandHandler) Handle(
	ctx context.Context,
	cmd OverrideOrderPriceCommand,
) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "OverrideOrderPrice", attribute.String("order.id", cmd.OrderID().String()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	actor := cmd.ActorID()
	entry, err := o.OverridePrice(cmd.Price(), &actor, cmd.Reason(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = persistChange(ctx, uow, o, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
