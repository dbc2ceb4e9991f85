package commands

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/ports"
	"paperdesk/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
)

// CancelOrderWithRefundCommandHandler cancels an order that is neither
// approved nor already cancelled.
//
// Gateway-origin payments are refunded through the gateway first; wallet
// credits follow only after every gateway refund was confirmed. A gateway
// failure rolls everything back and the order keeps its status.
type CancelOrderWithRefundCommandHandler struct {
	uowFactory UoWFactory
	settlement settlement
}

func NewCancelOrderWithRefundCommandHandler(
	uowFactory UoWFactory,
	refunds ports.RefundGateway,
) CancelOrderWithRefundCommandHandler {
	return CancelOrderWithRefundCommandHandler{
		uowFactory: uowFactory,
		settlement: newSettlement(refunds),
	}
}

func (h CancelOrderWithRefundCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderWithRefundCommand,
) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "CancelOrderWithRefund", attribute.String("order.id", cmd.OrderID().String()))
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

	if o.Status().IsFinal() {
		return nil, errs.NewInvalidTransitionError(o.Status(), order.Cancelled)
	}

	if err = h.settlement.cancel(ctx, uow, o, cmd.ActorID(), cmd.Reason(), time.Now()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
