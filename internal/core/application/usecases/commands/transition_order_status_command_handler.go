package commands

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
)

// TransitionOrderStatusCommandHandler applies one state machine step under an
// exclusive lock on the order row.
//
// A transition into CANCELLED (other than the CANCELLED self-loop) first
// reverses every payment of the order in the same transaction. If the
// reversal fails the order keeps its status.
//
// Example:
//
//	cmd, _ := NewTransitionOrderStatusCommand(orderID, order.Review, &writerID, "draft uploaded")
//	o, err := handler.Handle(ctx, cmd)
//	var invalid *errs.InvalidTransitionError
//	if errors.As(err, &invalid) {
//	    log.Printf("cannot move from %s to %s", invalid.From, invalid.To)
//	}
type TransitionOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	settlement settlement
}

func NewTransitionOrderStatusCommandHandler(
	uowFactory UoWFactory,
	refunds ports.RefundGateway,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		settlement: newSettlement(refunds),
	}
}

func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "TransitionOrderStatus",
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.target", cmd.Target().String()),
	)
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

	now := time.Now()
	if cmd.Target() == order.Cancelled {
		err = h.settlement.cancel(ctx, uow, o, cmd.ActorID(), cmd.Note(), now)
	} else {
		err = h.settlement.transition(ctx, uow, o, cmd.Target(), cmd.ActorID(), cmd.Note(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
