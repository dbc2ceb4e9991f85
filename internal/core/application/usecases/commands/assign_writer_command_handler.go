package commands

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// AssignWriterCommandHandler records the writer of a WRITER_PENDING order and
// moves it to IN_PROGRESS.
type AssignWriterCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAssignWriterCommandHandler(uowFactory OrderUoWFactory) AssignWriterCommandHandler {
	return AssignWriterCommandHandler{uowFactory: uowFactory}
}

func (h AssignWriterCommandHandler) Handle(ctx context.Context, cmd AssignWriterCommand) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "AssignWriter",
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("writer.id", cmd.WriterID().String()),
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

	entry, err := o.AssignWriter(cmd.WriterID(), cmd.ActorID(), time.Now())
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
