package commands

import (
	"context"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"

	"go.opentelemetry.io/otel/attribute"
)

// BulkTransitionOutcome is the result for one order of a bulk request.
// Err is nil on success.
type BulkTransitionOutcome struct {
	OrderID kernel.UUID
	Status  order.Status
	Err     error
}

// BulkTransitionOrderStatusCommandHandler runs one transition per order, each
// in its own unit of work. A failing order does not affect the others.
type BulkTransitionOrderStatusCommandHandler struct {
	single TransitionOrderStatusCommandHandler
}

func NewBulkTransitionOrderStatusCommandHandler(
	single TransitionOrderStatusCommandHandler,
) BulkTransitionOrderStatusCommandHandler {
	return BulkTransitionOrderStatusCommandHandler{single: single}
}

// Handle returns one outcome per distinct order id, in request order. The
// error return is reserved for an invalid command.
func (h BulkTransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd BulkTransitionOrderStatusCommand,
) ([]BulkTransitionOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "BulkTransitionOrderStatus",
		attribute.Int("orders.count", len(cmd.OrderIDs())),
		attribute.String("order.target", cmd.Target().String()),
	)
	defer span.End()

	outcomes := make([]BulkTransitionOutcome, 0, len(cmd.OrderIDs()))
	for _, id := range cmd.OrderIDs() {
		outcome := BulkTransitionOutcome{OrderID: id}

		single, err := NewTransitionOrderStatusCommand(id, cmd.Target(), cmd.ActorID(), cmd.Note())
		if err == nil {
			var o *order.Order
			if o, err = h.single.Handle(ctx, single); err == nil {
				outcome.Status = o.Status()
			}
		}

		outcome.Err = err
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
