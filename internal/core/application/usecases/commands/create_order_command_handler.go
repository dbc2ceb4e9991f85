package commands

import (
	"context"
	"time"

	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/services"

	"go.opentelemetry.io/otel/attribute"
)

// CreateOrderCommandHandler prices and stores a new order together with its
// creation history entry.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown level, service, deadline or language, or no rate bucket
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	calculator services.PriceCalculator
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: services.NewPriceCalculator(),
	}
}

// Handle computes the price, then persists the order in WAITING_FOR_PAYMENT
// and its first history entry in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (_ *order.Order, err error) {
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, span := startSpan(ctx, "CreateOrder", attribute.String("order.id", cmd.OrderID().String()))
	defer func() { endSpan(span, err) }()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	details := cmd.Details()
	price, err := h.calculator.Quote(ctx, uow.PricingRepository(), services.PriceSelection{
		AcademicLevelID: details.AcademicLevelID,
		ServiceTypeID:   details.ServiceTypeID,
		DeadlineTypeID:  details.DeadlineTypeID,
		LanguageID:      details.LanguageID,
		Pages:           details.Pages,
	})
	if err != nil {
		return nil, err
	}

	o, entry, err := order.NewOrder(cmd.OrderID(), details, price, cmd.ActorID(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.StatusHistoryRepository().Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
