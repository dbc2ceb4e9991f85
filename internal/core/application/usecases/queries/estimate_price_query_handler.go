package queries

import (
	"context"

	"paperdesk/internal/core/domain/services"
)

// EstimatePriceQueryHandler runs the same calculation the create-order command
// uses, without writing anything.
type EstimatePriceQueryHandler struct {
	catalog    services.PricingCatalog
	calculator services.PriceCalculator
}

func NewEstimatePriceQueryHandler(catalog services.PricingCatalog) EstimatePriceQueryHandler {
	return EstimatePriceQueryHandler{
		catalog:    catalog,
		calculator: services.NewPriceCalculator(),
	}
}

func (h EstimatePriceQueryHandler) Handle(ctx context.Context, query EstimatePriceQuery) (EstimatePriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimatePriceQueryResponse{}, err
	}

	amount, err := h.calculator.Quote(ctx, h.catalog, query.Selection())
	if err != nil {
		return EstimatePriceQueryResponse{}, err
	}

	return EstimatePriceQueryResponse{Amount: amount, Pages: query.Selection().Pages}, nil
}
