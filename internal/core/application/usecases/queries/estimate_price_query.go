package queries

import (
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/services"
	"paperdesk/internal/pkg/errs"
	"paperdesk/internal/pkg/guard"
)

var ErrEstimatePriceQueryIsNotConstructed = errors.New(
	"EstimatePriceQuery must be created via NewEstimatePriceQuery constructor",
)

// EstimatePriceQuery asks what an order with the given options would cost.
//
// Example:
//
//	query, err := NewEstimatePriceQuery(levelID, serviceID, deadlineID, languageID, 3)
//	if err != nil {
//	    return err
//	}
//	estimate, err := handler.Handle(ctx, query)
//	fmt.Println(estimate.Amount) // "49.50"
type EstimatePriceQuery struct {
	selection services.PriceSelection

	guard guard.ConstructorGuard
}

func NewEstimatePriceQuery(
	academicLevelID, serviceTypeID, deadlineTypeID, languageID kernel.UUID,
	pages int,
) (EstimatePriceQuery, error) {
	var pagesErr error
	if pages < 1 || pages > order.MaxPages {
		pagesErr = errs.NewValueIsOutOfRangeError("pages", pages, 1, order.MaxPages)
	}

	if err := errors.Join(
		academicLevelID.Validate(),
		serviceTypeID.Validate(),
		deadlineTypeID.Validate(),
		languageID.Validate(),
		pagesErr,
	); err != nil {
		return EstimatePriceQuery{}, err
	}

	return EstimatePriceQuery{
		selection: services.PriceSelection{
			AcademicLevelID: academicLevelID,
			ServiceTypeID:   serviceTypeID,
			DeadlineTypeID:  deadlineTypeID,
			LanguageID:      languageID,
			Pages:           pages,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q EstimatePriceQuery) Validate() error {
	return q.guard.Validate(ErrEstimatePriceQueryIsNotConstructed)
}

func (q EstimatePriceQuery) Selection() services.PriceSelection {
	return q.selection
}

type EstimatePriceQueryResponse struct {
	Amount kernel.Money
	Pages  int
}
