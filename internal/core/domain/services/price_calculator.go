package services

import (
	"context"
	"errors"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/pricing"
	"paperdesk/internal/pkg/errs"
)

// PriceInputs is everything the calculator needs, already loaded from the
// pricing configuration. Preset is nil when no preset matches the
// (level, service, deadline) combination.
type PriceInputs struct {
	Level    pricing.AcademicLevel
	Service  pricing.ServiceType
	Deadline pricing.DeadlineType
	Language pricing.Language
	Preset   *pricing.Preset
	Rates    []pricing.RateRow
	Pages    int
}

// PriceSelection is what a client picks when ordering.
type PriceSelection struct {
	AcademicLevelID kernel.UUID
	ServiceTypeID   kernel.UUID
	DeadlineTypeID  kernel.UUID
	LanguageID      kernel.UUID
	Pages           int
}

// PricingCatalog reads pricing configuration. Missing ids must yield an
// *errs.ObjectNotFoundError; FindPreset returns nil, nil when no preset matches.
type PricingCatalog interface {
	GetAcademicLevel(ctx context.Context, id kernel.UUID) (pricing.AcademicLevel, error)
	GetServiceType(ctx context.Context, id kernel.UUID) (pricing.ServiceType, error)
	GetDeadlineType(ctx context.Context, id kernel.UUID) (pricing.DeadlineType, error)
	GetLanguage(ctx context.Context, id kernel.UUID) (pricing.Language, error)
	FindPreset(ctx context.Context, levelID, serviceID, deadlineID kernel.UUID) (*pricing.Preset, error)
	ListRates(ctx context.Context) ([]pricing.RateRow, error)
}

// PriceCalculator turns pricing configuration into the price of an order.
//
// Calculation steps:
//   - Per-page base: preset base × multiplier when a preset exists, otherwise
//     the rate row of the smallest bucket covering the deadline, column by tier
//   - Multiply by pages
//   - Service adjustment (skipped for presets, which already include it)
//   - Language surcharge
//   - Round once to two digits, half away from zero
//
// Example usage:
//
//	calc := services.NewPriceCalculator()
//	price, err := calc.Calculate(inputs)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no rate bucket covers the deadline
//	}
type PriceCalculator struct{}

func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Quote loads the configuration for sel from catalog and calculates the price.
func (c PriceCalculator) Quote(ctx context.Context, catalog PricingCatalog, sel PriceSelection) (kernel.Money, error) {
	in := PriceInputs{Pages: sel.Pages}
	var err error

	if in.Level, err = catalog.GetAcademicLevel(ctx, sel.AcademicLevelID); err != nil {
		return kernel.Money{}, err
	}
	if in.Service, err = catalog.GetServiceType(ctx, sel.ServiceTypeID); err != nil {
		return kernel.Money{}, err
	}
	if in.Deadline, err = catalog.GetDeadlineType(ctx, sel.DeadlineTypeID); err != nil {
		return kernel.Money{}, err
	}
	if in.Language, err = catalog.GetLanguage(ctx, sel.LanguageID); err != nil {
		return kernel.Money{}, err
	}
	if in.Preset, err = catalog.FindPreset(ctx, sel.AcademicLevelID, sel.ServiceTypeID, sel.DeadlineTypeID); err != nil {
		return kernel.Money{}, err
	}
	if in.Preset == nil {
		if in.Rates, err = catalog.ListRates(ctx); err != nil {
			return kernel.Money{}, err
		}
	}

	return c.Calculate(in)
}

// Calculate returns the rounded price for in.
func (c PriceCalculator) Calculate(in PriceInputs) (kernel.Money, error) {
	if in.Pages < 1 {
		return kernel.Money{}, errs.NewValueIsOutOfRangeError("pages", in.Pages, 1, "unbounded")
	}
	if err := errors.Join(
		in.Level.Validate(),
		in.Service.Validate(),
		in.Deadline.Validate(),
		in.Language.Validate(),
	); err != nil {
		return kernel.Money{}, err
	}

	perPage, fromPreset, err := c.perPage(in)
	if err != nil {
		return kernel.Money{}, err
	}

	amount := perPage.MulInt(int64(in.Pages))
	if !fromPreset {
		amount = in.Service.Apply(amount)
	}
	amount = amount.AddPercent(in.Language.SurchargePercent).Round()

	// fixed discounts can exceed the base price
	if err := amount.ValidatePositive("price"); err != nil {
		return kernel.Money{}, err
	}
	return amount, nil
}

func (c PriceCalculator) perPage(in PriceInputs) (kernel.Money, bool, error) {
	if in.Preset != nil {
		if err := in.Preset.Validate(); err != nil {
			return kernel.Money{}, false, err
		}
		return in.Preset.PerPage(), true, nil
	}

	row, ok := pricing.SelectRate(in.Rates, in.Deadline.Hours)
	if !ok {
		return kernel.Money{}, false, errs.NewObjectNotFoundErrorWithCause(
			"rate", in.Deadline.Hours, errors.New("no rate bucket covers the deadline"),
		)
	}

	price, err := row.PriceFor(in.Level.Tier)
	if err != nil {
		return kernel.Money{}, false, err
	}
	return price, false, nil
}
