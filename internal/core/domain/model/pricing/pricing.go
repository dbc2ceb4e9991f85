package pricing

import (
	"errors"
	"fmt"
	"sort"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tier selects the rate table column used for an academic level.
type Tier string

const (
	TierHighSchool    Tier = "high_school"
	TierUnderGraduate Tier = "under_graduate"
	TierMasters       Tier = "masters"
	TierPhD           Tier = "phd"
)

func (t Tier) Validate() error {
	switch t {
	case TierHighSchool, TierUnderGraduate, TierMasters, TierPhD:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("%q is not a pricing tier", string(t)))
	}
}

type AcademicLevel struct {
	ID   kernel.UUID
	Name string
	Tier Tier
}

func (l AcademicLevel) Validate() error {
	return errors.Join(l.ID.Validate(), requireName(l.Name), l.Tier.Validate())
}

// DeadlineType is a turnaround option such as "24 hours" or "7 days".
type DeadlineType struct {
	ID    kernel.UUID
	Name  string
	Hours int
}

func (d DeadlineType) Validate() error {
	var hoursErr error
	if d.Hours < 1 {
		hoursErr = errs.NewValueIsOutOfRangeError("hours", d.Hours, 1, "unbounded")
	}
	return errors.Join(d.ID.Validate(), requireName(d.Name), hoursErr)
}

// RateRow holds the per-page price of every tier for deadlines up to Hours.
type RateRow struct {
	ID            kernel.UUID
	Hours         int
	HighSchool    kernel.Money
	UnderGraduate kernel.Money
	Masters       kernel.Money
	PhD           kernel.Money
}

func (r RateRow) Validate() error {
	var hoursErr error
	if r.Hours < 1 {
		hoursErr = errs.NewValueIsOutOfRangeError("hours", r.Hours, 1, "unbounded")
	}
	return errors.Join(
		r.ID.Validate(),
		hoursErr,
		r.HighSchool.ValidatePositive("high_school"),
		r.UnderGraduate.ValidatePositive("under_graduate"),
		r.Masters.ValidatePositive("masters"),
		r.PhD.ValidatePositive("phd"),
	)
}

// PriceFor returns the per-page price of the tier's column.
func (r RateRow) PriceFor(tier Tier) (kernel.Money, error) {
	switch tier {
	case TierHighSchool:
		return r.HighSchool, nil
	case TierUnderGraduate:
		return r.UnderGraduate, nil
	case TierMasters:
		return r.Masters, nil
	case TierPhD:
		return r.PhD, nil
	default:
		return kernel.Money{}, tier.Validate()
	}
}

// SelectRate picks the smallest bucket whose Hours is at least hours.
func SelectRate(rows []RateRow, hours int) (RateRow, bool) {
	sorted := make([]RateRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Hours < sorted[j].Hours })

	for _, r := range sorted {
		if r.Hours >= hours {
			return r, true
		}
	}
	return RateRow{}, false
}

// AdjustmentKind tells how a service type changes the price.
type AdjustmentKind string

const (
	AdjustmentPercent AdjustmentKind = "percent"
	AdjustmentFixed   AdjustmentKind = "fixed"
)

// ServiceType is a kind of work (writing, editing, ...) with its price
// adjustment. Percent adjustments scale the total; fixed adjustments add an
// amount once per order.
type ServiceType struct {
	ID              kernel.UUID
	Name            string
	AdjustmentKind  AdjustmentKind
	AdjustmentValue decimal.Decimal
}

var minPercentAdjustment = decimal.NewFromInt(-100)

// Validate rejects unknown kinds and percent discounts of 100 or more.
func (s ServiceType) Validate() error {
	var kindErr error
	switch s.AdjustmentKind {
	case AdjustmentPercent, AdjustmentFixed:
	default:
		kindErr = errs.NewValueIsInvalidErrorWithCause(
			"adjustment kind",
			fmt.Errorf("%q is not an adjustment kind", string(s.AdjustmentKind)),
		)
	}
	var valueErr error
	if s.AdjustmentKind == AdjustmentPercent && s.AdjustmentValue.LessThanOrEqual(minPercentAdjustment) {
		valueErr = errs.NewValueIsOutOfRangeError("adjustment value", s.AdjustmentValue.String(), "-100 (exclusive)", "unbounded")
	}
	return errors.Join(s.ID.Validate(), requireName(s.Name), kindErr, valueErr)
}

// Apply adjusts amount according to the service type.
func (s ServiceType) Apply(amount kernel.Money) kernel.Money {
	if s.AdjustmentKind == AdjustmentFixed {
		return amount.Add(kernel.MoneyFromDecimal(s.AdjustmentValue))
	}
	return amount.AddPercent(s.AdjustmentValue)
}

type Language struct {
	ID               kernel.UUID
	Name             string
	SurchargePercent decimal.Decimal
}

func (l Language) Validate() error {
	var surchargeErr error
	if l.SurchargePercent.IsNegative() {
		surchargeErr = errs.NewValueIsOutOfRangeError("surcharge percent", l.SurchargePercent, 0, "unbounded")
	}
	return errors.Join(l.ID.Validate(), requireName(l.Name), surchargeErr)
}

// Preset overrides the rate table for one (level, service, deadline)
// combination.
type Preset struct {
	ID               kernel.UUID
	AcademicLevelID  kernel.UUID
	ServiceTypeID    kernel.UUID
	DeadlineTypeID   kernel.UUID
	BasePricePerPage kernel.Money
	Multiplier       decimal.Decimal
}

func (p Preset) Validate() error {
	var multiplierErr error
	if !p.Multiplier.IsPositive() {
		multiplierErr = errs.NewValueIsOutOfRangeError("multiplier", p.Multiplier, "0 (exclusive)", "unbounded")
	}
	return errors.Join(
		p.ID.Validate(),
		p.AcademicLevelID.Validate(),
		p.ServiceTypeID.Validate(),
		p.DeadlineTypeID.Validate(),
		p.BasePricePerPage.ValidatePositive("base price per page"),
		multiplierErr,
	)
}

// PerPage is the preset's effective per-page price before rounding.
func (p Preset) PerPage() kernel.Money {
	return p.BasePricePerPage.Mul(p.Multiplier)
}

func requireName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}
