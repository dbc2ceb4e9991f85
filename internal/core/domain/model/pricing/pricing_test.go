package pricing_test

import (
	"testing"

	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/pricing"
	"paperdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(hours int, hs, ug, ms, phd string) pricing.RateRow {
	return pricing.RateRow{
		ID:            kernel.NewUUID(),
		Hours:         hours,
		HighSchool:    kernel.MustMoney(hs),
		UnderGraduate: kernel.MustMoney(ug),
		Masters:       kernel.MustMoney(ms),
		PhD:           kernel.MustMoney(phd),
	}
}

func TestSelectRate(t *testing.T) {
	rows := []pricing.RateRow{
		rate(336, "10", "12", "15", "20"),
		rate(24, "20", "24", "30", "40"),
		rate(72, "15", "18", "22", "30"),
	}

	testCases := []struct {
		name     string
		hours    int
		expected int
		found    bool
	}{
		{"exact bucket", 24, 24, true},
		{"below smallest bucket", 6, 24, true},
		{"between buckets", 48, 72, true},
		{"largest bucket", 336, 336, true},
		{"beyond every bucket", 720, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row, ok := pricing.SelectRate(rows, tc.hours)

			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, row.Hours)
		})
	}

	t.Run("should not reorder the caller's slice", func(t *testing.T) {
		pricing.SelectRate(rows, 1)

		assert.Equal(t, 336, rows[0].Hours)
	})
}

func TestRateRow_PriceFor(t *testing.T) {
	row := rate(24, "10.00", "12.00", "15.00", "20.00")

	for tier, expected := range map[pricing.Tier]string{
		pricing.TierHighSchool:    "10.00",
		pricing.TierUnderGraduate: "12.00",
		pricing.TierMasters:       "15.00",
		pricing.TierPhD:           "20.00",
	} {
		price, err := row.PriceFor(tier)
		require.NoError(t, err)
		assert.Equal(t, expected, price.String(), string(tier))
	}

	_, err := row.PriceFor(pricing.Tier("postdoc"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestServiceType_Apply(t *testing.T) {
	amount := kernel.MustMoney("100.00")

	percent := pricing.ServiceType{AdjustmentKind: pricing.AdjustmentPercent, AdjustmentValue: decimal.NewFromInt(15)}
	fixed := pricing.ServiceType{AdjustmentKind: pricing.AdjustmentFixed, AdjustmentValue: decimal.RequireFromString("7.50")}

	assert.Equal(t, "115.00", percent.Apply(amount).String())
	assert.Equal(t, "107.50", fixed.Apply(amount).String())
}

func TestPreset(t *testing.T) {
	p := pricing.Preset{
		ID:               kernel.NewUUID(),
		AcademicLevelID:  kernel.NewUUID(),
		ServiceTypeID:    kernel.NewUUID(),
		DeadlineTypeID:   kernel.NewUUID(),
		BasePricePerPage: kernel.MustMoney("12.00"),
		Multiplier:       decimal.RequireFromString("1.25"),
	}

	require.NoError(t, p.Validate())
	assert.Equal(t, "15.00", p.PerPage().String())

	p.Multiplier = decimal.Zero
	require.ErrorIs(t, p.Validate(), errs.ErrValueIsOutOfRange)
}

func TestValidate_Catalog(t *testing.T) {
	t.Run("academic level requires a known tier", func(t *testing.T) {
		err := pricing.AcademicLevel{ID: kernel.NewUUID(), Name: "College", Tier: "college"}.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("deadline type requires positive hours", func(t *testing.T) {
		err := pricing.DeadlineType{ID: kernel.NewUUID(), Name: "now", Hours: 0}.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("language rejects negative surcharge", func(t *testing.T) {
		err := pricing.Language{ID: kernel.NewUUID(), Name: "English", SurchargePercent: decimal.NewFromInt(-1)}.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("service type requires name and kind", func(t *testing.T) {
		err := pricing.ServiceType{ID: kernel.NewUUID()}.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("service type rejects percent discounts of 100 or more", func(t *testing.T) {
		for _, v := range []int64{-100, -150} {
			st := pricing.ServiceType{
				ID: kernel.NewUUID(), Name: "Rewriting",
				AdjustmentKind: pricing.AdjustmentPercent, AdjustmentValue: decimal.NewFromInt(v),
			}

			require.ErrorIs(t, st.Validate(), errs.ErrValueIsOutOfRange, "percent %d", v)
		}
	})

	t.Run("service type allows a partial percent discount", func(t *testing.T) {
		st := pricing.ServiceType{
			ID: kernel.NewUUID(), Name: "Proofreading",
			AdjustmentKind: pricing.AdjustmentPercent, AdjustmentValue: decimal.NewFromInt(-99),
		}

		require.NoError(t, st.Validate())
	})

	t.Run("rate row requires positive prices", func(t *testing.T) {
		row := rate(24, "10", "12", "15", "20")
		row.PhD = kernel.ZeroMoney()

		require.ErrorIs(t, row.Validate(), errs.ErrValueIsOutOfRange)
	})
}
