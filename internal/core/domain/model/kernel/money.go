package kernel

import (
	"fmt"

	"paperdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits of every settled amount.
const MoneyScale = 2

// Money is a fixed-point monetary amount.
//
// Arithmetic keeps full decimal precision; Round brings a value back to
// MoneyScale digits (half away from zero). Pricing chains round exactly once,
// at the end, while amounts entering from outside are rejected if they carry
// more than MoneyScale digits.
//
// The zero value is 0.00 and is ready to use.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// MoneyFromDecimal wraps d without rounding. Use it for intermediate values
// and for amounts read back from numeric(12,2) columns.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// MoneyFromString parses an external amount such as "40.00".
// More than two fractional digits are rejected rather than silently rounded.
//
// Parameters:
//   - s: a decimal literal, optionally signed
//
// Returns:
//   - Money: the parsed amount, unrounded
//   - error: ErrValueIsInvalid for a malformed literal or extra precision
//
// Example:
//
//	m, err := kernel.MoneyFromString("40.00") // ok
//	_, err = kernel.MoneyFromString("40.005") // ErrValueIsInvalid
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	if !d.Equal(d.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d fractional digits", s, MoneyScale),
		)
	}
	return Money{amount: d}, nil
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Mul multiplies by a dimensionless factor without rounding.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// MulInt multiplies by a count (pages, units) without rounding.
func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

// AddPercent returns m × (1 + percent/100) without rounding.
func (m Money) AddPercent(percent decimal.Decimal) Money {
	factor := decimal.NewFromInt(1).Add(percent.Div(decimal.NewFromInt(100)))
	return Money{amount: m.amount.Mul(factor)}
}

// Round returns the amount rounded to MoneyScale digits.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(MoneyScale)}
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// ValidatePositive returns a ValueIsOutOfRangeError unless m > 0.
func (m Money) ValidatePositive(paramName string) error {
	if !m.IsPositive() {
		return errs.NewValueIsOutOfRangeError(paramName, m.String(), "0.01", "unbounded")
	}
	return nil
}
