package kernel

import (
	"errors"
	"fmt"

	"mealdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount in the single currency the business operates in.
// Amounts arrive as float64 from callers and are kept as decimals so that
// sums of prices and balance movements do not drift.
type Money struct {
	amount decimal.Decimal
}

// NewMoney converts a float amount. It performs no validation.
func NewMoney(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount)}
}

// MoneyFromDecimal wraps an existing decimal.
func MoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// MoneyFromString parses a decimal string such as "12.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return Money{amount: d}, nil
}

// ZeroMoney returns an amount of 0.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
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

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Max returns the larger of m and other.
func (m Money) Max(other Money) Money {
	if other.GreaterThan(m) {
		return other
	}
	return m
}

// Float64 returns the nearest float, used for snapshots.
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

// Decimal exposes the decimal for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// ValidateAmount checks that 0 < amount <= maxAmount.
func ValidateAmount(paramName string, amount, maxAmount Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, errors.New("can not be negative or zero"))
	}
	if amount.GreaterThan(maxAmount) {
		return errs.NewValueIsOutOfRangeErrorWithCause(paramName, amount, "0", maxAmount,
			fmt.Errorf("%s can not be more than %s", paramName, maxAmount))
	}
	return nil
}
