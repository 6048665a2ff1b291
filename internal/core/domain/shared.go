package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

type ID string

func ValidateID(id string) bool {
	return len(id) == 24
}

// Amount is a monetary value in minor currency units (cents).
type Amount int64

var ErrAmountOutOfRange = errors.New("amount out of range")

var (
	minorUnitsPerMajor = decimal.NewFromInt(100)
	maxAmount          = decimal.NewFromInt(math.MaxInt64)
	minAmount          = decimal.NewFromInt(math.MinInt64)
)

func NewAmountFromCents(cents int64) Amount {
	return Amount(cents)
}

// NewAmountFromDecimal converts a major-unit value to minor units, rounding
// half up. Values that do not fit an int64 of minor units are rejected.
func NewAmountFromDecimal(value decimal.Decimal) (Amount, error) {
	minor := value.Mul(minorUnitsPerMajor).Round(0)
	if minor.GreaterThan(maxAmount) || minor.LessThan(minAmount) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, value.String())
	}
	return Amount(minor.IntPart()), nil
}

func (a Amount) Add(b Amount) Amount {
	return a + b
}

func (a Amount) Multiply(b int) Amount {
	return a * Amount(b)
}

func (a Amount) ToDecimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

type Event interface {
	GetName() string
	GetEntityName() string
}
