package document

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToDecimal128 stores a price without going through float64.
func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	value, ok := primitive.ParseDecimal128FromBigInt(d.Coefficient(), int(d.Exponent()))
	if !ok {
		return primitive.Decimal128{}, fmt.Errorf("decimal %s out of Decimal128 range", d.String())
	}
	return value, nil
}

func FromDecimal128(value primitive.Decimal128) (decimal.Decimal, error) {
	coefficient, exponent, err := value.BigInt()
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid Decimal128 %s: %w", value.String(), err)
	}
	return decimal.NewFromBigInt(coefficient, int32(exponent)), nil
}
