package common

import (
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountDigits caps the integer digits of a money amount.
	MaxAmountDigits = 15
	// MaxAmountScale caps the decimal places of a money amount.
	MaxAmountScale = 18
)

// AmountWithinBounds reports whether d fits MaxAmountDigits integer digits
// and MaxAmountScale decimal places. Only the coefficient and exponent are
// read, so inputs like "1e999999999" are refused without rescaling them.
// Call it before comparing or adding amounts that came from outside.
func AmountWithinBounds(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -MaxAmountScale {
		return false
	}
	digits := int64(len(new(big.Int).Abs(d.Coefficient()).String()))
	return digits+exp <= MaxAmountDigits
}
