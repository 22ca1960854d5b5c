package domain

import "github.com/shopspring/decimal"

// MinimumChargeCents is the smallest amount the payment provider accepts.
const MinimumChargeCents int64 = 50

var cents = decimal.NewFromInt(100)

// MinorUnits converts a currency total into minor units for the payment
// provider, clamping to the provider minimum.
func MinorUnits(total decimal.Decimal) int64 {
	amount := total.Mul(cents).Round(0).IntPart()
	if amount < MinimumChargeCents {
		return MinimumChargeCents
	}
	return amount
}
