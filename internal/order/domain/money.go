package domain

import "github.com/shopspring/decimal"

// MinorUnits converts a decimal currency amount to integer minor units
// (cents), rounding half away from zero at two decimal places. Providers
// report amounts this way, so comparisons happen on integers.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
