package utils

import "github.com/shopspring/decimal"

// RoundMoney rounds an amount to two decimal places, half away from zero, and returns it as
// float64 for JSON payloads.
func RoundMoney(d decimal.Decimal) float64 {
	if d.IsZero() {
		return 0
	}

	return d.Round(2).InexactFloat64()
}
