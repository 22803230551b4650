package domain

import "github.com/shopspring/decimal"

// Round2 rounds a money amount to cents, half away from zero.
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// Round1 rounds to one decimal place.
func Round1(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(1).Float64()
	return f
}
