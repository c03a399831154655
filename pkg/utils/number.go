package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundedPercent devolve round(part/whole*100); whole deve ser maior que zero
func RoundedPercent(part, whole int) int {
	return int(decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole))).
		Round(0).
		IntPart())
}
