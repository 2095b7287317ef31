// Package money concentra os cálculos monetários do estoque.
package money

import "github.com/shopspring/decimal"

// Total calcula price × quantity arredondado a 2 casas decimais (half-up,
// afastando do zero), como na formatação usual de moeda.
// Ex.: 3 × 1.33 = 3.99 e não 3.9900000000000007.
func Total(price float64, quantity int) float64 {
	amount := decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2)
	f, _ := amount.Float64()
	return f
}
