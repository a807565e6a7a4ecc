package kernel

import (
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for prices and totals.
const MoneyScale = 2

// MoneyEpsilon is the tolerance allowed between a stored total and its recomputation.
var MoneyEpsilon = decimal.New(1, -MoneyScale)

// RoundMoney rounds half away from zero to MoneyScale digits.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// MoneyEqual reports whether a and b differ by no more than MoneyEpsilon.
func MoneyEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(MoneyEpsilon)
}

// LineTotal is price × quantity rounded to MoneyScale.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return RoundMoney(price.Mul(decimal.NewFromInt(int64(quantity))))
}
