package models

import "github.com/shopspring/decimal"

// MaxMoney is the largest value a decimal(6,2) column holds.
var MaxMoney = decimal.RequireFromString("9999.99")

// ValidMoney reports whether d is positive, has at most two decimal places
// and fits decimal(6,2).
func ValidMoney(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(2)) && d.LessThanOrEqual(MaxMoney)
}

// LinePrice is unitPrice × quantity.
func LinePrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
