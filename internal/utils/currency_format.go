package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount renders a money amount with exactly two decimal places.
// Example: 1873.4 returns "1873.40"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatWithPrecision formats an amount with the given precision
// Example: rate 157.12345 with precision 4 returns "157.1235"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
