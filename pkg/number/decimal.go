package number

import (
	"github.com/shopspring/decimal"
)

// Decimal parse text into a decimal, zero on malformed input
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}
