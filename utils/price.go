package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a price with exactly two fraction digits, e.g. "9.50".
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(2)
}

// ParsePrice accepts a plain decimal string and rounds it to cents.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return d.Round(2), nil
}
