package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------

// ParsePrice parses an upstream price string. Empty, unparsable and negative
// values all yield zero.
func ParsePrice(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero
	}
	return price
}

// -----------------------------------------------------------------------------

// SumLeading adds up the first n shares in the order given. Fewer than n
// entries are summed as they are.
func SumLeading(shares []float64, n int) decimal.Decimal {
	if n > len(shares) {
		n = len(shares)
	}

	total := decimal.Zero
	for _, s := range shares[:n] {
		total = total.Add(decimal.NewFromFloat(s))
	}
	return total
}
