package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats an amount as dollars with thousands separators.
// Example: 1234.5 -> "$1,234.50"
func FormatUSD(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	integerPart := fmt.Sprintf("%d", cents/100)

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}
	return fmt.Sprintf("%s$%s.%02d", sign, strings.Join(groups, ","), cents%100)
}

// RoundCents rounds to the nearest cent so float sums compare cleanly.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
