package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToCents parses a dollar string into integer cents. Rounding happens after
// multiplying by 100 so valid two-decimal inputs convert exactly. Empty or
// unparsable input is treated as 0.
func ToCents(s string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}

// ToDollars formats cents as a dollar string with two decimals. A nil amount
// formats as the empty string.
func ToDollars(cents *int64) string {
	if cents == nil {
		return ""
	}
	c := *cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// CostPerWear divides the paid price by the wear count, in cents. An unworn
// item costs its full price per wear.
func CostPerWear(paidCents int64, wears int) int64 {
	if wears <= 0 {
		return paidCents
	}
	return int64(math.Round(float64(paidCents) / float64(wears)))
}
