package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"1", 100},
		{"49.99", 4999},
		{"49.9", 4990},
		{"0.01", 1},
		{"10.10", 1010},
		{"", 0},
		{"abc", 0},
		{" 12.50 ", 1250},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToCents(tt.input), "ToCents(%q)", tt.input)
	}
}

func TestToDollars(t *testing.T) {
	assert.Equal(t, "", ToDollars(nil))

	cents := func(c int64) *int64 { return &c }
	assert.Equal(t, "0.00", ToDollars(cents(0)))
	assert.Equal(t, "0.05", ToDollars(cents(5)))
	assert.Equal(t, "49.99", ToDollars(cents(4999)))
	assert.Equal(t, "120.00", ToDollars(cents(12000)))
}

func TestToCents_RoundTrip(t *testing.T) {
	// toCents(toDollars(c)) == c for valid cent amounts, including the values
	// where naive float division drifts (e.g. 8.20, 19.99).
	cases := []int64{0, 1, 5, 99, 100, 820, 1999, 4999, 123456, 999999}
	for _, c := range cases {
		c := c
		assert.Equal(t, c, ToCents(ToDollars(&c)), "round trip for %d cents", c)
	}
}

func TestCostPerWear(t *testing.T) {
	assert.Equal(t, int64(4999), CostPerWear(4999, 0))
	assert.Equal(t, int64(4999), CostPerWear(4999, 1))
	assert.Equal(t, int64(500), CostPerWear(5000, 10))
	assert.Equal(t, int64(1667), CostPerWear(5000, 3))
}
