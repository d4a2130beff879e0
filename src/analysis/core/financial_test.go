package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0.0000034", "0.0000034"},
		{" 1.25 ", "1.25"},
		{"", "0"},
		{"n/a", "0"},
		{"-3", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.raw).String())
		})
	}
}

func TestSumLeading(t *testing.T) {
	shares := []float64{10, 10, 10, 5, 5, 5, 2.5, 2.5, 0, 0, 99}

	assert.True(t, SumLeading(shares, 10).Equal(decimal.NewFromInt(50)), "the 11th entry must be ignored")
	assert.True(t, SumLeading(shares[:3], 10).Equal(decimal.NewFromInt(30)))
	assert.True(t, SumLeading(nil, 10).IsZero())
}

func TestSumLeading_NoFloatDrift(t *testing.T) {
	shares := []float64{0.1, 0.2, 49.7}
	assert.Equal(t, "50", SumLeading(shares, 10).String())
}
