package decimalx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSlope(t *testing.T) {
	testCases := []struct {
		name     string
		ds       []decimal.Decimal
		positive bool
		zero     bool
	}{
		{
			name: "rising",
			ds: []decimal.Decimal{
				decimal.NewFromInt(1),
				decimal.NewFromInt(2),
				decimal.NewFromInt(3),
				decimal.NewFromInt(4),
			},
			positive: true,
		},
		{
			name: "falling",
			ds: []decimal.Decimal{
				decimal.NewFromInt(300),
				decimal.NewFromInt(200),
				decimal.NewFromInt(100),
			},
			positive: false,
		},
		{
			name: "flat",
			ds: []decimal.Decimal{
				decimal.NewFromInt(5),
				decimal.NewFromInt(5),
				decimal.NewFromInt(5),
			},
			zero: true,
		},
		{
			name: "too short",
			ds:   []decimal.Decimal{decimal.NewFromInt(5)},
			zero: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slope := Slope(tc.ds)
			if tc.zero {
				assert.True(t, slope.IsZero())
				return
			}
			assert.Equal(t, tc.positive, slope.IsPositive())
		})
	}
}

func TestGroup(t *testing.T) {
	testCases := []struct {
		name   string
		in     string
		places int32
		want   string
	}{
		{name: "plain", in: "51000", places: 2, want: "51,000.00"},
		{name: "millions", in: "1234567.891", places: 2, want: "1,234,567.89"},
		{name: "small", in: "0.42", places: 2, want: "0.42"},
		{name: "three digits", in: "999", places: 0, want: "999"},
		{name: "four digits no places", in: "1000", places: 0, want: "1,000"},
		{name: "negative", in: "-1234.5", places: 2, want: "-1,234.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Group(MustFromString(tc.in), tc.places))
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹50,000.00", Money("₹", decimal.NewFromInt(50000), 2))
	assert.Equal(t, "$2,500.00", Money("$", decimal.NewFromInt(2500), 2))
}
