package unitparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadTimeDays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"day range", "15-30 days", 22.5},
		{"single days", "10 days", 10},
		{"range no unit", "10-15", 12.5},
		{"weeks", "2 weeks", 14},
		{"week range", "2-4 weeks", 21},
		{"empty", "", 30},
		{"garbage", "soon", 30},
		{"spaced range", "5 - 9 days", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LeadTimeDays(tt.input, 30))
		})
	}
}

func TestGigabytes(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"16GB DDR4", 16, true},
		{"1TB NVMe SSD", 1024, true},
		{"512 GB", 512, true},
		{"2 tb", 2048, true},
		{"fast storage", 0, false},
	}

	for _, tt := range tests {
		got, ok := Gigabytes(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}

func TestWarrantyYears(t *testing.T) {
	years, ok := WarrantyYears("3 Years Onsite")
	assert.True(t, ok)
	assert.Equal(t, 3, years)

	_, ok = WarrantyYears("premium support")
	assert.False(t, ok)
}

func TestInches(t *testing.T) {
	in, ok := Inches("27 inch IPS")
	assert.True(t, ok)
	assert.Equal(t, 27.0, in)

	in, ok = Inches("15.6 inches")
	assert.True(t, ok)
	assert.Equal(t, 15.6, in)
}

func TestNits(t *testing.T) {
	n, ok := Nits("350 nits")
	assert.True(t, ok)
	assert.Equal(t, 350.0, n)
}

func TestHours(t *testing.T) {
	h, ok := Hours("up to 12 hours")
	assert.True(t, ok)
	assert.Equal(t, 12, h)
}

func TestLeadingNumber(t *testing.T) {
	n, ok := LeadingNumber("approx 19.5 TFLOPS")
	assert.True(t, ok)
	assert.Equal(t, 19.5, n)

	_, ok = LeadingNumber("none")
	assert.False(t, ok)
}
