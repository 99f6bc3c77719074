package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseDecimal covers Brazilian decimal conversion including the
// source's missing markers.
func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		isNaN bool
	}{
		{"thousands and decimal", "1.234,56", 1234.56, false},
		{"plain integer", "1500", 1500, false},
		{"decimal only", "0,5", 0.5, false},
		{"large currency", "12.345.678,90", 12345678.90, false},
		{"surrounding spaces", "  987,65  ", 987.65, false},
		{"scientific notation", "3,36E+13", 3.36e13, false},
		{"missing token", "#N/D", 0, true},
		{"alternate missing token", "#N/A", 0, true},
		{"empty string", "", 0, true},
		{"garbage", "abc", 0, true},
		{"lone separator", ",", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimal(tt.input)
			if tt.isNaN {
				assert.True(t, math.IsNaN(got), "expected NaN, got %v", got)
				return
			}
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// TestParseDecimalInvariant covers the workbook dialect: excelize renders
// native numeric cells with '.' as the decimal separator, while text
// cells can still carry the Brazilian dialect.
func TestParseDecimalInvariant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		isNaN bool
	}{
		{"native numeric cell", "1234.56", 1234.56, false},
		{"plain integer", "1500", 1500, false},
		{"scientific notation", "3.36E+13", 3.36e13, false},
		{"grouped styled cell", "1,234.56", 1234.56, false},
		{"brazilian text cell", "1.234,56", 1234.56, false},
		{"brazilian decimal only", "0,5", 0.5, false},
		{"missing token", "#N/D", 0, true},
		{"empty string", "", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDecimalInvariant(tt.input)
			if tt.isNaN {
				assert.True(t, math.IsNaN(got), "expected NaN, got %v", got)
				return
			}
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// TestParseDecimalRoundTrip checks that re-rendering a parsed value and
// parsing it again yields the same number.
func TestParseDecimalRoundTrip(t *testing.T) {
	inputs := []string{"1.234,56", "0,5", "1500", "12.345.678,90", "3,36E+13"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			v := ParseDecimal(in)
			again := ParseDecimal(RenderDecimal(v))
			assert.Equal(t, v, again)
		})
	}
}

func TestRenderDecimal(t *testing.T) {
	assert.Equal(t, "", RenderDecimal(math.NaN()))
	assert.Equal(t, "1234.56", RenderDecimal(1234.56))
	assert.Equal(t, "0", RenderDecimal(0))
}

func TestParseTaxID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "scientific notation",
			input:  "3,36E+13",
			want:   "33600000000000",
			wantOK: true,
		},
		{
			name:   "plain digits",
			input:  "3360000000191",
			want:   "03360000000191",
			wantOK: true,
		},
		{
			name:   "already 14 digits",
			input:  "03360000000191",
			want:   "03360000000191",
			wantOK: true,
		},
		{
			name:   "missing token",
			input:  "#N/D",
			want:   "",
			wantOK: false,
		},
		{
			name:   "empty",
			input:  "",
			want:   "",
			wantOK: false,
		},
		{
			name:   "non-numeric kept as-is",
			input:  "SEM CNPJ",
			want:   "SEM CNPJ",
			wantOK: false,
		},
		{
			name:   "too many digits kept as-is",
			input:  "123456789012345678",
			want:   "123456789012345678",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTaxID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.Len(t, got, 14)
			}
		})
	}
}

func TestParseMonths(t *testing.T) {
	assert.Equal(t, 24.0, ParseMonths("24"))
	assert.Equal(t, 13.0, ParseMonths("12,6"))
	assert.True(t, math.IsNaN(ParseMonths("#N/D")))
	assert.True(t, math.IsNaN(ParseMonths("")))
}
