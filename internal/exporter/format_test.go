package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyBR(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"full currency", 1234567.89, "R$ 1.234.567,89"},
		{"small value", 12.5, "R$ 12,50"},
		{"zero", 0, "R$ 0,00"},
		{"negative", -1500, "R$ -1.500,00"},
		{"missing renders as zero", math.NaN(), "R$ 0,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrencyBR(tt.value))
		})
	}
}

func TestFormatCurrencyAbbreviatedBR(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"billions", 2.3e9, "R$ 2,30 Bi"},
		{"millions", 1.5e6, "R$ 1,50 Mi"},
		{"below a million prints in full", 999999, "R$ 999.999,00"},
		{"missing", math.NaN(), "R$ 0,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrencyAbbreviatedBR(tt.value))
		})
	}
}

func TestFormatNumberBR(t *testing.T) {
	assert.Equal(t, "1.234.567", FormatNumberBR(1234567, 0))
	assert.Equal(t, "1.234,50", FormatNumberBR(1234.5, 2))
	assert.Equal(t, "987", FormatNumberBR(987, 0))
	assert.Equal(t, "0", FormatNumberBR(math.NaN(), 2))
}

func TestFormatTaxIDBR(t *testing.T) {
	assert.Equal(t, "12.345.678/9012-34", FormatTaxIDBR("12345678901234"))
	assert.Equal(t, "SEM CNPJ", FormatTaxIDBR("SEM CNPJ"))
	assert.Equal(t, "", FormatTaxIDBR(""))
}
