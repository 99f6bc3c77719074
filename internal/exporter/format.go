package exporter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display formatting in the pt-BR conventions of the dashboard: '.' as
// thousands separator, ',' as decimal separator.

// FormatCurrencyBR renders a value as Brazilian currency, for example
// "R$ 1.234.567,89". Missing values render as zero, matching the
// dashboard's KPI cards.
func FormatCurrencyBR(v float64) string {
	if math.IsNaN(v) {
		return "R$ 0,00"
	}
	return "R$ " + FormatNumberBR(v, 2)
}

// FormatCurrencyAbbreviatedBR abbreviates millions and billions
// ("R$ 1,50 Mi", "R$ 2,30 Bi"); smaller values print in full.
func FormatCurrencyAbbreviatedBR(v float64) string {
	if math.IsNaN(v) {
		return "R$ 0,00"
	}
	switch {
	case v >= 1e9:
		return "R$ " + decimalComma(v/1e9) + " Bi"
	case v >= 1e6:
		return "R$ " + decimalComma(v/1e6) + " Mi"
	default:
		return FormatCurrencyBR(v)
	}
}

// FormatNumberBR renders a number with '.' thousands grouping and ','
// decimal separator. Missing values render as "0".
func FormatNumberBR(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "0"
	}

	neg := math.Signbit(v)
	v = math.Abs(v)

	s := strconv.FormatFloat(v, 'f', decimals, 64)
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatTaxIDBR masks a normalized 14-digit tax ID for display:
// "12.345.678/9012-34". Anything else passes through unchanged.
func FormatTaxIDBR(taxID string) string {
	if len(taxID) != 14 {
		return taxID
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s",
		taxID[:2], taxID[2:5], taxID[5:8], taxID[8:12], taxID[12:14])
}

func decimalComma(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', 2, 64), ".", ",")
}
