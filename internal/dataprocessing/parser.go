package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"cfemdash/pkg/contracts/domain"
)

// taxIDDigits is the canonical CNPJ length after normalization.
const taxIDDigits = 14

// ParseDecimal converts a Brazilian-formatted decimal string to a float64.
// The source uses '.' as thousands separator and ',' as decimal separator
// ("1.234,56" -> 1234.56). Missing markers and unparseable input map to
// NaN; this function never fails.
func ParseDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if domain.IsMissingToken(s) {
		return math.NaN()
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseDecimalInvariant converts a cell already rendered in invariant
// format ("1234.56"), the way excelize renders native numeric cells.
// Text cells inside a workbook can still carry the Brazilian dialect,
// so a string with a decimal comma falls back to ParseDecimal.
func ParseDecimalInvariant(s string) float64 {
	s = strings.TrimSpace(s)
	if domain.IsMissingToken(s) {
		return math.NaN()
	}

	comma := strings.LastIndexByte(s, ',')
	dot := strings.LastIndexByte(s, '.')
	switch {
	case comma < 0:
		// Plain invariant: "1234.56", "1234", "3.36E+13".
	case dot > comma:
		// Grouped invariant from a styled cell: "1,234.56".
		s = strings.ReplaceAll(s, ",", "")
	default:
		return ParseDecimal(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseTaxID normalizes a CPF/CNPJ field to a 14-digit string. Spreadsheet
// mangling leaves tax IDs in scientific notation ("3,36E+13"); the value is
// decimal-parsed, rounded to the nearest integer and left-padded with
// zeros. Non-numeric input is returned unchanged with ok=false so the
// record can be flagged instead of aborting the load.
func ParseTaxID(s string) (string, bool) {
	return parseTaxIDWith(s, ParseDecimal)
}

func parseTaxIDWith(s string, dec func(string) float64) (string, bool) {
	s = strings.TrimSpace(s)
	if domain.IsMissingToken(s) {
		return "", false
	}

	f := dec(s)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return s, false
	}

	n := int64(math.Round(f))
	digits := strconv.FormatInt(n, 10)
	if len(digits) > taxIDDigits {
		return s, false
	}

	return strings.Repeat("0", taxIDDigits-len(digits)) + digits, true
}

// ParseMonths converts a contract-duration field to whole months.
// Missing or unparseable input stays NaN rather than being coerced to zero.
func ParseMonths(s string) float64 {
	return parseMonthsWith(s, ParseDecimal)
}

func parseMonthsWith(s string, dec func(string) float64) float64 {
	v := dec(s)
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v)
}

// RenderDecimal re-renders a numeric field as a plain decimal for export.
// NaN renders as the empty string, the output-side missing marker.
func RenderDecimal(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
