package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// utf8BOM is the byte-order mark some spreadsheet exports prepend.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NumberFormat identifies the decimal dialect of a raw table's cells.
type NumberFormat int

const (
	// NumberFormatBrazilian is the CSV source dialect: '.' thousands
	// separator, ',' decimal separator.
	NumberFormatBrazilian NumberFormat = iota
	// NumberFormatInvariant is how excelize renders native numeric cells
	// ("1234.56").
	NumberFormatInvariant
)

// RawTable is the untyped result of reading an upload: normalized header
// names plus string rows aligned to the header width.
type RawTable struct {
	Header  []string
	Rows    [][]string
	Numbers NumberFormat

	index map[string]int
}

// decimalParser returns the decimal conversion for the table's dialect.
func (t *RawTable) decimalParser() func(string) float64 {
	if t.Numbers == NumberFormatInvariant {
		return ParseDecimalInvariant
	}
	return ParseDecimal
}

// Column returns the index of a normalized column name, or -1.
func (t *RawTable) Column(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Cell returns the value at (row, column name), or "" when absent.
func (t *RawTable) Cell(row []string, name string) string {
	i := t.Column(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// LoadCSV reads a ';'-delimited upload into a RawTable. The payload is
// decoded as UTF-8 (BOM tolerated) with an ISO8859-1 fallback for legacy
// exports. The header row is required; fully empty rows are dropped.
func LoadCSV(r io.Reader, delimiter rune) (*RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode upload: %w", err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse csv: missing header row")
	}

	return newRawTable(rows), nil
}

// newRawTable normalizes the header row and aligns data rows to it.
func newRawTable(rows [][]string) *RawTable {
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = NormalizeColumnName(h)
	}

	t := &RawTable{
		Header: header,
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		if _, exists := t.index[h]; !exists {
			t.index[h] = i
		}
	}

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		aligned := make([]string, len(header))
		for i := range aligned {
			if i < len(row) {
				aligned[i] = strings.TrimSpace(row[i])
			}
		}
		t.Rows = append(t.Rows, aligned)
	}

	return t
}

// NormalizeColumnName canonicalizes a source header: trimmed, lowercased,
// spaces replaced with underscores.
func NormalizeColumnName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
