package dataprocessing

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// LoadExcel reads the first sheet carrying CFEM data from an .xlsx workbook
// into the same raw-table shape the CSV reader produces. Sheets are selected
// by looking for the tax-ID column in the header row; when no sheet
// matches, the first non-empty sheet is used. Native numeric cells arrive
// in invariant format, so the table is marked NumberFormatInvariant and
// must not go through the Brazilian decimal rule.
func LoadExcel(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var fallback [][]string

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if fallback == nil {
			fallback = rows
		}
		for _, h := range rows[0] {
			if NormalizeColumnName(h) == colTaxID {
				return newExcelTable(rows), nil
			}
		}
	}

	if fallback == nil {
		return nil, fmt.Errorf("no data sheet found in workbook")
	}
	return newExcelTable(fallback), nil
}

func newExcelTable(rows [][]string) *RawTable {
	t := newRawTable(rows)
	t.Numbers = NumberFormatInvariant
	return t
}
