package dataprocessing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes an .xlsx with a decoy first sheet and a data
// sheet carrying the CFEM header, mixing native numeric cells with
// Brazilian-formatted text cells.
func buildWorkbook(t *testing.T) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]interface{}{"Observações", "Data"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]interface{}{"planilha de notas", "2024-01-01"}))

	_, err := f.NewSheet("CFEM")
	require.NoError(t, err)

	require.NoError(t, f.SetSheetRow("CFEM", "A1", &[]interface{}{
		"ChavePrimaria", "CPF_CNPJ", "Empresa_por_CNPJ", "Município", "UF",
		"TotalValorRecolhido", "PRIMEIRO_ESCOPO", "Duração", "VALOR_TOTAL_MENSAL",
	}))
	require.NoError(t, f.SetSheetRow("CFEM", "A2", &[]interface{}{
		"mina-1", int64(12345678000195), "Vale S.A.", "Parauapebas", "PA",
		1234.56, "ESC-01", 24, 2000.5,
	}))
	require.NoError(t, f.SetSheetRow("CFEM", "A3", &[]interface{}{
		"mina-2", "98765432000110", "CSN Mineração", "Congonhas", "MG",
		"1.234,56", "NÃO", "", "",
	}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestLoadExcel(t *testing.T) {
	t.Run("skips sheets without the tax id column", func(t *testing.T) {
		table, err := LoadExcel(buildWorkbook(t))
		require.NoError(t, err)

		assert.Equal(t, NumberFormatInvariant, table.Numbers)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "mina-1", table.Cell(table.Rows[0], "chaveprimaria"))
	})

	t.Run("native numeric cells keep their scale", func(t *testing.T) {
		table, err := LoadExcel(buildWorkbook(t))
		require.NoError(t, err)

		ds, err := Normalize(table)
		require.NoError(t, err)
		require.Len(t, ds.Records, 2)

		rec := ds.Records[0]
		assert.InDelta(t, 1234.56, rec.RoyaltyCollected2024, 1e-9)
		assert.InDelta(t, 2000.5, rec.MonthlyContractValue, 1e-9)
		assert.InDelta(t, 24, rec.ContractDurationMonths, 1e-9)
		assert.Equal(t, "12345678000195", rec.TaxID)
		assert.True(t, rec.TaxIDValid)
	})

	t.Run("brazilian text cells still parse", func(t *testing.T) {
		table, err := LoadExcel(buildWorkbook(t))
		require.NoError(t, err)

		ds, err := Normalize(table)
		require.NoError(t, err)

		assert.InDelta(t, 1234.56, ds.Records[1].RoyaltyCollected2024, 1e-9)
		assert.Equal(t, "98765432000110", ds.Records[1].TaxID)
	})

	t.Run("workbook without data is an error", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)

		_, err = LoadExcel(bytes.NewReader(buf.Bytes()))
		require.Error(t, err)
	})
}
