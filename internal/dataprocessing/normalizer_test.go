package dataprocessing

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfemdash/pkg/contracts/domain"
)

const sampleCSV = "CHAVEPRIMARIA;CPF_CNPJ;EMPRESA_POR_CNPJ;MUNICÍPIO;UF;TOTALVALORRECOLHIDO;TOTALQUANTIDADECOMERCIALIZADA;SUBSTANCIAMAISCOMERCIALIZADA;SETOR;PAI;TEC;PRIMEIRO_ESCOPO;DURAÇÃO;VALOR;VALOR_TOTAL_MENSAL;TERCEIRIZA_LAVRA?;CHECK1;EMPRESA_CPF_CNPJ;CFEM (PORTE);OBSERVAÇÃO\n" +
	"191-PARAUAPEBAS;3,36E+13;VALE S.A.;Parauapebas;PA;1.234,56;10.000,00;Ferro;Metálicos;VALE;TEC01;ESC-001;24;5.000,00;1.500,00;Não;x;dup;Grande;nota livre\n" +
	"202-CONGONHAS;#N/D;CSN MINERAÇÃO;Congonhas;MG;#N/D;;Ferro;Metálicos;NA;TEC05;#N/D;#N/D;;;Sim;x;dup;Médio;\n"

func loadSample(t *testing.T) *RawTable {
	t.Helper()
	table, err := LoadCSV(strings.NewReader(sampleCSV), ';')
	require.NoError(t, err)
	return table
}

func TestNormalize(t *testing.T) {
	ds, err := Normalize(loadSample(t))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	t.Run("typed fields", func(t *testing.T) {
		rec := ds.Records[0]
		assert.Equal(t, "191-PARAUAPEBAS", rec.PrimaryKey)
		assert.Equal(t, "33600000000000", rec.TaxID)
		assert.True(t, rec.TaxIDValid)
		assert.Equal(t, "VALE S.A.", rec.CompanyName)
		assert.Equal(t, "PA", rec.State)
		assert.InDelta(t, 1234.56, rec.RoyaltyCollected2024, 1e-9)
		assert.InDelta(t, 10000.0, rec.VolumeCommercialized, 1e-9)
		assert.Equal(t, 24.0, rec.ContractDurationMonths)
		assert.InDelta(t, 1500.0, rec.MonthlyContractValue, 1e-9)
		assert.Equal(t, "ESC-001", rec.ScopeCode)
		assert.Equal(t, "TEC01", rec.CommercialStrategy)
	})

	t.Run("missing markers", func(t *testing.T) {
		rec := ds.Records[1]
		assert.Equal(t, "", rec.TaxID)
		assert.False(t, rec.TaxIDValid)
		assert.True(t, math.IsNaN(rec.RoyaltyCollected2024))
		assert.True(t, math.IsNaN(rec.VolumeCommercialized))
		assert.True(t, math.IsNaN(rec.ContractDurationMonths))
		assert.True(t, math.IsNaN(rec.MonthlyContractValue))
	})

	t.Run("strategy tier absorption", func(t *testing.T) {
		assert.Equal(t, "TEC03", ds.Records[1].CommercialStrategy)
	})

	t.Run("dropped columns", func(t *testing.T) {
		assert.NotContains(t, ds.Columns, "check1")
		assert.NotContains(t, ds.Columns, "empresa_cpf_cnpj")
		assert.NotContains(t, ds.Columns, "cfem_(porte)")
	})

	t.Run("unknown columns pass through", func(t *testing.T) {
		assert.Contains(t, ds.Columns, "observação")
		assert.Equal(t, "nota livre", ds.Records[0].Extra["observação"])
		assert.Equal(t, "", ds.Records[1].Extra["observação"])
	})

	t.Run("scope sentinel filled", func(t *testing.T) {
		assert.Equal(t, domain.ScopeNotMapped, ds.Records[1].ScopeCode)
	})
}

func TestNormalizeMissingRequiredColumns(t *testing.T) {
	csv := "CHAVEPRIMARIA;EMPRESA_POR_CNPJ\nX;Y\n"
	table, err := LoadCSV(strings.NewReader(csv), ';')
	require.NoError(t, err)

	ds, err := Normalize(table)
	assert.Nil(t, ds)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, colTaxID)
	assert.Contains(t, schemaErr.Missing, colRoyalty)
	assert.Contains(t, schemaErr.Missing, colScopeCode)
	assert.NotContains(t, schemaErr.Missing, colPrimaryKey)
}

func TestNormalizeStrategy(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"TEC01", "TEC01"},
		{"TEC02", "TEC02"},
		{"TEC03", "TEC03"},
		{"TEC04", "TEC03"},
		{"TEC05", "TEC03"},
		{"tec04", "TEC03"},
		{" TEC02 ", "TEC02"},
		{"OUTRO", "OUTRO"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStrategy(tt.input))
		})
	}
}

func TestLoadCSVEncodingFallback(t *testing.T) {
	// "MUNICÍPIO" and "NÃO" encoded as ISO8859-1 bytes.
	latin1 := "CHAVEPRIMARIA;CPF_CNPJ;EMPRESA_POR_CNPJ;MUNIC\xcdPIO;UF;TOTALVALORRECOLHIDO;PRIMEIRO_ESCOPO\n" +
		"1;191;ACME;Bel\xe9m;PA;10,00;N\xc3O\n"

	table, err := LoadCSV(strings.NewReader(latin1), ';')
	require.NoError(t, err)

	require.Equal(t, 1, len(table.Rows))
	assert.Equal(t, "Belém", table.Cell(table.Rows[0], "município"))
	assert.Equal(t, "NÃO", table.Cell(table.Rows[0], "primeiro_escopo"))
}

func TestLoadCSVBOMAndEmptyRows(t *testing.T) {
	csv := "\xEF\xBB\xBFA;B\n1;2\n;\n3;4\n"
	table, err := LoadCSV(strings.NewReader(csv), ';')
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Len(t, table.Rows, 2)
}
