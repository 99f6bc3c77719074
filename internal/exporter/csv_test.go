package exporter

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfemdash/pkg/contracts/domain"
)

func TestCSVWriterWrite(t *testing.T) {
	columns := []string{
		"chaveprimaria", "empresa_por_cnpj", "totalvalorrecolhido",
		"valor_total_mensal", "status_mapeamento", "observação",
	}
	records := []domain.MineRecord{
		{
			PrimaryKey:           "1-PARAUAPEBAS",
			CompanyName:          "VALE S.A.",
			RoyaltyCollected2024: 1234.56,
			MonthlyContractValue: 1500,
			MappingStatus:        domain.StatusMapped,
			Extra:                map[string]string{"observação": "nota"},
		},
		{
			PrimaryKey:           "2-CONGONHAS",
			CompanyName:          "CSN",
			RoyaltyCollected2024: math.NaN(),
			MonthlyContractValue: math.NaN(),
			MappingStatus:        domain.StatusUnmapped,
		},
	}

	var buf bytes.Buffer
	err := NewCSVWriter(nil).Write(&buf, columns, records)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"), "BOM prefix")

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\xEF\xBB\xBF")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "chaveprimaria;empresa_por_cnpj;totalvalorrecolhido;valor_total_mensal;status_mapeamento;observação", lines[0])
	assert.Equal(t, "1-PARAUAPEBAS;VALE S.A.;1234.56;1500;Mapped;nota", lines[1])
	// NaN renders as the empty field, the output-side missing marker.
	assert.Equal(t, "2-CONGONHAS;CSN;;;Unmapped;", lines[2])
}

func TestCSVWriterEmptyView(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVWriter(nil).Write(&buf, []string{"chaveprimaria"}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")), "\n")
	assert.Equal(t, []string{"chaveprimaria"}, lines)
}
