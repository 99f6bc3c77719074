package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"cfemdash/internal/dataprocessing"
	"cfemdash/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize the output as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter re-serializes filtered views in the upload's own dialect:
// ';'-delimited, BOM-prefixed, canonical column order plus extras,
// numerics as plain decimals with NaN rendered empty.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. A nil logger falls back to the
// default logger.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With("component", "exporter")}
}

// Write serializes records to w in the dataset's column order. It is
// used for HTTP downloads, so it streams row by row instead of building
// the payload in memory.
func (c *CSVWriter) Write(w io.Writer, columns []string, records []domain.MineRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(columns))
	for i := range records {
		rec := &records[i]
		for j, col := range columns {
			row[j] = fieldValue(rec, col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	c.logger.Debug("exported filtered view",
		slog.Int("rows", len(records)),
		slog.Int("columns", len(columns)))
	return nil
}

// fieldValue renders one canonical or extra column of a record.
func fieldValue(rec *domain.MineRecord, column string) string {
	switch column {
	case "chaveprimaria":
		return rec.PrimaryKey
	case "cpf_cnpj":
		return rec.TaxID
	case "empresa_por_cnpj":
		return rec.CompanyName
	case "município":
		return rec.Municipality
	case "uf":
		return rec.State
	case "totalvalorrecolhido":
		return dataprocessing.RenderDecimal(rec.RoyaltyCollected2024)
	case "totalquantidadecomercializada":
		return dataprocessing.RenderDecimal(rec.VolumeCommercialized)
	case "substanciamaiscomercializada":
		return rec.PrimarySubstance
	case "setor":
		return rec.MineralSector
	case "pai":
		return rec.ControllingGroup
	case "tec":
		return rec.CommercialStrategy
	case "primeiro_escopo":
		return rec.ScopeCode
	case "duração":
		return dataprocessing.RenderDecimal(rec.ContractDurationMonths)
	case "valor":
		return dataprocessing.RenderDecimal(rec.ScopeValue)
	case "valor_total_mensal":
		return dataprocessing.RenderDecimal(rec.MonthlyContractValue)
	case "terceiriza_lavra?":
		return rec.OutsourcesExtraction
	case "valor_anual_mapeado":
		return dataprocessing.RenderDecimal(rec.AnnualMappedValue)
	case "status_mapeamento":
		return string(rec.MappingStatus)
	default:
		return rec.Extra[column]
	}
}
