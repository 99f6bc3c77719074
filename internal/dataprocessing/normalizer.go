package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cfemdash/pkg/contracts/domain"
)

// Normalized source column names. The raw header goes through
// NormalizeColumnName before any of these are matched.
const (
	colPrimaryKey   = "chaveprimaria"
	colTaxID        = "cpf_cnpj"
	colCompanyName  = "empresa_por_cnpj"
	colMunicipality = "município"
	colState        = "uf"
	colRoyalty      = "totalvalorrecolhido"
	colVolume       = "totalquantidadecomercializada"
	colSubstance    = "substanciamaiscomercializada"
	colSector       = "setor"
	colGroup        = "pai"
	colStrategy     = "tec"
	colScopeCode    = "primeiro_escopo"
	colDuration     = "duração"
	colScopeValue   = "valor"
	colMonthlyValue = "valor_total_mensal"
	colOutsources   = "terceiriza_lavra?"
)

// requiredColumns must all be present in an upload; a missing one is a
// schema failure and nothing is committed.
var requiredColumns = []string{
	colPrimaryKey,
	colTaxID,
	colCompanyName,
	colMunicipality,
	colState,
	colRoyalty,
	colScopeCode,
}

// canonicalColumns is the export-order list of recognized columns.
var canonicalColumns = []string{
	colPrimaryKey,
	colTaxID,
	colCompanyName,
	colMunicipality,
	colState,
	colRoyalty,
	colVolume,
	colSubstance,
	colSector,
	colGroup,
	colStrategy,
	colScopeCode,
	colDuration,
	colScopeValue,
	colMonthlyValue,
	colOutsources,
}

// droppedColumns are known-redundant source columns removed by exact match.
// Columns prefixed "check" are validation leftovers and are also dropped.
var droppedColumns = map[string]struct{}{
	"empresa_cpf_cnpj": {},
	"cfem_(porte)":     {},
}

var canonicalSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(canonicalColumns))
	for _, c := range canonicalColumns {
		s[c] = struct{}{}
	}
	return s
}()

// SchemaError reports required columns absent from an upload. It is a
// load failure: the caller must not commit a partial dataset.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("upload missing required columns: %s",
		strings.Join(e.Missing, ", "))
}

// strategyTier matches TEC tier codes; tiers numbered 3 and above fold
// into the least-specific tier TEC03.
var strategyTier = regexp.MustCompile(`^TEC(\d{2})$`)

const strategyFloor = "TEC03"

// NormalizeStrategy canonicalizes a commercial-strategy tier. TEC01 and
// TEC02 are kept; any higher-numbered TECnn becomes TEC03. Values that are
// not tier codes pass through trimmed.
func NormalizeStrategy(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	m := strategyTier.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 3 {
		return s
	}
	return strategyFloor
}

// Normalize turns a raw table into the canonical dataset: drops ignored
// columns, types numeric fields, normalizes the tax ID, fills the scope
// sentinel and carries unknown columns through untouched. Derived fields
// are not computed here; see Derive.
func Normalize(t *RawTable) (*domain.Dataset, error) {
	var missing []string
	for _, c := range requiredColumns {
		if t.Column(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	var extraColumns []string
	for _, h := range t.Header {
		if _, canonical := canonicalSet[h]; canonical {
			continue
		}
		if isDroppedColumn(h) {
			continue
		}
		extraColumns = append(extraColumns, h)
	}

	ds := &domain.Dataset{
		Records: make([]domain.MineRecord, 0, len(t.Rows)),
		Columns: append(append([]string{}, canonicalColumns...), extraColumns...),
	}

	dec := t.decimalParser()
	for _, row := range t.Rows {
		rec := domain.MineRecord{
			PrimaryKey:           cleanString(t.Cell(row, colPrimaryKey)),
			CompanyName:          cleanString(t.Cell(row, colCompanyName)),
			Municipality:         cleanString(t.Cell(row, colMunicipality)),
			State:                cleanString(t.Cell(row, colState)),
			PrimarySubstance:     cleanString(t.Cell(row, colSubstance)),
			MineralSector:        cleanString(t.Cell(row, colSector)),
			ControllingGroup:     cleanString(t.Cell(row, colGroup)),
			CommercialStrategy:   NormalizeStrategy(t.Cell(row, colStrategy)),
			OutsourcesExtraction: cleanString(t.Cell(row, colOutsources)),

			RoyaltyCollected2024:   dec(t.Cell(row, colRoyalty)),
			VolumeCommercialized:   dec(t.Cell(row, colVolume)),
			ContractDurationMonths: parseMonthsWith(t.Cell(row, colDuration), dec),
			ScopeValue:             dec(t.Cell(row, colScopeValue)),
			MonthlyContractValue:   dec(t.Cell(row, colMonthlyValue)),
		}

		rec.TaxID, rec.TaxIDValid = parseTaxIDWith(t.Cell(row, colTaxID), dec)

		// A missing scope code means no contract; filling the sentinel
		// here keeps the mapping status a pure equality downstream.
		rec.ScopeCode = cleanString(t.Cell(row, colScopeCode))
		if rec.ScopeCode == "" {
			rec.ScopeCode = domain.ScopeNotMapped
		}

		if len(extraColumns) > 0 {
			rec.Extra = make(map[string]string, len(extraColumns))
			for _, c := range extraColumns {
				rec.Extra[c] = cleanString(t.Cell(row, c))
			}
		}

		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

func isDroppedColumn(name string) bool {
	if strings.HasPrefix(name, "check") {
		return true
	}
	_, ok := droppedColumns[name]
	return ok
}

// cleanString trims a raw field and maps missing markers to the empty
// string, the canonical string-side missing value.
func cleanString(s string) string {
	s = strings.TrimSpace(s)
	if domain.IsMissingToken(s) {
		return ""
	}
	return s
}
