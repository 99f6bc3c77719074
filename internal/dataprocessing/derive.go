package dataprocessing

import (
	"cfemdash/pkg/contracts/domain"
)

// monthsPerYear annualizes the monthly contract value.
const monthsPerYear = 12

// Derived column names, appended to the dataset's column list so exports
// carry the computed fields alongside the source ones.
const (
	ColAnnualMappedValue = "valor_anual_mapeado"
	ColMappingStatus     = "status_mapeamento"
)

// Derive fills the two computed fields on every record in place. It must
// run after Normalize, since it consumes already-typed values. NaN monthly
// values propagate to NaN annual values rather than being coerced to zero,
// so unmapped mines never masquerade as zero-value contracts.
func Derive(ds *domain.Dataset) {
	ds.Columns = append(ds.Columns, ColAnnualMappedValue, ColMappingStatus)

	for i := range ds.Records {
		rec := &ds.Records[i]

		rec.AnnualMappedValue = rec.MonthlyContractValue * monthsPerYear

		if rec.ScopeCode != domain.ScopeNotMapped {
			rec.MappingStatus = domain.StatusMapped
		} else {
			rec.MappingStatus = domain.StatusUnmapped
		}
	}
}
