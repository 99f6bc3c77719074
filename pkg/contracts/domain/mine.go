package domain

import (
	"math"
)

// MineRecord is the canonical cleaned unit of truth for one mine/company
// entry of the CFEM-CRM base. Numeric fields use NaN as the missing marker;
// string fields use the empty string. Records are never mutated after load.
type MineRecord struct {
	PrimaryKey             string  `json:"primary_key"`
	TaxID                  string  `json:"tax_id"`
	TaxIDValid             bool    `json:"tax_id_valid"`
	CompanyName            string  `json:"company_name"`
	Municipality           string  `json:"municipality"`
	State                  string  `json:"state"`
	RoyaltyCollected2024   float64 `json:"royalty_collected_2024"`
	VolumeCommercialized   float64 `json:"volume_commercialized"`
	PrimarySubstance       string  `json:"primary_substance"`
	MineralSector          string  `json:"mineral_sector"`
	ControllingGroup       string  `json:"controlling_group"`
	CommercialStrategy     string  `json:"commercial_strategy"`
	ScopeCode              string  `json:"scope_code"`
	ContractDurationMonths float64 `json:"contract_duration_months"`
	ScopeValue             float64 `json:"scope_value"`
	MonthlyContractValue   float64 `json:"monthly_contract_value"`
	OutsourcesExtraction   string  `json:"outsources_extraction"`

	// Derived fields. AnnualMappedValue is always 12x MonthlyContractValue
	// or NaN; MappingStatus is a pure function of ScopeCode. Neither is
	// ever set independently.
	AnnualMappedValue float64       `json:"annual_mapped_value"`
	MappingStatus     MappingStatus `json:"mapping_status"`

	// Extra carries unknown source columns untouched so unrecognized
	// uploads keep their data through filter and export.
	Extra map[string]string `json:"extra,omitempty"`
}

// MappingStatus indicates whether a mine has an associated commercial
// contract scope in the CRM.
type MappingStatus string

const (
	StatusMapped   MappingStatus = "Mapped"
	StatusUnmapped MappingStatus = "Unmapped"
)

// IsMapped reports whether the record has a commercial contract scope.
func (m *MineRecord) IsMapped() bool {
	return m.MappingStatus == StatusMapped
}

// HasGroup reports whether the record belongs to a real controlling group,
// i.e. its group field is not one of the none/outside sentinel values.
func (m *MineRecord) HasGroup() bool {
	return !IsGroupSentinel(m.ControllingGroup)
}

// HasRoyalty reports whether the royalty field carries a real value.
func (m *MineRecord) HasRoyalty() bool {
	return !math.IsNaN(m.RoyaltyCollected2024)
}

// Dataset is the canonical in-memory table produced by one upload run.
// Columns preserves the normalized source header order for export.
type Dataset struct {
	Records []MineRecord `json:"records"`
	Columns []string     `json:"columns"`
}

// Len returns the number of canonical records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
