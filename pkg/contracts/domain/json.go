package domain

import (
	"encoding/json"
	"math"
)

// nullableFloat marshals NaN as JSON null. encoding/json rejects NaN
// outright, and the missing-value marker must survive the API boundary.
type nullableFloat float64

func (f nullableFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// MarshalJSON renders NaN-able numeric fields as null.
func (m MineRecord) MarshalJSON() ([]byte, error) {
	type alias MineRecord
	return json.Marshal(struct {
		alias
		RoyaltyCollected2024   nullableFloat `json:"royalty_collected_2024"`
		VolumeCommercialized   nullableFloat `json:"volume_commercialized"`
		ContractDurationMonths nullableFloat `json:"contract_duration_months"`
		ScopeValue             nullableFloat `json:"scope_value"`
		MonthlyContractValue   nullableFloat `json:"monthly_contract_value"`
		AnnualMappedValue      nullableFloat `json:"annual_mapped_value"`
	}{
		alias:                  alias(m),
		RoyaltyCollected2024:   nullableFloat(m.RoyaltyCollected2024),
		VolumeCommercialized:   nullableFloat(m.VolumeCommercialized),
		ContractDurationMonths: nullableFloat(m.ContractDurationMonths),
		ScopeValue:             nullableFloat(m.ScopeValue),
		MonthlyContractValue:   nullableFloat(m.MonthlyContractValue),
		AnnualMappedValue:      nullableFloat(m.AnnualMappedValue),
	})
}

// MarshalJSON renders NaN-able numeric fields as null.
func (k KpiSet) MarshalJSON() ([]byte, error) {
	type alias KpiSet
	return json.Marshal(struct {
		alias
		AverageTicket nullableFloat `json:"average_ticket"`
		RatioIndex    nullableFloat `json:"ratio_index"`
	}{
		alias:         alias(k),
		AverageTicket: nullableFloat(k.AverageTicket),
		RatioIndex:    nullableFloat(k.RatioIndex),
	})
}

// MarshalJSON renders NaN-able numeric fields as null.
func (s Simulation) MarshalJSON() ([]byte, error) {
	type alias Simulation
	return json.Marshal(struct {
		alias
		ProjectedAnnual   nullableFloat `json:"projected_annual"`
		ProjectedMonthly  nullableFloat `json:"projected_monthly"`
		GrowthOverCurrent nullableFloat `json:"growth_over_current"`
	}{
		alias:             alias(s),
		ProjectedAnnual:   nullableFloat(s.ProjectedAnnual),
		ProjectedMonthly:  nullableFloat(s.ProjectedMonthly),
		GrowthOverCurrent: nullableFloat(s.GrowthOverCurrent),
	})
}

// MarshalJSON renders the royalty bounds as null when no record in the
// dataset carries a royalty value.
func (o FilterOptions) MarshalJSON() ([]byte, error) {
	type alias FilterOptions
	return json.Marshal(struct {
		alias
		RoyaltyMin nullableFloat `json:"royalty_min"`
		RoyaltyMax nullableFloat `json:"royalty_max"`
	}{
		alias:      alias(o),
		RoyaltyMin: nullableFloat(o.RoyaltyMin),
		RoyaltyMax: nullableFloat(o.RoyaltyMax),
	})
}
