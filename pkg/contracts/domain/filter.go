package domain

// MappingFilter selects records by mapping status.
type MappingFilter string

const (
	MappingAny          MappingFilter = "any"
	MappingMappedOnly   MappingFilter = "mapped"
	MappingUnmappedOnly MappingFilter = "unmapped"
)

// OutsourcingFilter selects records by the outsources-extraction flag.
type OutsourcingFilter string

const (
	OutsourcingAny OutsourcingFilter = "any"
	OutsourcingYes OutsourcingFilter = "yes"
	OutsourcingNo  OutsourcingFilter = "no"
)

// RoyaltyRange is an inclusive bound test on RoyaltyCollected2024.
// While the range is active, records with a missing royalty value are
// excluded from results.
type RoyaltyRange struct {
	Min float64 `json:"min" validate:"ltefield=Max"`
	Max float64 `json:"max"`
}

// FilterSpec describes one filtered view over the canonical table.
// Every dimension is optional; an absent dimension places no constraint.
// Set dimensions are OR within the set and AND across dimensions.
type FilterSpec struct {
	Strategies           []string          `json:"strategies,omitempty"`
	Substances           []string          `json:"substances,omitempty"`
	States               []string          `json:"states,omitempty"`
	Groups               []string          `json:"groups,omitempty"`
	MappingStatus        MappingFilter     `json:"mapping_status,omitempty" validate:"omitempty,oneof=any mapped unmapped"`
	OutsourcesExtraction OutsourcingFilter `json:"outsources_extraction,omitempty" validate:"omitempty,oneof=any yes no"`
	RoyaltyRange         *RoyaltyRange     `json:"royalty_range,omitempty"`
}

// IsEmpty reports whether the spec places no constraint at all.
func (f FilterSpec) IsEmpty() bool {
	return len(f.Strategies) == 0 &&
		len(f.Substances) == 0 &&
		len(f.States) == 0 &&
		len(f.Groups) == 0 &&
		(f.MappingStatus == "" || f.MappingStatus == MappingAny) &&
		(f.OutsourcesExtraction == "" || f.OutsourcesExtraction == OutsourcingAny) &&
		f.RoyaltyRange == nil
}

// FilterOptions lists the selectable universe per filter dimension,
// computed from the loaded table. Groups excludes sentinel none/outside
// values; those records are not filterable by group.
type FilterOptions struct {
	Strategies  []string `json:"strategies"`
	Substances  []string `json:"substances"`
	States      []string `json:"states"`
	Groups      []string `json:"groups"`
	Outsourcing []string `json:"outsourcing"`
	// RoyaltyMin/Max bound the observed royalty values, ignoring missing
	// entries. Both are NaN when no record has a royalty value.
	RoyaltyMin float64 `json:"royalty_min"`
	RoyaltyMax float64 `json:"royalty_max"`
}
