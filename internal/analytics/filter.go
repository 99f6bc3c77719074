package analytics

import (
	"math"
	"sort"

	"cfemdash/pkg/contracts/domain"
)

// ApplyFilters returns the records satisfying every active predicate of
// the spec. Dimensions combine with AND; the values inside one set
// dimension combine with OR. The function is pure: it never mutates the
// input and repeated application with the same spec is a no-op.
func ApplyFilters(records []domain.MineRecord, spec domain.FilterSpec) []domain.MineRecord {
	if spec.IsEmpty() {
		return records
	}

	strategies := toSet(spec.Strategies)
	substances := toSet(spec.Substances)
	states := toSet(spec.States)
	groups := toSet(spec.Groups)

	out := make([]domain.MineRecord, 0, len(records))
	for _, rec := range records {
		if !matches(&rec, spec, strategies, substances, states, groups) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matches(rec *domain.MineRecord, spec domain.FilterSpec,
	strategies, substances, states, groups map[string]struct{}) bool {

	if len(strategies) > 0 {
		if _, ok := strategies[rec.CommercialStrategy]; !ok {
			return false
		}
	}
	if len(substances) > 0 {
		if _, ok := substances[rec.PrimarySubstance]; !ok {
			return false
		}
	}
	if len(states) > 0 {
		if _, ok := states[rec.State]; !ok {
			return false
		}
	}

	// Sentinel-group records are never filterable by group; an active
	// group selection keeps them in the result set.
	if len(groups) > 0 && !domain.IsGroupSentinel(rec.ControllingGroup) {
		if _, ok := groups[rec.ControllingGroup]; !ok {
			return false
		}
	}

	switch spec.MappingStatus {
	case domain.MappingMappedOnly:
		if !rec.IsMapped() {
			return false
		}
	case domain.MappingUnmappedOnly:
		if rec.IsMapped() {
			return false
		}
	}

	switch spec.OutsourcesExtraction {
	case domain.OutsourcingYes:
		if rec.OutsourcesExtraction != domain.OutsourcesYes {
			return false
		}
	case domain.OutsourcingNo:
		if rec.OutsourcesExtraction != domain.OutsourcesNo {
			return false
		}
	}

	if r := spec.RoyaltyRange; r != nil {
		v := rec.RoyaltyCollected2024
		if math.IsNaN(v) || v < r.Min || v > r.Max {
			return false
		}
	}

	return true
}

// Options computes the selectable universe per filter dimension from the
// loaded table. The group universe excludes sentinel none/outside values.
// Royalty bounds ignore missing values and are NaN for an all-missing
// (or empty) table.
func Options(records []domain.MineRecord) domain.FilterOptions {
	strategies := make(map[string]struct{})
	substances := make(map[string]struct{})
	states := make(map[string]struct{})
	groups := make(map[string]struct{})
	outsourcing := make(map[string]struct{})

	royaltyMin, royaltyMax := math.NaN(), math.NaN()

	for i := range records {
		rec := &records[i]
		addNonEmpty(strategies, rec.CommercialStrategy)
		addNonEmpty(substances, rec.PrimarySubstance)
		addNonEmpty(states, rec.State)
		addNonEmpty(outsourcing, rec.OutsourcesExtraction)
		if !domain.IsGroupSentinel(rec.ControllingGroup) {
			groups[rec.ControllingGroup] = struct{}{}
		}

		v := rec.RoyaltyCollected2024
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(royaltyMin) || v < royaltyMin {
			royaltyMin = v
		}
		if math.IsNaN(royaltyMax) || v > royaltyMax {
			royaltyMax = v
		}
	}

	return domain.FilterOptions{
		Strategies:  sortedKeys(strategies),
		Substances:  sortedKeys(substances),
		States:      sortedKeys(states),
		Groups:      sortedKeys(groups),
		Outsourcing: sortedKeys(outsourcing),
		RoyaltyMin:  royaltyMin,
		RoyaltyMax:  royaltyMax,
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func addNonEmpty(s map[string]struct{}, v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func sortedKeys(s map[string]struct{}) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
