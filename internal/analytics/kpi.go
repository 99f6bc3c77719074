package analytics

import (
	"math"
	"sort"

	"cfemdash/pkg/contracts/domain"
)

// DefaultTopGroups is how many groups the ranking keeps.
const DefaultTopGroups = 15

// ComputeKpis aggregates a (possibly filtered) view into the KPI summary.
// Missing numeric values are excluded from sums and means, never treated
// as zero. An empty view is valid and yields zero counts with NaN ratios.
func ComputeKpis(records []domain.MineRecord, topN int) domain.KpiSet {
	if topN <= 0 {
		topN = DefaultTopGroups
	}

	var kpi domain.KpiSet

	mines := make(map[string]struct{})
	groupRoyalty := make(map[string]float64)
	groupMines := make(map[string]int)
	mappedSubstances := make(map[string]struct{})

	var (
		royaltySum    float64
		royaltyCount  int
		mappedRoyalty float64
	)

	for i := range records {
		rec := &records[i]
		mines[rec.PrimaryKey] = struct{}{}

		if rec.HasRoyalty() {
			royaltySum += rec.RoyaltyCollected2024
			royaltyCount++
		}

		if rec.HasGroup() {
			groupMines[rec.ControllingGroup]++
			if rec.HasRoyalty() {
				groupRoyalty[rec.ControllingGroup] += rec.RoyaltyCollected2024
			} else if _, seen := groupRoyalty[rec.ControllingGroup]; !seen {
				groupRoyalty[rec.ControllingGroup] = 0
			}
		}

		if !rec.IsMapped() {
			continue
		}

		kpi.MappedCount++
		if rec.PrimarySubstance != "" {
			mappedSubstances[rec.PrimarySubstance] = struct{}{}
		}
		if !math.IsNaN(rec.MonthlyContractValue) {
			kpi.MappedMonthlySum += rec.MonthlyContractValue
		}
		if !math.IsNaN(rec.AnnualMappedValue) {
			kpi.MappedAnnualSum += rec.AnnualMappedValue
		}
		if rec.HasRoyalty() {
			mappedRoyalty += rec.RoyaltyCollected2024
		}
	}

	kpi.MineCount = len(mines)
	kpi.TotalRoyalty = royaltySum
	if royaltyCount > 0 {
		kpi.AverageTicket = royaltySum / float64(royaltyCount)
	} else {
		kpi.AverageTicket = math.NaN()
	}

	kpi.GroupCount = len(groupRoyalty)
	kpi.TopGroups = rankGroups(groupRoyalty, groupMines, topN)

	if len(records) > 0 {
		kpi.MappedPercent = float64(kpi.MappedCount) / float64(len(records)) * 100
	}

	if mappedRoyalty > 0 {
		kpi.RatioIndex = kpi.MappedAnnualSum / mappedRoyalty
	} else {
		kpi.RatioIndex = math.NaN()
	}

	kpi.MappedSubstances = len(mappedSubstances)

	return kpi
}

// rankGroups orders groups by summed royalty descending with a
// name-ascending tie-break, so equal totals rank deterministically.
func rankGroups(royalty map[string]float64, mines map[string]int, topN int) []domain.GroupTotal {
	ranked := make([]domain.GroupTotal, 0, len(royalty))
	for g, v := range royalty {
		ranked = append(ranked, domain.GroupTotal{
			Group:   g,
			Royalty: v,
			Mines:   mines[g],
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Royalty != ranked[j].Royalty {
			return ranked[i].Royalty > ranked[j].Royalty
		}
		return ranked[i].Group < ranked[j].Group
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
