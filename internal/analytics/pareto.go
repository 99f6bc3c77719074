package analytics

import (
	"sort"

	"cfemdash/pkg/contracts/domain"
)

// paretoCutoff is the cumulative-share threshold of the concentration cut.
const paretoCutoff = 80.0

// MinePareto returns the individual mines that together concentrate up to
// 80% of the total royalty, sorted by royalty descending with cumulative
// percentages. Mines with missing royalty contribute nothing and sort last.
func MinePareto(records []domain.MineRecord) []domain.ParetoEntry {
	entries := make([]domain.ParetoEntry, 0, len(records))
	for i := range records {
		rec := &records[i]
		v := 0.0
		if rec.HasRoyalty() {
			v = rec.RoyaltyCollected2024
		}
		entries = append(entries, domain.ParetoEntry{
			Key:     rec.PrimaryKey,
			Royalty: v,
		})
	}
	return paretoCut(entries)
}

// GroupPareto aggregates royalty by controlling group, sentinel groups
// excluded, and returns the groups concentrating up to 80% of the total.
func GroupPareto(records []domain.MineRecord) []domain.ParetoEntry {
	totals := make(map[string]float64)
	for i := range records {
		rec := &records[i]
		if !rec.HasGroup() {
			continue
		}
		if rec.HasRoyalty() {
			totals[rec.ControllingGroup] += rec.RoyaltyCollected2024
		} else if _, seen := totals[rec.ControllingGroup]; !seen {
			totals[rec.ControllingGroup] = 0
		}
	}

	entries := make([]domain.ParetoEntry, 0, len(totals))
	for g, v := range totals {
		entries = append(entries, domain.ParetoEntry{Key: g, Royalty: v})
	}
	return paretoCut(entries)
}

// paretoCut sorts entries by royalty descending (key-ascending tie-break),
// fills cumulative percentages of the grand total and keeps the prefix
// whose cumulative share stays at or below the cutoff.
func paretoCut(entries []domain.ParetoEntry) []domain.ParetoEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Royalty != entries[j].Royalty {
			return entries[i].Royalty > entries[j].Royalty
		}
		return entries[i].Key < entries[j].Key
	})

	var total float64
	for _, e := range entries {
		total += e.Royalty
	}
	if total <= 0 {
		return nil
	}

	var cum float64
	out := make([]domain.ParetoEntry, 0, len(entries))
	for _, e := range entries {
		cum += e.Royalty
		e.CumulativePercent = cum / total * 100
		if e.CumulativePercent > paretoCutoff {
			break
		}
		out = append(out, e)
	}
	return out
}
