package analytics

import (
	"sort"
	"strings"

	"cfemdash/pkg/contracts/domain"
)

// DefaultTopOpportunities is how many unmapped mines the ranking keeps.
const DefaultTopOpportunities = 20

// strategyWeights score the commercial-strategy tiers. Tiers numbered 3
// and above were folded into TEC03 during normalization, so three weights
// cover the whole universe; anything else scores zero.
var strategyWeights = map[string]float64{
	"TEC01": 5,
	"TEC02": 4,
	"TEC03": 3,
}

// StrategyWeight returns the prospecting-priority weight of a strategy
// tier, zero for unknown or missing tiers.
func StrategyWeight(strategy string) float64 {
	return strategyWeights[strings.ToUpper(strings.TrimSpace(strategy))]
}

// PriorityScore is the prospecting score of one mine: royalty times the
// strategy-tier weight. A missing royalty scores zero.
func PriorityScore(rec *domain.MineRecord) float64 {
	if !rec.HasRoyalty() {
		return 0
	}
	return rec.RoyaltyCollected2024 * StrategyWeight(rec.CommercialStrategy)
}

// TopOpportunities ranks the unmapped mines of a view by priority score
// descending and returns the first topN. Ties break by primary key
// ascending so the ranking is deterministic.
func TopOpportunities(records []domain.MineRecord, topN int) []domain.Opportunity {
	if topN <= 0 {
		topN = DefaultTopOpportunities
	}

	opps := make([]domain.Opportunity, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.IsMapped() {
			continue
		}
		royalty := 0.0
		if rec.HasRoyalty() {
			royalty = rec.RoyaltyCollected2024
		}
		opps = append(opps, domain.Opportunity{
			PrimaryKey:       rec.PrimaryKey,
			TaxID:            rec.TaxID,
			CompanyName:      rec.CompanyName,
			ControllingGroup: rec.ControllingGroup,
			State:            rec.State,
			Municipality:     rec.Municipality,
			PrimarySubstance: rec.PrimarySubstance,
			Strategy:         rec.CommercialStrategy,
			Royalty:          royalty,
			Score:            PriorityScore(rec),
		})
	}

	sort.Slice(opps, func(i, j int) bool {
		if opps[i].Score != opps[j].Score {
			return opps[i].Score > opps[j].Score
		}
		return opps[i].PrimaryKey < opps[j].PrimaryKey
	})

	if len(opps) > topN {
		opps = opps[:topN]
	}
	return opps
}
