package analytics

import (
	"math"

	"cfemdash/pkg/contracts/domain"
)

// Simulate projects the revenue potential of capturing a fraction of the
// unmapped royalty base. The projection converts captured royalty into
// contract revenue at the mapped base's ratio index; when no mapped base
// exists the ratio is undefined and the projection degrades to the raw
// captured royalty.
func Simulate(records []domain.MineRecord, captureFraction float64) domain.Simulation {
	kpi := ComputeKpis(records, 0)

	var unmappedRoyalty float64
	for i := range records {
		rec := &records[i]
		if !rec.IsMapped() && rec.HasRoyalty() {
			unmappedRoyalty += rec.RoyaltyCollected2024
		}
	}

	target := unmappedRoyalty * captureFraction

	projected := target
	if !math.IsNaN(kpi.RatioIndex) {
		projected = target * kpi.RatioIndex
	}

	sim := domain.Simulation{
		CaptureFraction:  captureFraction,
		UnmappedRoyalty:  unmappedRoyalty,
		TargetRoyalty:    target,
		ProjectedAnnual:  projected,
		ProjectedMonthly: projected / 12,
		CurrentAnnual:    kpi.MappedAnnualSum,
	}

	if sim.CurrentAnnual > 0 {
		sim.GrowthOverCurrent = sim.ProjectedAnnual / sim.CurrentAnnual * 100
	} else {
		sim.GrowthOverCurrent = math.NaN()
	}

	return sim
}
