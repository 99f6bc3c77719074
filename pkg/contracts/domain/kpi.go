package domain

// GroupTotal is one entry of the top-groups ranking.
type GroupTotal struct {
	Group   string  `json:"group"`
	Royalty float64 `json:"royalty"`
	Mines   int     `json:"mines"`
}

// KpiSet is the full summary computed over one (possibly filtered) view.
// Undefined ratios and means are NaN, never an error; an empty view is a
// valid input producing zero counts.
type KpiSet struct {
	// Market panorama.
	MineCount     int     `json:"mine_count"`
	TotalRoyalty  float64 `json:"total_royalty"`
	AverageTicket float64 `json:"average_ticket"`

	// Market structure, sentinel groups excluded.
	GroupCount int          `json:"group_count"`
	TopGroups  []GroupTotal `json:"top_groups"`

	// Commercial mapping coverage.
	MappedCount      int     `json:"mapped_count"`
	MappedPercent    float64 `json:"mapped_percent"`
	MappedMonthlySum float64 `json:"mapped_monthly_sum"`
	MappedAnnualSum  float64 `json:"mapped_annual_sum"`

	// Effectiveness.
	RatioIndex       float64 `json:"ratio_index"`
	MappedSubstances int     `json:"mapped_substances"`
}

// ParetoEntry is one record (or group) of a Pareto-80 concentration cut,
// carrying its cumulative share of the total.
type ParetoEntry struct {
	Key               string  `json:"key"`
	Royalty           float64 `json:"royalty"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

// Opportunity is one unmapped mine ranked for commercial prospecting.
type Opportunity struct {
	PrimaryKey       string  `json:"primary_key"`
	TaxID            string  `json:"tax_id"`
	CompanyName      string  `json:"company_name"`
	ControllingGroup string  `json:"controlling_group"`
	State            string  `json:"state"`
	Municipality     string  `json:"municipality"`
	PrimarySubstance string  `json:"primary_substance"`
	Strategy         string  `json:"strategy"`
	Royalty          float64 `json:"royalty"`
	Score            float64 `json:"score"`
}

// StrategicView bundles the strategic analyses of the loaded table.
type StrategicView struct {
	MinePareto    []ParetoEntry `json:"mine_pareto"`
	GroupPareto   []ParetoEntry `json:"group_pareto"`
	Opportunities []Opportunity `json:"opportunities"`
}

// Simulation projects revenue potential from capturing a fraction of the
// currently unmapped royalty base at the mapped base's ratio index.
type Simulation struct {
	CaptureFraction   float64 `json:"capture_fraction"`
	UnmappedRoyalty   float64 `json:"unmapped_royalty"`
	TargetRoyalty     float64 `json:"target_royalty"`
	ProjectedAnnual   float64 `json:"projected_annual"`
	ProjectedMonthly  float64 `json:"projected_monthly"`
	CurrentAnnual     float64 `json:"current_annual"`
	GrowthOverCurrent float64 `json:"growth_over_current"`
}
