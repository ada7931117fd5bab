package project

// Benefit is one merged project-level result row. Cost and BCRatio are only
// meaningful when HasCost is true (a cost table was supplied and carried a
// row for this project).
type Benefit struct {
	ID                string
	TotalLength       float64
	PrimaryBenefits   float64
	SecondaryBenefits float64
	TotalBenefits     float64
	VMTDiff           float64
	CMADiff           float64
	Utilization       float64
	HasCost           bool
	Cost              float64
	BCRatio           float64
}

// Merge left-joins the primary aggregates with the allocator's secondary
// sums. Projects present only in the secondary map are dropped with the
// left join, mirroring the primary-side data-quality filter. TotalBenefits
// is primary plus secondary exactly, by construction.
func Merge(primary []Aggregate, secondary map[string]float64) []Benefit {
	out := make([]Benefit, 0, len(primary))
	for _, agg := range primary {
		out = append(out, Benefit{
			ID:                agg.ID,
			TotalLength:       agg.TotalLength,
			PrimaryBenefits:   agg.PrimaryBenefits,
			SecondaryBenefits: secondary[agg.ID],
			TotalBenefits:     agg.PrimaryBenefits + secondary[agg.ID],
			VMTDiff:           agg.VMTDiff,
			CMADiff:           agg.CMADiff,
			Utilization:       agg.Utilization,
		})
	}
	return out
}

// JoinCosts left-joins a proj_id -> cost map onto the merged benefits and
// computes benefit/cost ratios in place. Projects without a cost row keep
// HasCost false; a zero cost yields a zero ratio rather than an infinity.
func JoinCosts(benefits []Benefit, costs map[string]float64) {
	for i := range benefits {
		cost, ok := costs[benefits[i].ID]
		if !ok {
			continue
		}
		benefits[i].HasCost = true
		benefits[i].Cost = cost
		if cost != 0 {
			benefits[i].BCRatio = benefits[i].TotalBenefits / cost
		}
	}
}
