package project

import (
	"sort"

	"github.com/tdmtools/delaycast/internal/netdiff"
)

// Aggregate is the primary-side rollup for one project.
type Aggregate struct {
	ID              string
	TotalLength     float64
	VMTDiff         float64 // sum of total volume delta times length
	CMADiff         float64 // sum of total capacity delta times length
	PrimaryBenefits float64
	Utilization     float64 // VMTDiff / CMADiff
}

// AggregatePrimary rolls the classified link records up by project id.
// Projects with CMADiff <= 0 are dropped. Results are sorted by id.
func AggregatePrimary(links []netdiff.LinkRecord) []Aggregate {
	byID := make(map[string]*Aggregate)
	for i := range links {
		l := &links[i]
		if l.ProjectID == "" {
			continue
		}
		agg, ok := byID[l.ProjectID]
		if !ok {
			agg = &Aggregate{ID: l.ProjectID}
			byID[l.ProjectID] = agg
		}
		agg.VMTDiff += l.TotVolDiff * l.Length
		agg.CMADiff += l.TotCapDiff * l.Length
		agg.PrimaryBenefits += l.ABPrimBen + l.BAPrimBen
	}

	out := make([]Aggregate, 0, len(byID))
	for id, agg := range byID {
		if agg.CMADiff <= 0 {
			continue // no effective net capacity change
		}
		agg.TotalLength = netdiff.ProjectLength(links, id)
		agg.Utilization = agg.VMTDiff / agg.CMADiff
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
