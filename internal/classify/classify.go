// Package classify assigns each link a benefit category and splits its delay
// change into primary and secondary benefit.
//
// The decision procedure is a literal lookup table keyed by the signs of the
// total delay, capacity, and volume deltas, followed by an ordered override
// list. Keeping the table literal makes every branch unit-testable without
// constructing full link tables.
package classify

import (
	"math"

	"github.com/tdmtools/delaycast/internal/netdiff"
)

// snapEpsilon snaps benefit values within +/-1e-4 of zero to exactly 0,
// avoiding signed-zero ordering artifacts downstream.
const snapEpsilon = 1e-4

// signKey encodes the three sign tests: delay decreased, capacity increased,
// volume increased. A zero delta counts as an increase.
type signKey struct {
	delayDown bool
	capUp     bool
	volUp     bool
}

// decisionTable maps the eight sign combinations to a category.
var decisionTable = map[signKey]netdiff.Category{
	{delayDown: true, capUp: true, volUp: true}:    netdiff.CategoryPrimary,
	{delayDown: true, capUp: true, volUp: false}:   netdiff.CategoryBoth,
	{delayDown: true, capUp: false, volUp: true}:   netdiff.CategoryNone,
	{delayDown: true, capUp: false, volUp: false}:  netdiff.CategorySecondary,
	{delayDown: false, capUp: true, volUp: true}:   netdiff.CategorySecondary,
	{delayDown: false, capUp: true, volUp: false}:  netdiff.CategoryNone,
	{delayDown: false, capUp: false, volUp: true}:  netdiff.CategoryBoth,
	{delayDown: false, capUp: false, volUp: false}: netdiff.CategoryPrimary,
}

// override replaces the table result when its condition holds. Overrides are
// applied in order after the table lookup; a later override wins.
type override struct {
	applies  func(*netdiff.LinkRecord) bool
	category netdiff.Category
}

var overrides = []override{
	// Brand-new link: no no-build capacity in either direction, so every
	// benefit comes from the link's own (new) capacity.
	{
		applies: func(r *netdiff.LinkRecord) bool {
			return r.NoBuildABCapacity+r.NoBuildBACapacity == 0
		},
		category: netdiff.CategoryPrimary,
	},
	// No capacity change at all: any delay change must come from demand
	// shifting, i.e. from other projects.
	{
		applies:  func(r *netdiff.LinkRecord) bool { return r.TotCapDiff == 0 },
		category: netdiff.CategorySecondary,
	},
}

// Categorize returns the category for a record without mutating it.
func Categorize(r *netdiff.LinkRecord) netdiff.Category {
	cat := decisionTable[signKey{
		delayDown: r.TotDelayDiff < 0,
		capUp:     r.TotCapDiff >= 0,
		volUp:     r.TotVolDiff >= 0,
	}]
	for _, o := range overrides {
		if o.applies(r) {
			cat = o.category
		}
	}
	return cat
}

// Classify sets the record's category, per-direction ratios, and primary and
// secondary benefits. A delay decrease is a positive benefit, hence the
// negation of the delay deltas.
func Classify(r *netdiff.LinkRecord) {
	r.Category = Categorize(r)

	switch r.Category {
	case netdiff.CategoryPrimary:
		r.ABPrimBen = snap(-r.ABDelayDiff)
		r.BAPrimBen = snap(-r.BADelayDiff)
	case netdiff.CategorySecondary:
		r.ABSecBen = snap(-r.ABDelayDiff)
		r.BASecBen = snap(-r.BADelayDiff)
	case netdiff.CategoryBoth:
		r.ABCapRatio, r.ABVolRatio = splitRatio(r.ABCapPctDiff, r.ABVolPctDiff)
		r.BACapRatio, r.BAVolRatio = splitRatio(r.BACapPctDiff, r.BAVolPctDiff)
		r.ABPrimBen = snap(-r.ABDelayDiff * r.ABCapRatio)
		r.BAPrimBen = snap(-r.BADelayDiff * r.BACapRatio)
		r.ABSecBen = snap(-r.ABDelayDiff * r.ABVolRatio)
		r.BASecBen = snap(-r.BADelayDiff * r.BAVolRatio)
	case netdiff.CategoryNone:
		// Contributes nothing to either bucket.
	}
}

// Apply classifies every record in place.
func Apply(records []netdiff.LinkRecord) {
	for i := range records {
		Classify(&records[i])
	}
}

// splitRatio divides a direction's delay benefit between the capacity and
// volume buckets in proportion to the absolute percent deltas. When both
// percentages are zero the capacity share collapses to 0 and the volume
// share takes the remainder.
func splitRatio(capPct, volPct float64) (capRatio, volRatio float64) {
	denom := math.Abs(capPct) + math.Abs(volPct)
	if denom == 0 {
		return 0, 1
	}
	capRatio = math.Abs(capPct) / denom
	return capRatio, 1 - capRatio
}

func snap(v float64) float64 {
	if math.Abs(v) < snapEpsilon {
		return 0
	}
	return v
}
