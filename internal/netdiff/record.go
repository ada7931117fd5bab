package netdiff

// Category classifies how a link's delay change is attributed to projects.
// Assigned by the benefit classifier; unset until classification runs.
type Category string

const (
	// CategoryUnset marks records the classifier has not yet visited.
	CategoryUnset Category = ""

	// CategoryPrimary attributes the full delay change to the link's own
	// capacity change.
	CategoryPrimary Category = "Primary"

	// CategorySecondary attributes the full delay change to demand shifts
	// caused by projects elsewhere in the network.
	CategorySecondary Category = "Secondary"

	// CategoryBoth splits the delay change between the primary and
	// secondary buckets using the capacity/volume percent-delta ratio.
	CategoryBoth Category = "Both"

	// CategoryNone contributes nothing to either bucket.
	CategoryNone Category = "None"
)

// LinkRecord is one directed link-pair of the build network, carrying the
// build-scenario inputs, the no-build capacities needed for the new-link
// override, and every derived column the pipeline computes.
type LinkRecord struct {
	ID        string
	FromNode  string
	ToNode    string
	Dir       int
	Length    float64
	ProjectID string // empty when the link belongs to no project
	Geometry  string // optional WKT LINESTRING, carried through to the output mapper

	// Build-scenario assigned values.
	ABVolume, BAVolume     float64
	ABCapacity, BACapacity float64
	ABDelay, BADelay       float64

	// No-build capacities, kept for the brand-new-link override.
	NoBuildABCapacity, NoBuildBACapacity float64

	// Deltas (build minus no-build).
	ABVolDiff, BAVolDiff, TotVolDiff       float64
	ABCapDiff, BACapDiff, TotCapDiff       float64
	ABDelayDiff, BADelayDiff, TotDelayDiff float64

	// Percent deltas against the no-build value, capped at +/-MaxPctDiff.
	ABVolPctDiff, BAVolPctDiff float64
	ABCapPctDiff, BACapPctDiff float64

	// Classifier outputs.
	Category               Category
	ABCapRatio, BACapRatio float64
	ABVolRatio, BAVolRatio float64
	ABPrimBen, BAPrimBen   float64
	ABSecBen, BASecBen     float64
}

// TwoWay reports whether the link carries traffic in both directions.
// In the source networks Dir != 0 marks a two-way link.
func (r *LinkRecord) TwoWay() bool { return r.Dir != 0 }

// SecondaryBenefit returns the link's total secondary benefit across both
// directions. This is the pool the allocator apportions among projects.
func (r *LinkRecord) SecondaryBenefit() float64 { return r.ABSecBen + r.BASecBen }

// ProjectLength returns the total length of a project's links. Two-way links
// count half per direction, matching how the source networks store one row
// per directed pair.
func ProjectLength(links []LinkRecord, projectID string) float64 {
	var total float64
	for i := range links {
		if links[i].ProjectID != projectID {
			continue
		}
		if links[i].TwoWay() {
			total += links[i].Length / 2
		} else {
			total += links[i].Length
		}
	}
	return total
}
