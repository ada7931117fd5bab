package allocate

// Normalize distributes each donor's secondary-benefit pool across its
// claiming rows, in place. Rows are grouped by donor (BufferLinkID); within
// a group each row's share is its relative induced-VMT magnitude times its
// relative distance weight, re-normalized so the group's shares sum to one.
//
// Zero-sum groups (all claimants weightless) fall back to 0 everywhere, so
// the pipeline always produces a finite Final value.
func Normalize(rows []Row) {
	type groupSum struct {
		vmt, weight, combined float64
	}
	sums := make(map[string]*groupSum)
	for i := range rows {
		g, ok := sums[rows[i].BufferLinkID]
		if !ok {
			g = &groupSum{}
			sums[rows[i].BufferLinkID] = g
		}
		g.vmt += rows[i].VMTChange
		g.weight += rows[i].DistWeight
	}

	for i := range rows {
		r := &rows[i]
		g := sums[r.BufferLinkID]
		r.PctVMT = share(r.VMTChange, g.vmt)
		r.PctDistWeight = share(r.DistWeight, g.weight)
		r.Combined = r.PctVMT * r.PctDistWeight
		g.combined += r.Combined
	}

	for i := range rows {
		r := &rows[i]
		r.Pct = share(r.Combined, sums[r.BufferLinkID].combined)
		r.Final = r.Pct * r.SecondaryBenefit
	}
}

// SumByProject folds the allocated shares into per-project secondary
// benefit totals.
func SumByProject(rows []Row) map[string]float64 {
	totals := make(map[string]float64)
	for i := range rows {
		totals[rows[i].ProjID] += rows[i].Final
	}
	return totals
}

// share is num/denom with a zero-denominator fallback to 0.
func share(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}
	return num / denom
}
