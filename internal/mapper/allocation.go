package mapper

import (
	"github.com/tdmtools/delaycast/internal/allocate"
	"github.com/tdmtools/delaycast/internal/table"
)

var allocationColumns = []string{
	"buffer_link_id", "secondary_benefit", "proj_id", "proj_link_id",
	"vmt_change", "buffer", "dist2link", "dist_weight",
	"pct_vmt", "pct_dist_weight", "combined", "pct", "final",
}

// WriteAllocationDetail writes the full allocation row set, one row per
// (project, project-link, donor-link) triple, for auditing how each donor's
// secondary benefit was apportioned.
func WriteAllocationDetail(path string, rows []allocate.Row) error {
	out := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		out = append(out, []string{
			r.BufferLinkID, num(r.SecondaryBenefit), r.ProjID, r.ProjLinkID,
			num(r.VMTChange), num(r.Buffer), num(r.Dist2Link), num(r.DistWeight),
			num(r.PctVMT), num(r.PctDistWeight), num(r.Combined), num(r.Pct), num(r.Final),
		})
	}
	return table.WriteCSV(path, allocationColumns, out)
}
