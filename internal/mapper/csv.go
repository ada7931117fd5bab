package mapper

import (
	"strconv"

	"github.com/tdmtools/delaycast/internal/netdiff"
	"github.com/tdmtools/delaycast/internal/project"
	"github.com/tdmtools/delaycast/internal/table"
)

// num formats a float with the shortest representation that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteProjectBenefits writes the project-level result table. The cost and
// bc_ratio columns appear only when a cost table was joined; projects the
// cost table does not cover leave those cells empty.
func WriteProjectBenefits(path string, benefits []project.Benefit, withCost bool) error {
	columns := []string{
		"proj_id", "primary_benefits", "secondary_benefits", "total_benefits",
		"vmt_diff", "cma_diff", "utilization",
	}
	if withCost {
		columns = append(columns, "cost", "bc_ratio")
	}

	rows := make([][]string, 0, len(benefits))
	for _, b := range benefits {
		row := []string{
			b.ID, num(b.PrimaryBenefits), num(b.SecondaryBenefits), num(b.TotalBenefits),
			num(b.VMTDiff), num(b.CMADiff), num(b.Utilization),
		}
		if withCost {
			if b.HasCost {
				row = append(row, num(b.Cost), num(b.BCRatio))
			} else {
				row = append(row, "", "")
			}
		}
		rows = append(rows, row)
	}
	return table.WriteCSV(path, columns, rows)
}

// linkDetailColumns is the full derived-column layout of the link detail
// output, in a stable order.
var linkDetailColumns = []string{
	"id", "from_node", "to_node", "dir", "length", "proj_id",
	"ab_volume", "ba_volume", "ab_capacity", "ba_capacity", "ab_delay", "ba_delay",
	"ab_vol_diff", "ba_vol_diff", "tot_vol_diff",
	"ab_cap_diff", "ba_cap_diff", "tot_cap_diff",
	"ab_vol_pct_diff", "ba_vol_pct_diff", "ab_cap_pct_diff", "ba_cap_pct_diff",
	"ab_delay_diff", "ba_delay_diff", "tot_delay_diff",
	"category",
	"ab_cap_ratio", "ba_cap_ratio", "ab_vol_ratio", "ba_vol_ratio",
	"ab_prim_ben", "ba_prim_ben", "ab_sec_ben", "ba_sec_ben",
}

// linkDetailRow renders one record in linkDetailColumns order.
func linkDetailRow(l *netdiff.LinkRecord) []string {
	return []string{
		l.ID, l.FromNode, l.ToNode, strconv.Itoa(l.Dir), num(l.Length), l.ProjectID,
		num(l.ABVolume), num(l.BAVolume), num(l.ABCapacity), num(l.BACapacity), num(l.ABDelay), num(l.BADelay),
		num(l.ABVolDiff), num(l.BAVolDiff), num(l.TotVolDiff),
		num(l.ABCapDiff), num(l.BACapDiff), num(l.TotCapDiff),
		num(l.ABVolPctDiff), num(l.BAVolPctDiff), num(l.ABCapPctDiff), num(l.BACapPctDiff),
		num(l.ABDelayDiff), num(l.BADelayDiff), num(l.TotDelayDiff),
		string(l.Category),
		num(l.ABCapRatio), num(l.BACapRatio), num(l.ABVolRatio), num(l.BAVolRatio),
		num(l.ABPrimBen), num(l.BAPrimBen), num(l.ABSecBen), num(l.BASecBen),
	}
}

// WriteLinkDetail writes every link record with its derived columns, in
// build-network order.
func WriteLinkDetail(path string, links []netdiff.LinkRecord) error {
	rows := make([][]string, 0, len(links))
	for i := range links {
		rows = append(rows, linkDetailRow(&links[i]))
	}
	return table.WriteCSV(path, linkDetailColumns, rows)
}
