package netdiff

import (
	"fmt"

	"github.com/tdmtools/delaycast/internal/table"
)

// Epsilon offsets no-build denominators so percent deltas stay finite, and
// MaxPctDiff caps the result so a near-zero denominator cannot dominate the
// classifier's ratio math.
const (
	Epsilon    = 1e-4
	MaxPctDiff = 999.0
)

// Fields binds the differ to the column names of the input tables. All
// bindings except Dir and Geometry are required; CCClass is the
// functional-class value marking centroid connectors, not a column name.
type Fields struct {
	LinkID    string
	FromNode  string
	ToNode    string
	Dir       string // optional; unbound links default to one-way
	Length    string
	ABVol     string
	BAVol     string
	ABCap     string
	BACap     string
	ABDelay   string
	BADelay   string
	FClass    string
	CCClass   string // centroid-connector value of the FClass column
	ProjectID string
	Geometry  string // optional WKT column for the output mapper
}

// required lists the column bindings the differ cannot run without.
func (f Fields) required() []string {
	return []string{
		f.LinkID, f.FromNode, f.ToNode, f.Length,
		f.ABVol, f.BAVol, f.ABCap, f.BACap, f.ABDelay, f.BADelay,
	}
}

// Diff joins the build and no-build link tables on link id and derives all
// delta columns. Centroid connectors are dropped from the build side before
// differencing; links absent from the no-build table difference against
// zeros (the brand-new-link case).
//
// Record order follows build-table order, so downstream output preserves the
// network layer's own ordering.
func Diff(build, nobuild *table.Table, f Fields) ([]LinkRecord, error) {
	if err := build.RequireColumns(append(f.required(), f.FClass, f.ProjectID)...); err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}
	if err := nobuild.RequireColumns(f.required()...); err != nil {
		return nil, fmt.Errorf("no-build network: %w", err)
	}

	noBuildByID := make(map[string]table.Row, len(nobuild.Rows))
	for _, row := range nobuild.Rows {
		noBuildByID[row.Text(f.LinkID)] = row
	}

	records := make([]LinkRecord, 0, len(build.Rows))
	for _, row := range build.Rows {
		if f.FClass != "" && row.Text(f.FClass) == f.CCClass {
			continue // centroid connector
		}

		rec := LinkRecord{
			ID:         row.Text(f.LinkID),
			FromNode:   row.Text(f.FromNode),
			ToNode:     row.Text(f.ToNode),
			Length:     row.Num(f.Length),
			ProjectID:  row.Text(f.ProjectID),
			ABVolume:   row.Num(f.ABVol),
			BAVolume:   row.Num(f.BAVol),
			ABCapacity: row.Num(f.ABCap),
			BACapacity: row.Num(f.BACap),
			ABDelay:    row.Num(f.ABDelay),
			BADelay:    row.Num(f.BADelay),
		}
		if f.Dir != "" {
			rec.Dir = int(row.Num(f.Dir))
		}
		if f.Geometry != "" {
			rec.Geometry = row.Text(f.Geometry)
		}

		// Missing no-build row yields an empty Row, whose accessors
		// null-fill to zero.
		nb := noBuildByID[rec.ID]

		rec.NoBuildABCapacity = nb.Num(f.ABCap)
		rec.NoBuildBACapacity = nb.Num(f.BACap)

		rec.ABVolDiff = rec.ABVolume - nb.Num(f.ABVol)
		rec.BAVolDiff = rec.BAVolume - nb.Num(f.BAVol)
		rec.TotVolDiff = rec.ABVolDiff + rec.BAVolDiff

		rec.ABCapDiff = rec.ABCapacity - rec.NoBuildABCapacity
		rec.BACapDiff = rec.BACapacity - rec.NoBuildBACapacity
		rec.TotCapDiff = rec.ABCapDiff + rec.BACapDiff

		rec.ABDelayDiff = rec.ABDelay - nb.Num(f.ABDelay)
		rec.BADelayDiff = rec.BADelay - nb.Num(f.BADelay)
		rec.TotDelayDiff = rec.ABDelayDiff + rec.BADelayDiff

		rec.ABVolPctDiff = pctDiff(rec.ABVolDiff, nb.Num(f.ABVol))
		rec.BAVolPctDiff = pctDiff(rec.BAVolDiff, nb.Num(f.BAVol))
		rec.ABCapPctDiff = pctDiff(rec.ABCapDiff, rec.NoBuildABCapacity)
		rec.BACapPctDiff = pctDiff(rec.BACapDiff, rec.NoBuildBACapacity)

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("build network: %w", table.ErrEmptyTable)
	}
	return records, nil
}

// pctDiff computes 100*diff/(base+Epsilon) capped at +/-MaxPctDiff.
func pctDiff(diff, base float64) float64 {
	pct := 100 * diff / (base + Epsilon)
	if pct > MaxPctDiff {
		return MaxPctDiff
	}
	if pct < -MaxPctDiff {
		return -MaxPctDiff
	}
	return pct
}
