package allocate

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/tdmtools/delaycast/internal/netdiff"
	"github.com/tdmtools/delaycast/internal/netgraph"
)

// MaxBufferRadius caps the donor search radius. The buffer is tied to the
// project's own length but never exceeds this many distance units.
const MaxBufferRadius = 10.0

// MinDist2Link floors the donor distance so the decay weight and later
// divisions stay finite for donors touching a project endpoint.
const MinDist2Link = 0.5

// ErrNoProjects indicates that no link carries a project id with a nonzero
// net capacity change, so there is nothing to allocate. This is bad input
// data, not a recoverable condition.
var ErrNoProjects = errors.New("allocate: no projects with capacity change")

// Row is one (project, project-link, donor-link) triple. The Pct* fields are
// filled by Normalize after all projects have been processed.
type Row struct {
	BufferLinkID     string  // donor link id
	SecondaryBenefit float64 // donor's own secondary benefit, both directions
	ProjID           string
	ProjLinkID       string
	VMTChange        float64 // claimant link's induced-VMT magnitude
	Buffer           float64 // search radius used for this project
	Dist2Link        float64
	DistWeight       float64

	PctVMT        float64
	PctDistWeight float64
	Combined      float64
	Pct           float64
	Final         float64 // the allocated share of the donor's benefit
}

// Allocator wires the allocation loops to their collaborators. Distances
// and Buffer are injected so tests run against synthetic tables.
type Allocator struct {
	Links     []netdiff.LinkRecord
	Distances netgraph.DistanceMatrix
	Buffer    netgraph.BufferQuery
	Log       *slog.Logger
}

// Result carries the full row set plus the per-project secondary sums.
type Result struct {
	Rows      []Row
	ByProject map[string]float64
}

// Run executes the allocation: the nested project/link loops, the
// normalization pass, and the per-project aggregation. The context is
// checked once per project and once per project link.
func (a *Allocator) Run(ctx context.Context) (*Result, error) {
	log := a.Log
	if log == nil {
		log = slog.Default()
	}

	projects := EligibleProjects(a.Links)
	if len(projects) == 0 {
		return nil, ErrNoProjects
	}

	var rows []Row
	for pi, projID := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		buffer := netdiff.ProjectLength(a.Links, projID)
		if buffer > MaxBufferRadius {
			buffer = MaxBufferRadius
		}
		log.Info("allocating secondary benefit",
			"project", projID, "buffer", buffer,
			"progress", pi+1, "projects", len(projects))

		notThisProject := func(l *netdiff.LinkRecord) bool { return l.ProjectID == projID }

		for li := range a.Links {
			link := &a.Links[li]
			if link.ProjectID != projID {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			// Induced or diverted demand matters regardless of the
			// direction of the effect.
			vmtChange := abs(link.TotVolDiff) * link.Length

			for _, di := range a.Buffer.Within(buffer, link, notThisProject) {
				donor := &a.Links[di]
				dist, weight := donorWeight(a.Distances, link, donor, buffer)
				rows = append(rows, Row{
					BufferLinkID:     donor.ID,
					SecondaryBenefit: donor.SecondaryBenefit(),
					ProjID:           projID,
					ProjLinkID:       link.ID,
					VMTChange:        vmtChange,
					Buffer:           buffer,
					Dist2Link:        dist,
					DistWeight:       weight,
				})
			}
		}
	}

	Normalize(rows)

	return &Result{Rows: rows, ByProject: SumByProject(rows)}, nil
}

// donorWeight computes the donor's network distance to the project link and
// the distance-decay weight (1 - d/buffer)^4.
//
// The distance is the mean, over the donor's endpoints, of the shortest-path
// distance to the nearer project-link endpoint, floored at MinDist2Link. A
// donor whose mean distance lands beyond the buffer (the buffer query admits
// a link when either endpoint is close enough) gets weight 0.
func donorWeight(dm netgraph.DistanceMatrix, link, donor *netdiff.LinkRecord, buffer float64) (dist, weight float64) {
	var sum float64
	var n int
	for _, node := range []string{donor.FromNode, donor.ToNode} {
		if d, ok := netgraph.EndpointDistance(dm, link, node); ok {
			sum += d
			n++
		}
	}
	if n == 0 {
		// Neither endpoint reachable; unreachable within any budget.
		return buffer + MinDist2Link, 0
	}

	dist = sum / float64(n)
	if dist < MinDist2Link {
		dist = MinDist2Link
	}
	if dist > buffer {
		return dist, 0
	}
	decay := 1 - dist/buffer
	return dist, decay * decay * decay * decay
}

// EligibleProjects returns the sorted distinct project ids whose links show
// a nonzero net capacity change. Projects without capacity change have no
// cause to claim spillover.
func EligibleProjects(links []netdiff.LinkRecord) []string {
	capByProject := make(map[string]float64)
	for i := range links {
		if links[i].ProjectID == "" {
			continue
		}
		capByProject[links[i].ProjectID] += links[i].TotCapDiff
	}
	var projects []string
	for id, capDiff := range capByProject {
		if capDiff != 0 {
			projects = append(projects, id)
		}
	}
	sort.Strings(projects)
	return projects
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
