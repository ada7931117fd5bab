package netgraph

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/katalvlaran/lvlath/graph/core"
	dijkstra "github.com/katalvlaran/lvlath/graph/algorithms"

	"github.com/tdmtools/delaycast/internal/netdiff"
)

// distScale converts link lengths to the solver's integer edge weights.
// Milli-units keep three decimals of length precision, which is finer than
// any field length coded in the source networks.
const distScale = 1000

// Solve computes shortest-path distances from every source node to all
// reachable nodes of the build network. Links are treated as undirected
// edges weighted by length; parallel links are kept (the shorter one wins
// naturally). Self-loop links cannot shorten any path and are skipped.
//
// The context is checked between per-source Dijkstra runs; a cancelled run
// returns ctx.Err with no partial matrix.
func Solve(ctx context.Context, links []netdiff.LinkRecord, sources []string) (*Matrix, error) {
	// Undirected, weighted; the core graph is a multigraph, so parallel
	// links are kept.
	g := core.NewGraph(false, true)
	for i := range links {
		l := &links[i]
		if l.FromNode == "" || l.ToNode == "" || l.FromNode == l.ToNode {
			continue
		}
		w := int64(math.Round(l.Length * distScale))
		if w < 1 {
			w = 1 // zero-length links still connect their endpoints
		}
		g.AddEdge(l.FromNode, l.ToNode, w)
	}

	// Deterministic source order; duplicates collapse.
	seen := make(map[string]bool, len(sources))
	ordered := make([]string, 0, len(sources))
	for _, s := range sources {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		ordered = append(ordered, s)
	}
	sort.Strings(ordered)

	m := NewMatrix()
	for i, src := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !g.HasVertex(src) {
			continue // isolated node, nothing reachable
		}
		dist, _, err := dijkstra.Dijkstra(g, src)
		if err != nil {
			return nil, fmt.Errorf("shortest paths from %s: %w", src, err)
		}
		for node, d := range dist {
			if d == math.MaxInt64 {
				continue // unreachable
			}
			m.Set(src, node, float64(d)/distScale)
		}
		if (i+1)%50 == 0 {
			slog.Debug("distance matrix progress", "sources_done", i+1, "sources_total", len(ordered))
		}
	}
	return m, nil
}

// ProjectNodes returns the sorted set of endpoint nodes of all links that
// belong to any project. These are the only Dijkstra sources the allocator
// needs.
func ProjectNodes(links []netdiff.LinkRecord) []string {
	seen := make(map[string]bool)
	for i := range links {
		if links[i].ProjectID == "" {
			continue
		}
		seen[links[i].FromNode] = true
		seen[links[i].ToNode] = true
	}
	delete(seen, "")
	nodes := make([]string, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}
