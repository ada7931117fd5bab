package netgraph

import "github.com/tdmtools/delaycast/internal/netdiff"

// BufferQuery selects donor links within a network-distance radius of a
// project link, excluding a caller-defined set. The allocator depends only
// on this interface; tests substitute fixed candidate sets.
type BufferQuery interface {
	// Within returns the indices (into the allocator's link slice) of
	// links with at least one endpoint within radius network distance of
	// either endpoint of the around link. Links for which exclude returns
	// true are dropped. Order follows the underlying link slice.
	Within(radius float64, around *netdiff.LinkRecord, exclude func(*netdiff.LinkRecord) bool) []int
}

// NetworkBuffer implements BufferQuery over a DistanceMatrix.
type NetworkBuffer struct {
	links []netdiff.LinkRecord
	dm    DistanceMatrix
}

// NewNetworkBuffer builds a buffer query over the given links and distances.
// The link slice is shared, not copied; it must not be mutated while the
// buffer is in use.
func NewNetworkBuffer(links []netdiff.LinkRecord, dm DistanceMatrix) *NetworkBuffer {
	return &NetworkBuffer{links: links, dm: dm}
}

// Within implements BufferQuery.
func (b *NetworkBuffer) Within(radius float64, around *netdiff.LinkRecord, exclude func(*netdiff.LinkRecord) bool) []int {
	var out []int
	for i := range b.links {
		l := &b.links[i]
		if l.ID == around.ID {
			continue
		}
		if exclude != nil && exclude(l) {
			continue
		}
		if b.reach(around, l.FromNode, radius) || b.reach(around, l.ToNode, radius) {
			out = append(out, i)
		}
	}
	return out
}

// reach reports whether node lies within radius of either endpoint of the
// project link.
func (b *NetworkBuffer) reach(around *netdiff.LinkRecord, node string, radius float64) bool {
	if node == "" {
		return false
	}
	if d, ok := b.dm.Distance(around.FromNode, node); ok && d <= radius {
		return true
	}
	if d, ok := b.dm.Distance(around.ToNode, node); ok && d <= radius {
		return true
	}
	return false
}

// EndpointDistance returns the distance from node to the nearer endpoint of
// the project link, or ok=false when neither endpoint reaches it.
func EndpointDistance(dm DistanceMatrix, around *netdiff.LinkRecord, node string) (float64, bool) {
	var best float64
	found := false
	if d, ok := dm.Distance(around.FromNode, node); ok {
		best, found = d, true
	}
	if d, ok := dm.Distance(around.ToNode, node); ok && (!found || d < best) {
		best, found = d, true
	}
	return best, found
}
