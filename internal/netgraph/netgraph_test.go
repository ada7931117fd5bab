package netgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdmtools/delaycast/internal/netdiff"
)

func TestMatrix_SetAndDistance(t *testing.T) {
	m := NewMatrix()
	m.Set("a", "b", 2.5)

	d, ok := m.Distance("a", "b")
	require.True(t, ok)
	assert.Equal(t, 2.5, d)

	_, ok = m.Distance("b", "a")
	assert.False(t, ok, "symmetry is not assumed")

	d, ok = m.Distance("x", "x")
	require.True(t, ok)
	assert.Zero(t, d, "self distance is always zero")

	_, ok = m.Distance("a", "zzz")
	assert.False(t, ok)
}

// chain builds a 4-node line network: n1 -2- n2 -3- n3 -4- n4.
func chain() []netdiff.LinkRecord {
	return []netdiff.LinkRecord{
		{ID: "1", FromNode: "n1", ToNode: "n2", Length: 2, ProjectID: "P1"},
		{ID: "2", FromNode: "n2", ToNode: "n3", Length: 3},
		{ID: "3", FromNode: "n3", ToNode: "n4", Length: 4},
	}
}

func TestSolve_ShortestPathsAlongChain(t *testing.T) {
	m, err := Solve(context.Background(), chain(), []string{"n1", "n2"})
	require.NoError(t, err)
	require.Equal(t, 2, m.Sources())

	d, ok := m.Distance("n1", "n3")
	require.True(t, ok)
	assert.InDelta(t, 5.0, d, 1e-9)

	d, ok = m.Distance("n1", "n4")
	require.True(t, ok)
	assert.InDelta(t, 9.0, d, 1e-9)

	d, ok = m.Distance("n2", "n4")
	require.True(t, ok)
	assert.InDelta(t, 7.0, d, 1e-9)
}

func TestSolve_PicksShorterOfParallelPaths(t *testing.T) {
	links := []netdiff.LinkRecord{
		{ID: "1", FromNode: "a", ToNode: "b", Length: 10},
		{ID: "2", FromNode: "a", ToNode: "c", Length: 1},
		{ID: "3", FromNode: "c", ToNode: "b", Length: 2},
	}
	m, err := Solve(context.Background(), links, []string{"a"})
	require.NoError(t, err)

	d, ok := m.Distance("a", "b")
	require.True(t, ok)
	assert.InDelta(t, 3.0, d, 1e-9)
}

func TestSolve_UnreachableNodesAbsent(t *testing.T) {
	links := []netdiff.LinkRecord{
		{ID: "1", FromNode: "a", ToNode: "b", Length: 1},
		{ID: "2", FromNode: "x", ToNode: "y", Length: 1},
	}
	m, err := Solve(context.Background(), links, []string{"a"})
	require.NoError(t, err)

	_, ok := m.Distance("a", "x")
	assert.False(t, ok)
}

func TestSolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, chain(), []string{"n1"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestProjectNodes_SortedDistinct(t *testing.T) {
	links := []netdiff.LinkRecord{
		{ID: "1", FromNode: "n2", ToNode: "n1", ProjectID: "P1"},
		{ID: "2", FromNode: "n2", ToNode: "n3", ProjectID: "P2"},
		{ID: "3", FromNode: "n8", ToNode: "n9"}, // no project
	}
	assert.Equal(t, []string{"n1", "n2", "n3"}, ProjectNodes(links))
}

func TestNetworkBuffer_WithinRadius(t *testing.T) {
	links := chain()
	m := NewMatrix()
	// Distances from the project link's endpoints n1/n2.
	m.Set("n1", "n2", 2)
	m.Set("n1", "n3", 5)
	m.Set("n1", "n4", 9)
	m.Set("n2", "n3", 3)
	m.Set("n2", "n4", 7)

	b := NewNetworkBuffer(links, m)
	around := &links[0]

	got := b.Within(4, around, nil)
	// Link 2 (n2-n3): n2 at distance 0 from itself... n2 is an endpoint of
	// the around link, so distance 0 qualifies. Link 3 (n3-n4): n3 at 3
	// from n2 qualifies; n4 does not.
	assert.Equal(t, []int{1, 2}, got)

	got = b.Within(1, around, nil)
	assert.Equal(t, []int{1}, got, "only the adjacent link inside radius 1")
}

func TestNetworkBuffer_ExcludeFilter(t *testing.T) {
	links := []netdiff.LinkRecord{
		{ID: "1", FromNode: "a", ToNode: "b", ProjectID: "P1"},
		{ID: "2", FromNode: "b", ToNode: "c", ProjectID: "P1"},
		{ID: "3", FromNode: "b", ToNode: "d"},
	}
	m := NewMatrix()
	m.Set("a", "c", 1)
	m.Set("a", "d", 1)

	b := NewNetworkBuffer(links, m)
	got := b.Within(2, &links[0], func(l *netdiff.LinkRecord) bool {
		return l.ProjectID == "P1"
	})
	assert.Equal(t, []int{2}, got, "own-project links are excluded")
}

func TestEndpointDistance_NearerEndpointWins(t *testing.T) {
	m := NewMatrix()
	m.Set("a", "x", 6)
	m.Set("b", "x", 2)
	around := &netdiff.LinkRecord{ID: "1", FromNode: "a", ToNode: "b"}

	d, ok := EndpointDistance(m, around, "x")
	require.True(t, ok)
	assert.Equal(t, 2.0, d)

	_, ok = EndpointDistance(m, around, "unreached")
	assert.False(t, ok)
}
