package allocate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdmtools/delaycast/internal/netdiff"
	"github.com/tdmtools/delaycast/internal/netgraph"
	"github.com/tdmtools/delaycast/internal/testutil"
)

// fixedBuffer returns preset donor indices regardless of radius.
type fixedBuffer struct {
	donors map[string][]int // project link id -> donor indices
}

func (f *fixedBuffer) Within(radius float64, around *netdiff.LinkRecord, exclude func(*netdiff.LinkRecord) bool) []int {
	return f.donors[around.ID]
}

func TestEligibleProjects_RequiresCapacityChange(t *testing.T) {
	links := []netdiff.LinkRecord{
		testutil.NewLink("1", "a", "b").Project("P2").CapDiff(100, 0).Build(),
		testutil.NewLink("2", "b", "c").Project("P1").CapDiff(50, 50).Build(),
		testutil.NewLink("3", "c", "d").Project("P3").Build(), // no capacity change
		testutil.NewLink("4", "d", "e").Build(),               // no project
	}
	assert.Equal(t, []string{"P1", "P2"}, EligibleProjects(links))
}

func TestEligibleProjects_NetZeroAcrossLinksExcluded(t *testing.T) {
	links := []netdiff.LinkRecord{
		testutil.NewLink("1", "a", "b").Project("P1").CapDiff(100, 0).Build(),
		testutil.NewLink("2", "b", "c").Project("P1").CapDiff(-100, 0).Build(),
	}
	assert.Empty(t, EligibleProjects(links))
}

func TestRun_NoProjectsIsFatal(t *testing.T) {
	links := []netdiff.LinkRecord{testutil.NewLink("1", "a", "b").Build()}
	a := &Allocator{Links: links, Distances: netgraph.NewMatrix(), Buffer: &fixedBuffer{}}

	_, err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrNoProjects)
}

func TestRun_EmitsRowPerProjectLinkDonorPair(t *testing.T) {
	links := []netdiff.LinkRecord{
		testutil.NewLink("p1", "a", "b").Project("P1").Length(4).CapDiff(100, 0).VolDiff(60, -10).Build(),
		testutil.NewLink("d1", "b", "c").SecBen(3, 1).Build(),
		testutil.NewLink("d2", "c", "d").SecBen(5, 0).Build(),
	}
	m := testutil.SymMatrix(
		testutil.Dist{A: "a", B: "b", D: 4},
		testutil.Dist{A: "a", B: "c", D: 6},
		testutil.Dist{A: "a", B: "d", D: 9},
		testutil.Dist{A: "b", B: "c", D: 2},
		testutil.Dist{A: "b", B: "d", D: 5},
	)
	a := &Allocator{
		Links:     links,
		Distances: m,
		Buffer:    &fixedBuffer{donors: map[string][]int{"p1": {1, 2}}},
	}

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	r := res.Rows[0]
	assert.Equal(t, "d1", r.BufferLinkID)
	assert.Equal(t, "P1", r.ProjID)
	assert.Equal(t, "p1", r.ProjLinkID)
	assert.Equal(t, 4.0, r.SecondaryBenefit, "donor ab+ba secondary benefit")
	// |60 + (-10)| * length 4.
	assert.Equal(t, 200.0, r.VMTChange)
	// buffer = min(project length 4, 10).
	assert.Equal(t, 4.0, r.Buffer)
	// d1 endpoints: b -> min(4, 0)=0... b is an endpoint of p1 itself, so
	// nearest distance 0; c -> min(6, 2)=2; mean 1, floored above 0.5.
	assert.Equal(t, 1.0, r.Dist2Link)
	assert.InDelta(t, 0.31640625, r.DistWeight, 1e-9) // (1 - 1/4)^4

	// Sole claimant takes each donor's full pool.
	assert.InDelta(t, 1.0, r.Pct, 1e-9)
	assert.InDelta(t, 4.0, r.Final, 1e-9)
	assert.InDelta(t, 5.0, res.Rows[1].Final, 1e-9)
	assert.InDelta(t, 9.0, res.ByProject["P1"], 1e-9)
}

func TestRun_DonorBeyondBufferGetsZeroWeight(t *testing.T) {
	links := []netdiff.LinkRecord{
		testutil.NewLink("p1", "a", "b").Project("P1").Length(2).CapDiff(100, 0).VolDiff(10, 0).Build(),
		testutil.NewLink("far", "x", "y").SecBen(8, 0).Build(),
	}
	m := testutil.SymMatrix(
		testutil.Dist{A: "a", B: "x", D: 30},
		testutil.Dist{A: "a", B: "y", D: 31},
		testutil.Dist{A: "b", B: "x", D: 29},
		testutil.Dist{A: "b", B: "y", D: 30},
	)
	a := &Allocator{
		Links:     links,
		Distances: m,
		Buffer:    &fixedBuffer{donors: map[string][]int{"p1": {1}}},
	}

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Zero(t, res.Rows[0].DistWeight)
	assert.Zero(t, res.Rows[0].Final)
	assert.Zero(t, res.ByProject["P1"])
}

func TestRun_DonorExactlyAtBufferEdgeGetsZeroWeight(t *testing.T) {
	// Project length 6 -> buffer 6; donor endpoints average exactly 6.
	links := []netdiff.LinkRecord{
		testutil.NewLink("p1", "a", "b").Project("P1").Length(6).CapDiff(100, 0).VolDiff(10, 0).Build(),
		testutil.NewLink("edge", "x", "y").SecBen(2, 0).Build(),
	}
	m := testutil.SymMatrix(
		testutil.Dist{A: "a", B: "x", D: 6},
		testutil.Dist{A: "a", B: "y", D: 6},
		testutil.Dist{A: "b", B: "x", D: 7},
		testutil.Dist{A: "b", B: "y", D: 7},
	)
	a := &Allocator{
		Links:     links,
		Distances: m,
		Buffer:    &fixedBuffer{donors: map[string][]int{"p1": {1}}},
	}

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 6.0, res.Rows[0].Dist2Link)
	assert.Zero(t, res.Rows[0].DistWeight)
}

func TestRun_BufferCappedAtMaxRadius(t *testing.T) {
	links := []netdiff.LinkRecord{
		testutil.NewLink("p1", "a", "b").Project("P1").Length(50).CapDiff(100, 0).VolDiff(10, 0).Build(),
		testutil.NewLink("d1", "b", "c").SecBen(1, 0).Build(),
	}
	m := testutil.SymMatrix(
		testutil.Dist{A: "a", B: "c", D: 3},
		testutil.Dist{A: "b", B: "c", D: 2},
		testutil.Dist{A: "a", B: "b", D: 50},
	)
	a := &Allocator{
		Links:     links,
		Distances: m,
		Buffer:    &fixedBuffer{donors: map[string][]int{"p1": {1}}},
	}

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MaxBufferRadius, res.Rows[0].Buffer)
}

func TestRun_MinimumDistanceFloor(t *testing.T) {
	// Donor sharing both endpoints with the project link: raw distance 0,
	// floored to MinDist2Link.
	links := []netdiff.LinkRecord{
		testutil.NewLink("p1", "a", "b").Project("P1").Length(8).CapDiff(100, 0).VolDiff(10, 0).Build(),
		testutil.NewLink("twin", "a", "b").SecBen(1, 0).Build(),
	}
	m := testutil.SymMatrix(testutil.Dist{A: "a", B: "b", D: 8})
	a := &Allocator{
		Links:     links,
		Distances: m,
		Buffer:    &fixedBuffer{donors: map[string][]int{"p1": {1}}},
	}

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MinDist2Link, res.Rows[0].Dist2Link)
}

func TestRun_Cancellation(t *testing.T) {
	links := []netdiff.LinkRecord{
		testutil.NewLink("p1", "a", "b").Project("P1").CapDiff(100, 0).Build(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &Allocator{Links: links, Distances: netgraph.NewMatrix(), Buffer: &fixedBuffer{}}
	_, err := a.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
