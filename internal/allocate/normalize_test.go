package allocate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SingleClaimantTakesAll(t *testing.T) {
	rows := []Row{
		{BufferLinkID: "d1", SecondaryBenefit: 7, ProjID: "P1", VMTChange: 100, DistWeight: 0.5},
	}
	Normalize(rows)

	assert.Equal(t, 1.0, rows[0].PctVMT)
	assert.Equal(t, 1.0, rows[0].PctDistWeight)
	assert.Equal(t, 1.0, rows[0].Pct)
	assert.Equal(t, 7.0, rows[0].Final)
}

func TestNormalize_SharesSumToOnePerDonor(t *testing.T) {
	rows := []Row{
		{BufferLinkID: "d1", SecondaryBenefit: 10, ProjID: "P1", VMTChange: 300, DistWeight: 0.8},
		{BufferLinkID: "d1", SecondaryBenefit: 10, ProjID: "P2", VMTChange: 100, DistWeight: 0.2},
		{BufferLinkID: "d1", SecondaryBenefit: 10, ProjID: "P2", VMTChange: 100, DistWeight: 0.4},
		{BufferLinkID: "d2", SecondaryBenefit: 4, ProjID: "P1", VMTChange: 50, DistWeight: 0.3},
		{BufferLinkID: "d2", SecondaryBenefit: 4, ProjID: "P3", VMTChange: 150, DistWeight: 0.1},
	}
	Normalize(rows)

	sums := map[string]float64{}
	finals := map[string]float64{}
	for _, r := range rows {
		sums[r.BufferLinkID] += r.Pct
		finals[r.BufferLinkID] += r.Final
	}
	// Conservation: no leakage, no double counting.
	assert.InDelta(t, 1.0, sums["d1"], 1e-6)
	assert.InDelta(t, 1.0, sums["d2"], 1e-6)
	assert.InDelta(t, 10.0, finals["d1"], 1e-9)
	assert.InDelta(t, 4.0, finals["d2"], 1e-9)
}

func TestNormalize_HigherVMTAndProximityClaimMore(t *testing.T) {
	rows := []Row{
		{BufferLinkID: "d1", SecondaryBenefit: 10, ProjID: "near", VMTChange: 200, DistWeight: 0.9},
		{BufferLinkID: "d1", SecondaryBenefit: 10, ProjID: "far", VMTChange: 100, DistWeight: 0.1},
	}
	Normalize(rows)

	require.Greater(t, rows[0].Final, rows[1].Final)
	assert.InDelta(t, 10.0, rows[0].Final+rows[1].Final, 1e-9)
}

func TestNormalize_AllWeightlessClaimantsYieldZero(t *testing.T) {
	rows := []Row{
		{BufferLinkID: "d1", SecondaryBenefit: 9, ProjID: "P1", VMTChange: 0, DistWeight: 0},
		{BufferLinkID: "d1", SecondaryBenefit: 9, ProjID: "P2", VMTChange: 0, DistWeight: 0},
	}
	Normalize(rows)

	for _, r := range rows {
		assert.Zero(t, r.Pct)
		assert.Zero(t, r.Final, "weightless rows still produce a finite zero share")
	}
}

func TestSumByProject_FoldsFinals(t *testing.T) {
	rows := []Row{
		{ProjID: "P1", Final: 2},
		{ProjID: "P2", Final: 3},
		{ProjID: "P1", Final: 4},
	}
	totals := SumByProject(rows)
	assert.Equal(t, 6.0, totals["P1"])
	assert.Equal(t, 3.0, totals["P2"])
}

func TestNormalize_Empty(t *testing.T) {
	Normalize(nil) // no panic
	assert.Empty(t, SumByProject(nil))
}
