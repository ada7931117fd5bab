// Package testutil provides fixture builders shared by package tests.
//
// LinkBuilder constructs LinkRecords with derived totals kept consistent, so
// tests state only the deltas they care about. SymMatrix builds small
// symmetric distance tables for allocator tests, replacing the real Dijkstra
// solver with hand-written distances.
package testutil

import (
	"github.com/tdmtools/delaycast/internal/netdiff"
	"github.com/tdmtools/delaycast/internal/netgraph"
)

// LinkBuilder assembles a fixture LinkRecord. Totals (TotVolDiff etc.) are
// recomputed on Build so they always agree with the per-direction values.
type LinkBuilder struct {
	rec netdiff.LinkRecord
}

// NewLink starts a builder for a link with sensible defaults: one mile long,
// one-way, no project.
func NewLink(id, from, to string) *LinkBuilder {
	return &LinkBuilder{rec: netdiff.LinkRecord{
		ID:       id,
		FromNode: from,
		ToNode:   to,
		Length:   1,
	}}
}

// Length sets the link length.
func (b *LinkBuilder) Length(l float64) *LinkBuilder {
	b.rec.Length = l
	return b
}

// TwoWay marks the link as two-way (Dir = 1).
func (b *LinkBuilder) TwoWay() *LinkBuilder {
	b.rec.Dir = 1
	return b
}

// Project assigns the link to a project.
func (b *LinkBuilder) Project(id string) *LinkBuilder {
	b.rec.ProjectID = id
	return b
}

// NoBuildCap sets the no-build capacities.
func (b *LinkBuilder) NoBuildCap(ab, ba float64) *LinkBuilder {
	b.rec.NoBuildABCapacity = ab
	b.rec.NoBuildBACapacity = ba
	return b
}

// CapDiff sets the per-direction capacity deltas.
func (b *LinkBuilder) CapDiff(ab, ba float64) *LinkBuilder {
	b.rec.ABCapDiff = ab
	b.rec.BACapDiff = ba
	return b
}

// VolDiff sets the per-direction volume deltas.
func (b *LinkBuilder) VolDiff(ab, ba float64) *LinkBuilder {
	b.rec.ABVolDiff = ab
	b.rec.BAVolDiff = ba
	return b
}

// DelayDiff sets the per-direction delay deltas.
func (b *LinkBuilder) DelayDiff(ab, ba float64) *LinkBuilder {
	b.rec.ABDelayDiff = ab
	b.rec.BADelayDiff = ba
	return b
}

// PctDiff sets the percent deltas used by the Both-category ratio split.
func (b *LinkBuilder) PctDiff(abCap, baCap, abVol, baVol float64) *LinkBuilder {
	b.rec.ABCapPctDiff = abCap
	b.rec.BACapPctDiff = baCap
	b.rec.ABVolPctDiff = abVol
	b.rec.BAVolPctDiff = baVol
	return b
}

// SecBen sets the per-direction secondary benefits directly, for allocator
// tests that skip the classifier.
func (b *LinkBuilder) SecBen(ab, ba float64) *LinkBuilder {
	b.rec.ABSecBen = ab
	b.rec.BASecBen = ba
	return b
}

// PrimBen sets the per-direction primary benefits directly.
func (b *LinkBuilder) PrimBen(ab, ba float64) *LinkBuilder {
	b.rec.ABPrimBen = ab
	b.rec.BAPrimBen = ba
	return b
}

// Build finalizes the record, recomputing the totals.
func (b *LinkBuilder) Build() netdiff.LinkRecord {
	rec := b.rec
	rec.TotVolDiff = rec.ABVolDiff + rec.BAVolDiff
	rec.TotCapDiff = rec.ABCapDiff + rec.BACapDiff
	rec.TotDelayDiff = rec.ABDelayDiff + rec.BADelayDiff
	return rec
}

// Dist is one symmetric node-pair distance for SymMatrix.
type Dist struct {
	A, B string
	D    float64
}

// SymMatrix builds a distance matrix with each pair set in both directions.
func SymMatrix(pairs ...Dist) *netgraph.Matrix {
	m := netgraph.NewMatrix()
	for _, p := range pairs {
		m.Set(p.A, p.B, p.D)
		m.Set(p.B, p.A, p.D)
	}
	return m
}
