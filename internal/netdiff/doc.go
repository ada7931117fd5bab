// Package netdiff computes build-vs-no-build deltas for assigned highway
// networks.
//
// The differ joins the two scenario link tables on link id, drops centroid
// connectors from the build side, null-fills missing values to zero, and
// derives per-direction and total deltas for volume, capacity, and delay.
// Percent deltas are computed against an epsilon-offset no-build denominator
// and capped at +/-999 so near-zero denominators cannot blow up downstream
// ratio math.
//
// The resulting LinkRecord slice is the working dataset for every later
// pipeline stage. Records are produced once per run from two immutable input
// snapshots and never recomputed.
package netdiff
