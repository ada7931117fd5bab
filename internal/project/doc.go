// Package project rolls link-level benefits up to project-level results.
//
// The primary aggregator sums each project's own-capacity benefit and its
// derived metrics (VMT delta, capacity-miles-available delta, utilization).
// Projects whose net capacity-miles change is zero or negative are dropped:
// there is no effective capacity change to attribute primary benefit to.
// That is a data-quality filter, not an error.
//
// The merger left-joins the primary aggregates with the allocator's
// secondary sums, so total benefit is primary plus secondary by
// construction, and optionally joins a cost table to produce benefit/cost
// ratios. Results are sorted by project id so repeated runs emit
// byte-identical output.
package project
