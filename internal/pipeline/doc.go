// Package pipeline drives a delay-allocation run end to end.
//
// Stages run strictly sequentially: load tables, difference scenarios,
// classify links, solve the distance matrix, allocate secondary benefit,
// aggregate and merge, then write outputs. No stage is re-entered, and no
// state is shared between stages except the explicit values each stage
// returns and the next consumes. The distance matrix is built once and read
// only afterwards.
//
// Output files are written exclusively in the final stage, so a failure or
// cancellation anywhere earlier leaves the output directory untouched. There
// are no retries and no internal timeouts: every failure is surfaced to the
// caller as a RunError for manual correction and re-run.
//
// Each run is stamped with a UUIDv7 token for log correlation; tests inject
// a fixed generator to keep logs and golden outputs deterministic.
package pipeline
