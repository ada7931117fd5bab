// Package harness provides end-to-end conformance scenarios for the
// delay-allocation pipeline.
//
// # Scenario Format
//
// Scenarios are YAML files pairing a parameter file with the expected
// per-project benefit rollup:
//
//	name: corridor
//	description: "What this scenario validates"
//	params: ../params/corridor.yaml
//	golden: true
//	expect:
//	  - project: P1
//	    primary_benefits: 3
//	    secondary_benefits: 2
//	    total_benefits: 5
//	    tolerance: 1e-9
//
// Paths inside the scenario and parameter files are resolved relative to
// the file that names them, so fixtures move with their scenarios.
//
// # Deterministic Execution
//
// Each scenario runs with a fixed run token (the scenario name) and writes
// into a caller-supplied directory, usually t.TempDir(). Output files are
// byte-stable across runs, which is what makes the golden comparison of
// project_benefits.csv meaningful: the golden file is the source of truth
// for the full numeric output.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
