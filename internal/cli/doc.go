// Package cli implements the delaycast command-line interface.
//
// Commands:
//
//	run       execute the full delay-allocation pipeline
//	validate  schema-check a parameter file without running anything
//
// Global flags select text or JSON output and verbosity. Errors carry exit
// codes: 2 for command/configuration problems the user must fix before a run
// can start, 1 for failures of the run itself (bad input data, cancellation).
package cli
