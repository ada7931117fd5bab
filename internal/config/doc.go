// Package config loads and validates the run-parameter file.
//
// Parameters are YAML: the two network paths, the output directory, an
// optional cost table, and the field-name bindings for every column the
// pipeline reads. The file is validated against an embedded CUE schema
// before anything is computed, so a missing required binding fails fast with
// an error naming the missing field and its position in the file.
//
// Validation errors are configuration errors in the pipeline taxonomy:
// fatal, raised before computation, never retried.
package config
