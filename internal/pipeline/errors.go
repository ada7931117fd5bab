package pipeline

import (
	"context"
	"errors"
	"fmt"
)

// RunErrorCode categorizes run failures.
type RunErrorCode string

const (
	// ErrCodeConfig marks configuration errors: missing arguments or
	// fields, raised before any computation.
	ErrCodeConfig RunErrorCode = "CONFIG_INVALID"

	// ErrCodeEmptyResult marks empty-input conditions: no links after the
	// connector filter, or no project with a capacity change.
	ErrCodeEmptyResult RunErrorCode = "EMPTY_RESULT"

	// ErrCodeSolver marks a distance-matrix solver failure.
	ErrCodeSolver RunErrorCode = "SOLVER_FAILED"

	// ErrCodeCancelled marks a user cancellation surfaced from inside a
	// long-running loop. No output has been committed.
	ErrCodeCancelled RunErrorCode = "CANCELLED"

	// ErrCodeWrite marks a failure while writing output files.
	ErrCodeWrite RunErrorCode = "WRITE_FAILED"
)

// RunError is a failure of one pipeline stage. It wraps the underlying
// error and names the stage so the caller can report where the run stopped.
type RunError struct {
	Code    RunErrorCode
	Stage   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Stage, e.Message)
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *RunError) Unwrap() error { return e.Err }

// stageError wraps err as a RunError, mapping context cancellation onto
// ErrCodeCancelled regardless of the code the stage suggested.
func stageError(code RunErrorCode, stage, message string, err error) *RunError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = ErrCodeCancelled
	}
	return &RunError{Code: code, Stage: stage, Message: message, Err: err}
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool { return hasCode(err, ErrCodeConfig) }

// IsEmptyResult reports whether err marks an empty-input condition.
func IsEmptyResult(err error) bool { return hasCode(err, ErrCodeEmptyResult) }

// IsCancelled reports whether err marks a user cancellation.
func IsCancelled(err error) bool { return hasCode(err, ErrCodeCancelled) }

func hasCode(err error, code RunErrorCode) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}
