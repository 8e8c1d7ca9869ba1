// Package domain implements the natal chart calculation engine.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for chart calculation.
// These errors represent invalid caller input and are deterministic:
// the same input always produces the same error.
var (
	// ErrInvalidTimeInput indicates that the birth date, time or timezone
	// cannot denote a real instant (month 13, Feb 30, unknown zone, ...).
	ErrInvalidTimeInput = errors.New("invalid birth time input")

	// ErrInvalidLocation indicates latitude or longitude outside the
	// valid geographic range.
	ErrInvalidLocation = errors.New("invalid birth location")
)

// AssemblyError reports that chart assembly aborted. It names the stage
// that failed and wraps the underlying cause, so callers can still match
// the sentinel errors with errors.Is.
type AssemblyError struct {
	Stage string
	Err   error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("chart assembly failed at %s: %v", e.Stage, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

func assemblyFailed(stage string, err error) error {
	return &AssemblyError{Stage: stage, Err: err}
}
