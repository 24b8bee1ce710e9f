// Package apperror defines the typed error taxonomy shared by the pre-filter,
// the reclassification client, and the service handlers.
package apperror

import "fmt"

// ValidationError represents structurally invalid input, detected before any
// work (and in particular before any network call) happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ParseError represents a row-level decoding failure during import.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s=%q: %v", e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ClassificationError means the collaborator responded but its payload could
// not be parsed into the expected annotation shape. Non-fatal for the
// pipeline: unannotated candidates keep their prior pillar.
type ClassificationError struct {
	Detail string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification response unusable: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("classification response unusable: %s", e.Detail)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// ServiceUnavailableError means the collaborator could not be reached or
// answered with a non-2xx status. The caller decides whether to retry; the
// already-computed partition stays valid for that retry.
type ServiceUnavailableError struct {
	StatusCode int
	Err        error
}

func (e *ServiceUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("reclassification service unavailable: status %d", e.StatusCode)
	}
	return fmt.Sprintf("reclassification service unavailable: %v", e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Err
}
