package inventory

import "fmt"

// QueryError wraps a failed controller query with the path that produced it.
type QueryError struct {
	Path string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a location or device record that lacks a
// required field. Such records are skipped.
type MissingFieldError struct {
	Kind  string // "location" or "device"
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record %d: missing field %q", e.Kind, e.Index, e.Field)
}
