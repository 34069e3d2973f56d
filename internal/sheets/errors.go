package sheets

import "fmt"

// ReadError means the sheet could not be fetched at all.
type ReadError struct {
	Range string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read sheet range %s: %v", e.Range, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// WriteError means a single-cell write failed.
type WriteError struct {
	Cell  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write cell %s: %v", e.Cell, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
