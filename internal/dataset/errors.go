package dataset

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by LoadError. Match them with errors.Is.
var (
	ErrNotFound       = errors.New("dataset not found")
	ErrMalformed      = errors.New("malformed dataset")
	ErrMissingColumn  = errors.New("missing required column")
	ErrEmpty          = errors.New("dataset has no records")
	ErrUnknownSource  = errors.New("unknown dataset source")
	ErrInvalidOutcome = errors.New("outcome must be 0 or 1")
)

// LoadError reports why a dataset could not be loaded.
// Line is the 1-based input line (CSV) or row number (SQL), 0 when not applicable.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(path string, line int, err error) *LoadError {
	return &LoadError{Path: path, Line: line, Err: err}
}
