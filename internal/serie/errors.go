package serie

import (
	"errors"
	"fmt"
)

// ErrMissingName indicates a serie was configured without a name.
var ErrMissingName = errors.New("missing name")

// ErrMissingX indicates a point without an x value.
var ErrMissingX = errors.New("missing x value")

// ErrNotNumeric indicates a value that cannot be used as a number.
var ErrNotNumeric = errors.New("not a finite number")

// ErrNotDate indicates an x value that cannot be read as a calendar date.
var ErrNotDate = errors.New("not a date")

// ErrSpanTooLarge indicates a gap-filling range beyond MaxFillDays.
var ErrSpanTooLarge = errors.New("date span too large")

// ConfigurationError reports invalid construction input.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(field string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field: field,
		Err:   err,
	}
}

// DataError reports malformed point data found while transforming.
type DataError struct {
	Stage string // "ingest", "fill", "group", "cumulative", "sort"
	Index int
	Err   error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error in %s at point %d: %v", e.Stage, e.Index, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(stage string, index int, err error) *DataError {
	return &DataError{
		Stage: stage,
		Index: index,
		Err:   err,
	}
}
