package gymstats

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData     = errors.New("no training data provided")
	ErrNoTrainingHistory    = errors.New("no training history provided")
	ErrInsufficientPlanData = errors.New("insufficient training data: every exercise needs at least 2 logged sessions")
	ErrInvalidContentType   = errors.New("invalid content type, expected application/json")
)

// ComputationError is returned when valid input cannot produce a result.
type ComputationError struct {
	Err error
}

func NewComputationError(err error) *ComputationError {
	return &ComputationError{Err: err}
}

func (e *ComputationError) Error() string {
	return e.Err.Error()
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when the request is malformed or a required field is missing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "field required"}
}
