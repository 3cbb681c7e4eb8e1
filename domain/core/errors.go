package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrInvalidCriterion  = fmt.Errorf("%w: criterion", ErrInvalidParameters)
	ErrInvalidSweep      = fmt.Errorf("%w: sweep request", ErrInvalidParameters)

	// Trial errors
	ErrFitFailure       = errors.New("fit failure")
	ErrNonConvergence   = fmt.Errorf("%w: estimation did not converge", ErrFitFailure)
	ErrSingularDesign   = fmt.Errorf("%w: singular design matrix", ErrFitFailure)
	ErrInsufficientData = fmt.Errorf("%w: insufficient data", ErrFitFailure)

	// Sweep errors
	ErrBudgetExceeded = errors.New("wall-clock budget exceeded")
	ErrNoValidTrials  = errors.New("no valid trials for sample size")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// FitError records one failed fit attempt with the context needed for triage.
// A failed fit is always surfaced as an error, never as a sentinel statistic.
type FitError struct {
	Model      string
	SampleSize int
	Cause      error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("fit of %s at sample size %d failed: %v", e.Model, e.SampleSize, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is/As chains
func (e *FitError) Unwrap() error {
	return e.Cause
}

// Is reports FitError as a fit failure even when the cause is an arbitrary error
func (e *FitError) Is(target error) bool {
	return target == ErrFitFailure
}

// NewFitError wraps a fitter error with the attempted model and sample size
func NewFitError(model string, sampleSize int, cause error) error {
	return &FitError{Model: model, SampleSize: sampleSize, Cause: cause}
}

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameters, field, reason)
}

func NewBudgetError(sampleSize int, cause error) error {
	return fmt.Errorf("%w for sample size %d: %v", ErrBudgetExceeded, sampleSize, cause)
}

// Error checking helpers
func IsInvalidParameters(err error) bool {
	return errors.Is(err, ErrInvalidParameters)
}

func IsFitFailure(err error) bool {
	return errors.Is(err, ErrFitFailure)
}

func IsBudgetExceeded(err error) bool {
	return errors.Is(err, ErrBudgetExceeded)
}
