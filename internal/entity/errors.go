package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")

	// Provider errors
	ErrProviderUnavailable = errors.New("provider not available")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// GenerationParseError reports that a vendor response could not be coerced
// into questions after every recovery attempt.
type GenerationParseError struct {
	Provider string
	Model    string
	Err      error
}

func (e *GenerationParseError) Error() string {
	msg := fmt.Sprintf("provider %q (model %q) returned no parseable questions", e.Provider, e.Model)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationParseError) Unwrap() error {
	return e.Err
}

// RefinementError reports that the vendor call refining a prompt failed.
type RefinementError struct {
	Provider string
	Model    string
	Err      error
}

func (e *RefinementError) Error() string {
	msg := fmt.Sprintf("provider %q (model %q) failed to refine prompt", e.Provider, e.Model)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RefinementError) Unwrap() error {
	return e.Err
}
