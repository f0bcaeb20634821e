package services

import (
	"errors"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrExtraction        = errors.New("text extraction failed")
	ErrScoringFailed     = errors.New("scoring request failed")
	ErrParseFailed       = errors.New("scoring response could not be parsed")
)

// ValidationError reports bad or missing request input. Message is safe to
// show to API clients as is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsValidation reports whether err should be surfaced as a client error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
