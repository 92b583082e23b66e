package domain

import "errors"

// Common domain errors
var (
	// Template errors
	ErrTemplateNotFound = errors.New("template not found")
	ErrEmptyPurpose     = errors.New("purpose cannot be empty")
	ErrEmptyCategory    = errors.New("category cannot be empty")
	ErrEmptyTemplate    = errors.New("template body cannot be empty")
	ErrDuplicateName    = errors.New("template name already exists")

	// Provider errors
	ErrUnknownProvider    = errors.New("unknown provider")
	ErrProviderDisabled   = errors.New("provider is not configured")
	ErrNoProviders        = errors.New("no providers requested")
	ErrGenerationFailed   = errors.New("prompt generation failed")
	ErrAllProvidersFailed = errors.New("all providers failed")

	// Knowledge errors
	ErrEmptyTopic   = errors.New("topic cannot be empty")
	ErrEmptyContent = errors.New("content cannot be empty")

	// Validation errors
	ErrInvalidID    = errors.New("invalid ID format")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// DomainError wraps a domain error with additional context
type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewDomainError(err error, message string) *DomainError {
	return &DomainError{
		Err:     err,
		Message: message,
	}
}
