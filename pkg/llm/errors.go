package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned at construction time when a provider
	// needs an API key and none could be resolved.
	ErrMissingCredential = errors.New("missing completion credential")

	// ErrEmptyCompletion is returned when the service answers without any
	// completion text.
	ErrEmptyCompletion = errors.New("completion service returned no content")

	// ErrUnsupportedProvider is returned for unknown provider names.
	ErrUnsupportedProvider = errors.New("unsupported completion provider")
)

// ServiceError describes a non-2xx answer from a completion service.
type ServiceError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}
