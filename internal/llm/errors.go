package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredential means the provider rejected the API key itself.
	ErrInvalidCredential = errors.New("invalid API key, check that the key is correct")

	// ErrPermissionDenied means the key exists but the generative API is not
	// enabled for it.
	ErrPermissionDenied = errors.New("API key lacks permission, check that the Gemini API is enabled")

	// ErrModelUnavailable means the target model family is not offered to
	// this credential.
	ErrModelUnavailable = errors.New("target model unavailable for this API key")

	// ErrEmptyCompletion means the provider answered without any usable
	// candidate text.
	ErrEmptyCompletion = errors.New("provider response contained no candidate text")

	// ErrNoCredential means a completion was requested before a key was set.
	ErrNoCredential = errors.New("API key not configured")

	// ErrExtractionFailed is the terminal error after structured extraction
	// exhausts its attempts.
	ErrExtractionFailed = errors.New("could not obtain a valid structured response")
)

// ProviderError reports a provider failure that is neither a credential nor a
// permission problem. Status is zero when the failure never reached HTTP.
type ProviderError struct {
	Status  int
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
