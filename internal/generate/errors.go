package generate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputTooShort means the job text has too little content to extract
	// requirements from.
	ErrInputTooShort = errors.New("the provided text is too short, add more details about the position")

	// ErrInsufficientRequirements means extraction produced fewer than the
	// minimum number of requirements. Business-rule failure, not retried.
	ErrInsufficientRequirements = errors.New("could not extract enough requirements from the provided description")

	// ErrNoTechnologies means extraction identified no main technologies.
	ErrNoTechnologies = errors.New("could not identify the main technologies of the position")

	// ErrInvalidDistribution means a generated question set has the wrong
	// count or difficulty distribution.
	ErrInvalidDistribution = errors.New("generated set has the wrong question count or distribution")
)

// MissingFieldsError reports the required response fields the provider
// failed to produce.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("required fields missing or invalid: %s", strings.Join(e.Fields, ", "))
}
