package codegen

import "errors"

var (
	// ErrEmptyOutput is returned when the provider answered but nothing
	// usable survived normalization
	ErrEmptyOutput = errors.New("no code generated")
)

// ValidationError reports a request the pipeline refuses to run
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
