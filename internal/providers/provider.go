package providers

import (
	"context"
	"errors"
	"fmt"
)

// Provider names used in errors, logs and metrics
const (
	NameCompletion = "completion"
	NameVision     = "vision"
)

// ErrNoContent is wrapped when a provider answers without usable text
var ErrNoContent = errors.New("provider returned no content")

// Completer sends one prompt to a chat-completion model
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Describer turns a design image into a free-text structural description
type Describer interface {
	DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// ProviderError reports a failed upstream call
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewError wraps err as a ProviderError for the named provider
func NewError(provider string, err error) error {
	return &ProviderError{Provider: provider, Err: err}
}
