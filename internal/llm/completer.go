package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
	ErrNoCandidates  = errors.New("response contained no candidates")
)

// Completer sends a prompt to a text-generation service and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompletionError is returned for every failed completion call, whatever the cause
// (network, auth or quota, malformed request, service-side error).
type CompletionError struct {
	Model string
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion with model %s failed: %v", e.Model, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
