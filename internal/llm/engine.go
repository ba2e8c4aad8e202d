// Package llm defines the inference engine boundary and its concrete
// implementations: an OpenAI-compatible remote client, a Gemini/Vertex
// client, and the on-device model wrapper.
package llm

import (
	"context"
	"errors"
)

// Default generation parameters. Triage uses a reduced budget for latency.
const (
	DefaultMaxTokens = 2048
	TriageMaxTokens  = 256
)

// Request is a single generation request. Context carries retrieved
// protocol text; Image, when set, is attached for multimodal analysis.
type Request struct {
	System      string
	User        string
	Context     string
	Image       []byte
	ImageMIME   string
	MaxTokens   int
	Temperature float32
}

// Engine produces text from a request. Implementations must be safe for
// concurrent use or serialize internally.
type Engine interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
	// GenerateStream invokes onToken for each text chunk and returns the
	// full concatenated output.
	GenerateStream(ctx context.Context, req Request, onToken func(string)) (string, error)
	Close() error
}

// ErrEmptyResponse is returned when an engine produced no usable output.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// ErrModelNotReady is returned by the on-device engine before its model has
// been loaded. Callers surface this as an actionable message, not a retry.
var ErrModelNotReady = errors.New("llm: on-device model not loaded")

// PermanentError marks an error that retrying cannot fix (bad request,
// authentication failure). The retry middleware stops on it.
type PermanentError struct{ Err error }

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// userContent merges the protocol context into the user message the way the
// prompt expects it.
func userContent(req Request) string {
	if req.Context == "" {
		return req.User
	}
	return "Relevant protocol information:\n" + req.Context + "\n\nUser question: " + req.User
}
