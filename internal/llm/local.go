package llm

import (
	"context"
	"sync"
)

// Model is the on-device inference black box: a process-wide resource that
// can be loaded from a file path and asked to generate token streams.
type Model interface {
	Load(ctx context.Context, path string) error
	Loaded() bool
	// Generate runs one decode over the loaded model, calling onToken for
	// each produced token, and returns the full output.
	Generate(ctx context.Context, system, user string, maxTokens int, onToken func(string)) (string, error)
}

// LocalEngine adapts a Model to the Engine interface. The underlying model
// allows at most one decode at a time, so every call holds the engine
// mutex; concurrent callers queue rather than race the decoder.
type LocalEngine struct {
	mu        sync.Mutex
	model     Model
	modelPath string
	name      string
}

// NewLocalEngine wraps model. Load is deferred until EnsureLoaded or the
// first generation call.
func NewLocalEngine(model Model, modelPath, name string) *LocalEngine {
	return &LocalEngine{model: model, modelPath: modelPath, name: name}
}

func (e *LocalEngine) Name() string { return e.name }
func (e *LocalEngine) Close() error { return nil }

// Ready reports whether the model is loaded without triggering a load.
func (e *LocalEngine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.model.Loaded()
}

// EnsureLoaded loads the model if necessary. Loading an already-loaded
// model is a no-op.
func (e *LocalEngine) EnsureLoaded(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureLoadedLocked(ctx)
}

func (e *LocalEngine) ensureLoadedLocked(ctx context.Context) error {
	if e.model.Loaded() {
		return nil
	}
	if e.modelPath == "" {
		return ErrModelNotReady
	}
	return e.model.Load(ctx, e.modelPath)
}

func (e *LocalEngine) Generate(ctx context.Context, req Request) (string, error) {
	return e.GenerateStream(ctx, req, nil)
}

func (e *LocalEngine) GenerateStream(ctx context.Context, req Request, onToken func(string)) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ensureLoadedLocked(ctx); err != nil {
		return "", err
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	out, err := e.model.Generate(ctx, req.System, userContent(req), maxTokens, onToken)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
