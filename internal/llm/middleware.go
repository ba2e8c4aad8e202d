package llm

import (
	"context"
	"errors"
	"log"
	"time"
)

// Middleware wraps an Engine with cross-cutting behavior.
type Middleware func(Engine) Engine

// Chain applies middlewares left to right (the first wraps outermost).
func Chain(e Engine, mws ...Middleware) Engine {
	for i := len(mws) - 1; i >= 0; i-- {
		e = mws[i](e)
	}
	return e
}

// WithLogging logs request sizes and errors. Pass nil to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next Engine) Engine {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next Engine
	log  *log.Logger
}

func (l *logging) Name() string { return l.next.Name() }
func (l *logging) Close() error { return l.next.Close() }

func (l *logging) Generate(ctx context.Context, req Request) (string, error) {
	l.log.Printf("LLM request (%s): %d bytes", l.next.Name(), len(req.System)+len(req.User)+len(req.Context))
	out, err := l.next.Generate(ctx, req)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", l.next.Name(), err)
	}
	return out, err
}

func (l *logging) GenerateStream(ctx context.Context, req Request, onToken func(string)) (string, error) {
	l.log.Printf("LLM stream request (%s): %d bytes", l.next.Name(), len(req.System)+len(req.User)+len(req.Context))
	out, err := l.next.GenerateStream(ctx, req, onToken)
	if err != nil {
		l.log.Printf("LLM stream error (%s): %v", l.next.Name(), err)
	}
	return out, err
}

// Retry retries Generate up to maxAttempts with exponential backoff starting
// at baseDelay. Permanent errors and canceled contexts stop immediately.
// Streams are not retried: partial tokens may already have been delivered.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next Engine) Engine {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next Engine
	max  int
	base time.Duration
}

func (r *retrying) Name() string { return r.next.Name() }
func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) Generate(ctx context.Context, req Request) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		out, err := r.next.Generate(ctx, req)
		if err == nil {
			return out, nil
		}
		var pErr *PermanentError
		if errors.As(err, &pErr) {
			return "", err
		}
		last = err
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.base * time.Duration(1<<i)):
		}
	}
	return "", last
}

func (r *retrying) GenerateStream(ctx context.Context, req Request, onToken func(string)) (string, error) {
	return r.next.GenerateStream(ctx, req, onToken)
}
