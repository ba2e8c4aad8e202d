// Package router selects between the remote and on-device inference
// engines based on periodic health checks of the remote backend.
package router

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"paramedai/internal/llm"
)

// ConnectionState is a snapshot of the routing decision. It changes only
// when a health poll completes.
type ConnectionState struct {
	Online    bool      `json:"online"`
	UseLocal  bool      `json:"use_local"`
	Endpoint  string    `json:"endpoint"`
	ModelName string    `json:"model_name"`
	CheckedAt time.Time `json:"checked_at"`
}

// Router flips between a remote engine and a local one. The remote wins
// whenever its health endpoint answers 200; any failure flips to local.
// There is no hysteresis.
type Router struct {
	remote      llm.Engine
	local       llm.Engine
	endpoint    string
	remoteModel string
	localModel  string
	interval    time.Duration
	http        *http.Client

	mu    sync.RWMutex
	state ConnectionState
}

// Option configures a Router.
type Option func(*Router)

func WithInterval(d time.Duration) Option {
	return func(r *Router) { r.interval = d }
}

func WithHTTPClient(c *http.Client) Option {
	return func(r *Router) { r.http = c }
}

// New builds a Router. endpoint is the remote backend base URL; localModel
// names the on-device model reported while offline. The router starts
// offline until the first poll.
func New(remote, local llm.Engine, endpoint, remoteModel, localModel string, opts ...Option) *Router {
	r := &Router{
		remote:      remote,
		local:       local,
		endpoint:    strings.TrimRight(endpoint, "/"),
		remoteModel: remoteModel,
		localModel:  localModel,
		interval:    10 * time.Second,
		http:        &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state = ConnectionState{
		Online:    false,
		UseLocal:  true,
		Endpoint:  r.endpoint,
		ModelName: localModel,
		CheckedAt: time.Time{},
	}
	return r
}

// State returns the current snapshot.
func (r *Router) State() ConnectionState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Engine returns the engine the last poll selected.
func (r *Router) Engine() llm.Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state.Online && r.remote != nil {
		return r.remote
	}
	return r.local
}

// Routed returns an engine that re-resolves the routing decision on
// every call, so long-lived holders always use the active backend.
func (r *Router) Routed() llm.Engine {
	return routedEngine{r: r}
}

type routedEngine struct {
	r *Router
}

func (e routedEngine) Name() string { return e.r.State().ModelName }
func (e routedEngine) Close() error { return nil }

func (e routedEngine) Generate(ctx context.Context, req llm.Request) (string, error) {
	return e.r.Engine().Generate(ctx, req)
}

func (e routedEngine) GenerateStream(ctx context.Context, req llm.Request, onToken func(string)) (string, error) {
	return e.r.Engine().GenerateStream(ctx, req, onToken)
}

// Start polls once immediately, then on the configured interval until ctx
// is cancelled. Polling runs in its own goroutine and never blocks
// in-flight inference.
func (r *Router) Start(ctx context.Context) {
	r.Check(ctx)
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Check(ctx)
			}
		}
	}()
}

// Check performs a single health poll and updates the state.
func (r *Router) Check(ctx context.Context) ConnectionState {
	online, model := r.probe(ctx)

	r.mu.Lock()
	prev := r.state.Online
	r.state = ConnectionState{
		Online:    online,
		UseLocal:  !online,
		Endpoint:  r.endpoint,
		ModelName: model,
		CheckedAt: time.Now(),
	}
	cur := r.state
	r.mu.Unlock()

	if prev != online {
		if online {
			log.Printf("[router] backend online at %s (model %s)", r.endpoint, model)
		} else {
			log.Printf("[router] backend unreachable, using on-device model %s", r.localModel)
		}
	}
	return cur
}

func (r *Router) probe(ctx context.Context) (bool, string) {
	if r.endpoint == "" {
		return false, r.localModel
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/health", nil)
	if err != nil {
		return false, r.localModel
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return false, r.localModel
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, r.localModel
	}

	model := r.remoteModel
	var payload struct {
		Model string `json:"model"`
	}
	if json.NewDecoder(resp.Body).Decode(&payload) == nil && payload.Model != "" {
		model = payload.Model
	}
	return true, model
}
