package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ServerModel adapts a local OpenAI-compatible inference server (LM
// Studio, llama.cpp server) to the Model interface. Load verifies the
// server actually exposes the requested model; generation delegates to
// the chat-completions API on the same base URL.
type ServerModel struct {
	engine  *OpenAIEngine
	http    *http.Client
	baseURL string
	model   string

	mu     sync.Mutex
	loaded bool
}

// NewServerModel points at an OpenAI-compatible base URL such as
// "http://localhost:1234/v1".
func NewServerModel(baseURL, model string) *ServerModel {
	return &ServerModel{
		engine:  NewOpenAIEngine(baseURL, "", model),
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

func (m *ServerModel) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Load asks the server for its model listing and checks that path (a
// model file path or identifier) matches one of the entries. Servers
// that answer 200 without a parsable listing are accepted as loaded.
func (m *ServerModel) Load(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/models", nil)
	if err != nil {
		return err
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("llm: local server unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("llm: local server returned status %s", resp.Status)
	}

	var listing struct {
		Data []modelEntry `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err == nil && len(listing.Data) > 0 {
		if !modelListed(listing.Data, path, m.model) {
			return fmt.Errorf("llm: model %s not available on local server", m.model)
		}
	}

	m.mu.Lock()
	m.loaded = true
	m.mu.Unlock()
	return nil
}

type modelEntry struct {
	ID string `json:"id"`
}

func modelListed(entries []modelEntry, path, model string) bool {
	for _, e := range entries {
		if e.ID == model || e.ID == path {
			return true
		}
		// LM Studio lists the short model id while the configured
		// path carries the full file name.
		if strings.Contains(path, e.ID) || strings.Contains(model, e.ID) {
			return true
		}
	}
	return false
}

func (m *ServerModel) Generate(ctx context.Context, system, user string, maxTokens int, onToken func(string)) (string, error) {
	return m.engine.GenerateStream(ctx, Request{
		System:    system,
		User:      user,
		MaxTokens: maxTokens,
	}, onToken)
}
