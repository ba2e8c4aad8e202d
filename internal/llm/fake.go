package llm

import (
	"context"
	"strings"
	"sync"
)

// FakeEngine returns scripted responses for tests and offline development.
type FakeEngine struct {
	mu        sync.Mutex
	Response  string
	Err       error
	Requests  []Request
	TokenSize int
}

func NewFakeEngine(response string) *FakeEngine {
	return &FakeEngine{Response: response, TokenSize: 8}
}

func (f *FakeEngine) Name() string { return "fake" }
func (f *FakeEngine) Close() error { return nil }

// Calls returns a copy of the recorded requests.
func (f *FakeEngine) Calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.Requests...)
}

func (f *FakeEngine) Generate(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	f.Requests = append(f.Requests, req)
	resp, err := f.Response, f.Err
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return resp, nil
}

func (f *FakeEngine) GenerateStream(ctx context.Context, req Request, onToken func(string)) (string, error) {
	out, err := f.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	if onToken != nil {
		size := f.TokenSize
		if size <= 0 {
			size = 8
		}
		for chunk := out; chunk != ""; {
			n := size
			if n > len(chunk) {
				n = len(chunk)
			}
			onToken(chunk[:n])
			chunk = chunk[n:]
		}
	}
	return out, nil
}

// FakeModel is a scripted on-device Model for LocalEngine tests.
type FakeModel struct {
	mu       sync.Mutex
	loaded   bool
	Response string
	LoadErr  error
	GenErr   error
	Loads    int
}

func (m *FakeModel) Load(ctx context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if m.LoadErr != nil {
		return m.LoadErr
	}
	m.loaded = true
	return nil
}

func (m *FakeModel) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

func (m *FakeModel) Generate(ctx context.Context, system, user string, maxTokens int, onToken func(string)) (string, error) {
	if m.GenErr != nil {
		return "", m.GenErr
	}
	out := m.Response
	if onToken != nil {
		for _, word := range strings.SplitAfter(out, " ") {
			onToken(word)
		}
	}
	return out, nil
}
