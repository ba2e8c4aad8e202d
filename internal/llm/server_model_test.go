package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServerModelLoadChecksListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"data":[{"id":"medgemma-4b-it"}]}`)
	}))
	defer srv.Close()

	m := NewServerModel(srv.URL, "medgemma-4b-it")
	if m.Loaded() {
		t.Fatal("model must not report loaded before Load")
	}
	if err := m.Load(context.Background(), "models/medgemma-4b-it-Q4.gguf"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Loaded() {
		t.Fatal("model must report loaded after successful Load")
	}
}

func TestServerModelLoadRejectsMissingModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"some-other-model"}]}`)
	}))
	defer srv.Close()

	m := NewServerModel(srv.URL, "medgemma-4b-it")
	err := m.Load(context.Background(), "models/medgemma-4b-it-Q4.gguf")
	if err == nil {
		t.Fatal("Load must fail when the server does not list the model")
	}
	if m.Loaded() {
		t.Fatal("failed Load must not mark the model loaded")
	}
}

func TestServerModelLoadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewServerModel(srv.URL, "medgemma-4b-it")
	if err := m.Load(context.Background(), "x"); err == nil {
		t.Fatal("Load must surface server errors")
	}
}

func TestLocalEngineOverServerModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			fmt.Fprint(w, `{"data":[{"id":"medgemma-4b-it"}]}`)
		case "/chat/completions":
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"scene \"}}]}\n\n")
			fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"secure\"}}]}\n\n")
			fmt.Fprint(w, "data: [DONE]\n\n")
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	engine := NewLocalEngine(NewServerModel(srv.URL, "medgemma-4b-it"), "models/medgemma-4b-it-Q4.gguf", "medgemma-local")

	var tokens []string
	out, err := engine.GenerateStream(context.Background(), Request{User: "status?"}, func(tok string) {
		tokens = append(tokens, tok)
	})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}
	if out != "scene secure" {
		t.Errorf("output = %q", out)
	}
	if got := strings.Join(tokens, ""); got != "scene secure" {
		t.Errorf("streamed tokens = %q", got)
	}
	if !engine.Ready() {
		t.Error("engine must be ready after first generation")
	}
}
