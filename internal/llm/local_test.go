package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestLocalEngine_LoadIsIdempotent(t *testing.T) {
	model := &FakeModel{Response: "ok"}
	eng := NewLocalEngine(model, "/models/medgemma.gguf", "medgemma-local")

	ctx := context.Background()
	if err := eng.EnsureLoaded(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := eng.EnsureLoaded(ctx); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if model.Loads != 1 {
		t.Fatalf("loads = %d, want 1", model.Loads)
	}
}

func TestLocalEngine_NotReadyWithoutPath(t *testing.T) {
	eng := NewLocalEngine(&FakeModel{}, "", "medgemma-local")
	_, err := eng.Generate(context.Background(), Request{User: "hi"})
	if !errors.Is(err, ErrModelNotReady) {
		t.Fatalf("err = %v, want ErrModelNotReady", err)
	}
}

func TestLocalEngine_SerializesConcurrentCallers(t *testing.T) {
	model := &FakeModel{Response: "answer"}
	eng := NewLocalEngine(model, "/models/m.gguf", "local")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := eng.Generate(context.Background(), Request{User: "q"})
			if err != nil || out != "answer" {
				t.Errorf("out=%q err=%v", out, err)
			}
		}()
	}
	wg.Wait()
	if model.Loads != 1 {
		t.Fatalf("loads = %d, want 1", model.Loads)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	fake := NewFakeEngine("")
	fake.Err = &PermanentError{Err: errors.New("bad request")}
	eng := Chain(fake, Retry(3, 1))

	_, err := eng.Generate(context.Background(), Request{User: "q"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := len(fake.Calls()); got != 1 {
		t.Fatalf("attempts = %d, want 1", got)
	}
}

func TestRetry_RetriesTransientErrors(t *testing.T) {
	fake := NewFakeEngine("")
	fake.Err = errors.New("connection reset")
	eng := Chain(fake, Retry(3, 1))

	_, err := eng.Generate(context.Background(), Request{User: "q"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := len(fake.Calls()); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}
