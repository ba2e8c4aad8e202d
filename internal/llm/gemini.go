package llm

import (
	"context"
	"os"
	"strconv"
	"time"

	genai "google.golang.org/genai"
)

// GeminiEngine is a thin wrapper around the official genai client, used for
// the Vertex/Gemini online inference mode.
type GeminiEngine struct {
	cli   *genai.Client
	model string
	rl    *rpsLimiter
}

// NewGeminiEngine creates a Gemini client. An optional RPS limiter is read
// from LLM_RPS / LLM_BURST env vars.
func NewGeminiEngine(ctx context.Context, model string) (*GeminiEngine, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	var rps float64
	var burst int
	if v := os.Getenv("LLM_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			rps = f
		}
	}
	if v := os.Getenv("LLM_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			burst = n
		}
	}
	return &GeminiEngine{cli: cli, model: model, rl: newRPSLimiter(rps, burst)}, nil
}

func (g *GeminiEngine) Name() string { return g.model }
func (g *GeminiEngine) Close() error {
	g.rl.Stop()
	return nil
}

func (g *GeminiEngine) contents(req Request) []*genai.Content {
	parts := []*genai.Part{{Text: userContent(req)}}
	if len(req.Image) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: req.Image}})
	}
	return []*genai.Content{{Parts: parts}}
}

func (g *GeminiEngine) config(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	return cfg
}

// Generate sends the request with up to 3 attempts and exponential backoff.
func (g *GeminiEngine) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if err := g.rl.Acquire(ctx); err != nil {
			return "", err
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model, g.contents(req), g.config(req))
		if err != nil {
			lastErr = err
		} else if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			lastErr = ErrEmptyResponse
		} else {
			return resp.Candidates[0].Content.Parts[0].Text, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
		}
	}
	return "", lastErr
}

// GenerateStream streams tokens via the genai streaming API.
func (g *GeminiEngine) GenerateStream(ctx context.Context, req Request, onToken func(string)) (string, error) {
	if err := g.rl.Acquire(ctx); err != nil {
		return "", err
	}
	var full string
	for resp, err := range g.cli.Models.GenerateContentStream(ctx, g.model, g.contents(req), g.config(req)) {
		if err != nil {
			return full, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text == "" {
				continue
			}
			full += part.Text
			if onToken != nil {
				onToken(part.Text)
			}
		}
	}
	if full == "" {
		return "", ErrEmptyResponse
	}
	return full, nil
}
