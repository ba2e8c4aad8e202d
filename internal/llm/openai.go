package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OpenAIEngine calls an OpenAI-compatible chat-completions API. It serves
// both the hosted online backend (DeepInfra) and a local LM Studio server;
// the two differ only in base URL, API key, and model name.
type OpenAIEngine struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewOpenAIEngine creates a client for baseURL (e.g.
// "https://api.deepinfra.com/v1/openai" or "http://localhost:1234/v1").
func NewOpenAIEngine(baseURL, apiKey, model string) *OpenAIEngine {
	return &OpenAIEngine{
		http:    &http.Client{Timeout: 300 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

func (e *OpenAIEngine) Name() string { return e.model }
func (e *OpenAIEngine) Close() error { return nil }

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatReq struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
	TopP        float32       `json:"top_p,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (e *OpenAIEngine) buildMessages(req Request) []chatMessage {
	var msgs []chatMessage
	if req.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.System})
	}
	text := userContent(req)
	if len(req.Image) > 0 {
		mime := req.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		b64 := base64.StdEncoding.EncodeToString(req.Image)
		msgs = append(msgs, chatMessage{Role: "user", Content: []map[string]any{
			{"type": "text", "text": text},
			{"type": "image_url", "image_url": map[string]any{"url": "data:" + mime + ";base64," + b64}},
		}})
		return msgs
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: text})
	return msgs
}

func (e *OpenAIEngine) post(ctx context.Context, body chatReq) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	resp, err := e.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		err := fmt.Errorf("llm: %s returned status %s", e.model, resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, &PermanentError{Err: err}
		}
		return nil, err
	}
	return resp, nil
}

func (e *OpenAIEngine) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	resp, err := e.post(ctx, chatReq{
		Model:       e.model,
		Messages:    e.buildMessages(req),
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		TopP:        0.9,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

func (e *OpenAIEngine) GenerateStream(ctx context.Context, req Request, onToken func(string)) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	resp, err := e.post(ctx, chatReq{
		Model:       e.model,
		Messages:    e.buildMessages(req),
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		TopP:        0.9,
		Stream:      true,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimSpace(line[len("data: "):])
		if payload == "[DONE]" {
			break
		}
		var chunk chatResp
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		token := chunk.Choices[0].Delta.Content
		if token == "" {
			continue
		}
		full.WriteString(token)
		if onToken != nil {
			onToken(token)
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), err
	}
	if full.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return full.String(), nil
}
