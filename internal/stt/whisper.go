package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// WhisperClient talks to an OpenAI-compatible /audio/transcriptions
// endpoint (hosted Whisper or a local faster-whisper server).
type WhisperClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewWhisperClient creates a client for baseURL (e.g.
// "https://api.openai.com/v1" or "http://localhost:9000/v1").
func NewWhisperClient(baseURL, apiKey, model string) *WhisperClient {
	return &WhisperClient{
		http:    &http.Client{Timeout: 120 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

func (c *WhisperClient) Name() string { return c.model }

type whisperResp struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		AvgLogprob float64 `json:"avg_logprob"`
	} `json:"segments"`
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte, filename, mimeType string) (Result, error) {
	if !SupportedMIME(mimeType) {
		return Result{}, ErrUnsupportedMedia
	}
	if len(audio) == 0 {
		return Result{}, fmt.Errorf("stt: empty audio payload")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return Result{}, err
	}
	if _, err := part.Write(audio); err != nil {
		return Result{}, err
	}
	if err := w.WriteField("model", c.model); err != nil {
		return Result{}, err
	}
	if err := w.WriteField("response_format", "verbose_json"); err != nil {
		return Result{}, err
	}
	if err := w.Close(); err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, fmt.Errorf("stt: %s returned status %s: %s", c.model, resp.Status, strings.TrimSpace(string(msg)))
	}

	var out whisperResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, err
	}
	return Result{
		Text:       strings.TrimSpace(out.Text),
		Language:   out.Language,
		Confidence: confidence(out),
		DurationS:  out.Duration,
	}, nil
}

// confidence averages per-segment log probabilities and maps them into
// a rough 0..1 score. Servers that omit segments get 0.
func confidence(r whisperResp) float64 {
	if len(r.Segments) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.Segments {
		sum += s.AvgLogprob
	}
	avg := sum / float64(len(r.Segments))
	score := 1 + avg
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
