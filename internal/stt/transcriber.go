// Package stt turns recorded audio into text through a speech
// recognition backend.
package stt

import (
	"context"
	"errors"
)

// Result is a finished transcription.
type Result struct {
	Text       string  `json:"text"`
	Language   string  `json:"language,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	DurationS  float64 `json:"duration,omitempty"`
}

// Transcriber converts an audio payload into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, mimeType string) (Result, error)
	Name() string
}

// ErrUnsupportedMedia is returned when the uploaded content type is not
// an accepted audio format.
var ErrUnsupportedMedia = errors.New("stt: unsupported audio format")

var allowedMIMETypes = map[string]bool{
	"audio/wav":    true,
	"audio/x-wav":  true,
	"audio/wave":   true,
	"audio/mpeg":   true,
	"audio/mp3":    true,
	"audio/mp4":    true,
	"audio/m4a":    true,
	"audio/x-m4a":  true,
	"audio/webm":   true,
	"audio/ogg":    true,
	"audio/flac":   true,
	"audio/x-flac": true,
	// fallback for uploads with an unknown content type
	"application/octet-stream": true,
}

// SupportedMIME reports whether the given content type can be submitted
// for transcription.
func SupportedMIME(mimeType string) bool {
	return allowedMIMETypes[mimeType]
}
