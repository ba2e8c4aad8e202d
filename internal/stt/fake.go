package stt

import "context"

// FakeTranscriber returns canned results for tests.
type FakeTranscriber struct {
	Result Result
	Err    error

	calls []string
}

func NewFakeTranscriber(text string) *FakeTranscriber {
	return &FakeTranscriber{Result: Result{Text: text, Language: "en", Confidence: 0.9}}
}

func (f *FakeTranscriber) Name() string { return "fake-whisper" }

func (f *FakeTranscriber) Transcribe(_ context.Context, audio []byte, filename, mimeType string) (Result, error) {
	if !SupportedMIME(mimeType) {
		return Result{}, ErrUnsupportedMedia
	}
	f.calls = append(f.calls, filename)
	if f.Err != nil {
		return Result{}, f.Err
	}
	return f.Result, nil
}

// Calls lists the filenames submitted so far.
func (f *FakeTranscriber) Calls() []string { return f.calls }
