package genui

import (
	"encoding/json"
	"strings"
)

// Extract parses raw model output into a Message. It never fails: every
// input, however malformed, yields a valid Message. This is the contract the
// rendering client depends on.
//
// Candidate selection order:
//  1. the inner content of the first fenced code block (```json or ```)
//  2. the first-to-last brace span of the text
//  3. no candidate: the trimmed text itself, no widgets
func Extract(raw string) Message {
	text := strings.TrimSpace(raw)
	candidate, found := jsonCandidate(text)
	if !found {
		return Message{Text: text, Widgets: []Widget{}}
	}

	var decoded any
	if err := json.Unmarshal([]byte(candidate), &decoded); err != nil {
		// Malformed JSON: keep the raw text visible and flag it once.
		return Message{
			Text: text,
			Widgets: []Widget{NewWarning(
				"Response Format Warning",
				"AI response could not be parsed as structured data. Showing raw text.",
				SeverityInfo,
				"Review the text response above.",
			)},
		}
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return Message{Text: text, Widgets: []Widget{}}
	}

	msg := Message{Widgets: []Widget{}}
	if s, ok := obj["text"].(string); ok {
		msg.Text = s
	}
	list, _ := obj["widgets"].([]any)
	for _, entry := range list {
		rawWidget, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		w, ok := NormalizeWidget(rawWidget)
		if !ok {
			// No type key: silently dropped.
			continue
		}
		if !w.Type.Known() {
			msg.Widgets = append(msg.Widgets, NewWarning(
				"Unknown Widget",
				"The model produced a widget of unknown type "+string(w.Type)+".",
				SeverityInfo,
				"",
			))
			continue
		}
		msg.Widgets = append(msg.Widgets, w)
	}
	return msg
}

// jsonCandidate finds the most plausible JSON span in text.
func jsonCandidate(text string) (string, bool) {
	if inner, ok := fencedBlock(text); ok {
		return inner, true
	}
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start >= 0 && end > start {
		return strings.TrimSpace(text[start : end+1]), true
	}
	return "", false
}

// fencedBlock returns the content of the first triple-backtick block,
// tolerating an optional "json" language tag.
func fencedBlock(text string) (string, bool) {
	open := strings.Index(text, "```")
	if open < 0 {
		return "", false
	}
	rest := text[open+3:]
	rest = strings.TrimPrefix(rest, "json")
	rest = strings.TrimLeft(rest, " \t")
	rest = strings.TrimPrefix(rest, "\n")
	closing := strings.Index(rest, "```")
	if closing < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:closing]), true
}
