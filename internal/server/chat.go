package server

import (
	"fmt"
	"net/http"
	"strings"

	"paramedai/internal/clinical"
	"paramedai/internal/genui"

	"github.com/google/uuid"
)

type chatRequest struct {
	Message        string         `json:"message"`
	ConversationID string         `json:"conversation_id,omitempty"`
	PatientContext map[string]any `json:"patient_context,omitempty"`
	GenUI          *bool          `json:"genui_mode,omitempty"`
	Language       string         `json:"language,omitempty"`
}

func (c chatRequest) query() clinical.Query {
	genUI := true
	if c.GenUI != nil {
		genUI = *c.GenUI
	}
	return clinical.Query{
		Message:        c.Message,
		PatientContext: c.PatientContext,
		GenUI:          genUI,
	}
}

type chatResponse struct {
	Text           string         `json:"text"`
	Widgets        []genui.Widget `json:"widgets"`
	ConversationID string         `json:"conversation_id"`
	RAGSources     []string       `json:"rag_sources"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body chatRequest
	if !readJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	conversationID := strings.TrimSpace(body.ConversationID)
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	resp, err := h.deps.Clinical.Process(r.Context(), body.query())
	if err != nil {
		// Inference failures become an inline assistant message, never
		// a failed request.
		writeJSON(w, http.StatusOK, chatResponse{
			Text:           "Error: " + err.Error(),
			Widgets:        []genui.Widget{},
			ConversationID: conversationID,
			RAGSources:     []string{},
		})
		return
	}

	out := chatResponse{
		Text:           resp.Text,
		Widgets:        resp.Widgets,
		ConversationID: conversationID,
		RAGSources:     resp.RAGSources,
	}
	if out.Widgets == nil {
		out.Widgets = []genui.Widget{}
	}
	if out.RAGSources == nil {
		out.RAGSources = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleChatStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body chatRequest
	if !readJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	err := h.deps.Clinical.ProcessStream(r.Context(), body.query(), func(token string) {
		writeSSE(w, sseEvent{Type: "token", Content: token})
		flusher.Flush()
	})
	if err != nil {
		writeSSE(w, sseEvent{Type: "error", Content: err.Error()})
		flusher.Flush()
		return
	}
	writeSSE(w, sseEvent{Type: "done"})
	flusher.Flush()
}

type sseEvent struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

func writeSSE(w http.ResponseWriter, evt sseEvent) {
	fmt.Fprintf(w, "data: %s\n\n", mustJSON(evt))
}
