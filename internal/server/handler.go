package server

import (
	"encoding/json"
	"net/http"
	"time"

	"paramedai/internal/clinical"
	"paramedai/internal/knowledge"
	"paramedai/internal/media"
	"paramedai/internal/patients"
	"paramedai/internal/router"
	"paramedai/internal/stt"
	"paramedai/internal/triage"
)

// Deps carries everything the HTTP surface needs. Archive may be nil
// (media archiving disabled); Transcriber may be nil (no STT backend).
type Deps struct {
	Clinical     *clinical.Service
	Orchestrator *triage.Orchestrator
	Router       *router.Router
	Retriever    *knowledge.Retriever
	Patients     *patients.Store
	Transcriber  stt.Transcriber
	Archive      *media.Archive
	WhisperModel string
}

type Handler struct {
	deps    Deps
	started time.Time
}

func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps, started: time.Now()}
}

// NewMux registers all routes and wraps them in CORS.
func NewMux(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/chat", h.handleChat)
	mux.HandleFunc("/api/v1/chat/stream", h.handleChatStream)
	mux.HandleFunc("/ws/chat", h.handleChatWS)

	mux.HandleFunc("/api/v1/transcribe", h.handleTranscribe)
	mux.HandleFunc("/api/v1/analyze/image", h.handleAnalyzeImage)

	mux.HandleFunc("/api/v1/media", h.handleMediaList)
	mux.HandleFunc("/api/v1/media/url", h.handleMediaURL)
	mux.HandleFunc("/api/v1/media/object", h.handleMediaObject)

	mux.HandleFunc("/api/v1/triage/classify", h.handleTriageClassify)
	mux.HandleFunc("/api/v1/triage/ai-classify", h.handleTriageAIClassify)

	mux.HandleFunc("/api/v1/patients/document", h.handleDocument)
	mux.HandleFunc("/api/v1/patients/records", h.handleRecords)
	mux.HandleFunc("/api/v1/patients/records/", h.handleRecordByID)
	mux.HandleFunc("/api/v1/patients/triaged", h.handleTriaged)
	mux.HandleFunc("/api/v1/patients/triaged/", h.handleTriagedByID)

	mux.HandleFunc("/api/v1/drug/calculate", h.handleDrugCalculate)
	mux.HandleFunc("/api/v1/drug/list", h.handleDrugList)

	mux.HandleFunc("/api/dispatch", h.handleDispatch)

	mux.HandleFunc("/api/v1/health", h.handleHealth)
	mux.HandleFunc("/api/v1/model/info", h.handleModelInfo)

	return CORS(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return false
	}
	return true
}
