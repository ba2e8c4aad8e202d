package server

import (
	"math"
	"net/http"
	"time"

	"paramedai/internal/genui"
	"paramedai/internal/llm"
)

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ragDocuments := 0
	if h.deps.Retriever != nil {
		ragDocuments = h.deps.Retriever.Len()
	}
	state := h.deps.Router.State()

	uptime := time.Since(h.started).Seconds()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"model":          state.ModelName,
		"online":         state.Online,
		"rag_documents":  ragDocuments,
		"uptime_seconds": math.Round(uptime*100) / 100,
	})
}

func (h *Handler) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	state := h.deps.Router.State()
	device := "on-device"
	if state.Online {
		device = "cloud"
	}
	ragDocuments := 0
	if h.deps.Retriever != nil {
		ragDocuments = h.deps.Retriever.Len()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"model_name":         state.ModelName,
		"device":             device,
		"endpoint":           state.Endpoint,
		"connection":         state,
		"max_tokens":         llm.DefaultMaxTokens,
		"rag_status":         "active",
		"rag_document_count": ragDocuments,
		"whisper_model":      h.deps.WhisperModel,
		"genui_widgets": []genui.WidgetType{
			genui.WidgetDrugDoseCard,
			genui.WidgetProtocolCard,
			genui.WidgetTriageCard,
			genui.WidgetECGAnalysisCard,
			genui.WidgetVitalSignsCard,
			genui.WidgetPatientFormCard,
			genui.WidgetTranslationCard,
			genui.WidgetWarningCard,
		},
	})
}
