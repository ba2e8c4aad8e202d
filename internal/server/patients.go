package server

import (
	"net/http"
	"strings"

	"paramedai/internal/patients"
	"paramedai/internal/triage"
)

func (h *Handler) handleDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Transcription string `json:"transcription"`
	}
	if !readJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Transcription) == "" {
		http.Error(w, "transcription is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"documentation": h.deps.Clinical.Document(r.Context(), body.Transcription),
	})
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records := h.deps.Patients.ListRecords()
		if records == nil {
			records = []patients.Record{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"records": records,
			"count":   len(records),
		})
	case http.MethodPost:
		var body patients.Record
		if !readJSON(w, r, &body) {
			return
		}
		if strings.TrimSpace(body.Transcription) == "" && strings.TrimSpace(body.Documentation) == "" {
			http.Error(w, "transcription or documentation is required", http.StatusBadRequest)
			return
		}
		created := h.deps.Patients.AddRecord(body)
		h.deps.Patients.Save()
		writeJSON(w, http.StatusCreated, created)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleRecordByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/patients/records/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		record, ok := h.deps.Patients.GetRecord(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodDelete:
		if !h.deps.Patients.DeleteRecord(id) {
			http.NotFound(w, r)
			return
		}
		h.deps.Patients.Save()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleTriaged(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		triaged := h.deps.Patients.ListTriaged()
		if triaged == nil {
			triaged = []patients.TriagedPatient{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"patients": triaged,
			"count":    len(triaged),
		})
	case http.MethodPost:
		var body patients.TriagedPatient
		if !readJSON(w, r, &body) {
			return
		}
		if _, ok := triage.ParseCategory(body.Category); !ok {
			http.Error(w, "category must be one of RED, YELLOW, GREEN, BLACK", http.StatusBadRequest)
			return
		}
		if !validGCS(body.GCS) {
			http.Error(w, "gcs must be between 0 and 15", http.StatusBadRequest)
			return
		}
		created := h.deps.Patients.AddTriaged(body)
		h.deps.Patients.Save()
		writeJSON(w, http.StatusCreated, created)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleTriagedByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/patients/triaged/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if !h.deps.Patients.DeleteTriaged(id) {
		http.NotFound(w, r)
		return
	}
	h.deps.Patients.Save()
	w.WriteHeader(http.StatusNoContent)
}
