package server

import (
	"net/http"
	"strings"

	"paramedai/internal/dispatch"
)

// handleDispatch recommends a destination hospital and resource set for
// a new incident. The rules are deterministic keyword matching; no
// model is involved.
func (h *Handler) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body dispatch.Request
	if !readJSON(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Complaint) == "" {
		http.Error(w, "complaint is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, dispatch.Evaluate(body))
}
