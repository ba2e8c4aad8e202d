package server

import (
	"net/http"

	"paramedai/internal/genui"
	"paramedai/internal/patients"
	"paramedai/internal/triage"
)

type triageClassifyRequest struct {
	PatientID       string         `json:"patient_id,omitempty"`
	CanWalk         *bool          `json:"can_walk,omitempty"`
	Breathing       *bool          `json:"breathing,omitempty"`
	RespiratoryRate *int           `json:"respiratory_rate,omitempty"`
	CapillaryRefill *float64       `json:"capillary_refill,omitempty"`
	RadialPulse     *bool          `json:"radial_pulse,omitempty"`
	FollowsCommands *bool          `json:"follows_commands,omitempty"`
	AgeYears        *float64       `json:"age_years,omitempty"`
	AVPU            string         `json:"avpu,omitempty"`
	GCS             *int           `json:"gcs,omitempty"`
	Vitals          map[string]any `json:"vitals,omitempty"`
	Injuries        []string       `json:"injuries,omitempty"`
}

// validGCS accepts a missing Glasgow Coma Scale or one in the 0-15
// range.
func validGCS(gcs *int) bool {
	return gcs == nil || (*gcs >= 0 && *gcs <= 15)
}

type triageClassifyResponse struct {
	PatientID string       `json:"patient_id,omitempty"`
	Category  string       `json:"category"`
	Label     string       `json:"label"`
	Priority  int          `json:"priority"`
	Action    string       `json:"action"`
	Algorithm string       `json:"algorithm"`
	Widget    genui.Widget `json:"widget"`
}

// handleTriageClassify runs the deterministic START/JumpSTART
// algorithm. No model is involved on this path.
func (h *Handler) handleTriageClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body triageClassifyRequest
	if !readJSON(w, r, &body) {
		return
	}
	if !validGCS(body.GCS) {
		http.Error(w, "gcs must be between 0 and 15", http.StatusBadRequest)
		return
	}

	result := triage.Classify(triage.Assessment{
		CanWalk:         body.CanWalk,
		Breathing:       body.Breathing,
		RespiratoryRate: body.RespiratoryRate,
		CapillaryRefill: body.CapillaryRefill,
		RadialPulse:     body.RadialPulse,
		FollowsCommands: body.FollowsCommands,
		AVPU:            body.AVPU,
		AgeYears:        body.AgeYears,
	})

	writeJSON(w, http.StatusOK, triageClassifyResponse{
		PatientID: body.PatientID,
		Category:  string(result.Category),
		Label:     result.Label,
		Priority:  result.Priority,
		Action:    result.Action,
		Algorithm: result.Algorithm,
		Widget:    result.Widget(body.PatientID, body.Vitals, body.Injuries, body.GCS),
	})
}

// handleTriageAIClassify asks the active engine for a classification
// and falls back to the deterministic algorithm on any failure. A
// triaged patient record is appended either way; classification always
// succeeds with some category.
func (h *Handler) handleTriageAIClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body triage.QuickAssessment
	if !readJSON(w, r, &body) {
		return
	}

	outcome := h.deps.Orchestrator.Classify(r.Context(), body)
	if h.deps.Patients != nil {
		h.deps.Patients.AddTriaged(patients.TriagedPatient{
			Category: string(outcome.Category),
			Notes:    outcome.Reasoning,
		})
		h.deps.Patients.Save()
	}
	writeJSON(w, http.StatusOK, outcome)
}
