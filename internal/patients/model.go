// Package patients persists care records and triage results. Records are
// append-only: they are never mutated after creation, only deleted by id.
package patients

import (
	"strings"
	"time"

	"paramedai/internal/dispatch"
)

// Record is one documented patient encounter: the raw voice
// transcription plus the generated report, with the dispatch
// recommendation embedded when one was made.
type Record struct {
	ID            string           `json:"id"`
	Transcription string           `json:"transcription"`
	Documentation string           `json:"documentation"`
	CreatedAt     time.Time        `json:"createdAt"`
	Dispatch      *dispatch.Result `json:"dispatch,omitempty"`
}

// TriagedPatient is one triage decision, from either the manual quick
// flow or AI-assisted classification.
type TriagedPatient struct {
	ID        string         `json:"id"`
	Category  string         `json:"category"`
	Notes     string         `json:"notes,omitempty"`
	Vitals    map[string]any `json:"vitals,omitempty"`
	GCS       *int           `json:"gcs,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func normalizeRecord(r Record) Record {
	r.ID = strings.TrimSpace(r.ID)
	return r
}

func normalizeTriaged(p TriagedPatient) TriagedPatient {
	p.ID = strings.TrimSpace(p.ID)
	p.Category = strings.ToUpper(strings.TrimSpace(p.Category))
	return p
}
