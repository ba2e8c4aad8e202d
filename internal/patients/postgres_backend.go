package patients

import (
	"database/sql"
	"encoding/json"
	"strings"

	"paramedai/internal/dispatch"
)

func (s *Store) ensureSchema() error {
	if s == nil || s.db == nil {
		return nil
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS patient_records (
  id TEXT PRIMARY KEY,
  transcription TEXT NOT NULL DEFAULT '',
  documentation TEXT NOT NULL DEFAULT '',
  dispatch JSONB,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS triaged_patients (
  id TEXT PRIMARY KEY,
  category TEXT NOT NULL,
  notes TEXT NOT NULL DEFAULT '',
  vitals JSONB,
  gcs INTEGER,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_triaged_patients_category ON triaged_patients (category);
`)
	})
	return s.schemaErr
}

func (s *Store) addRecordDB(r Record) {
	if err := s.ensureSchema(); err != nil {
		return
	}
	var dispatchJSON any
	if r.Dispatch != nil {
		if b, err := json.Marshal(r.Dispatch); err == nil {
			dispatchJSON = b
		}
	}
	_, _ = s.db.Exec(`
INSERT INTO patient_records (id, transcription, documentation, dispatch, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO NOTHING`,
		r.ID, r.Transcription, r.Documentation, dispatchJSON, r.CreatedAt)
}

func scanRecordDB(row interface{ Scan(...any) error }) (Record, bool) {
	var (
		r            Record
		dispatchJSON sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Transcription, &r.Documentation, &dispatchJSON, &r.CreatedAt); err != nil {
		return Record{}, false
	}
	if dispatchJSON.Valid && dispatchJSON.String != "" {
		var d dispatch.Result
		if err := json.Unmarshal([]byte(dispatchJSON.String), &d); err == nil {
			r.Dispatch = &d
		}
	}
	return r, true
}

func (s *Store) getRecordDB(id string) (Record, bool) {
	if err := s.ensureSchema(); err != nil {
		return Record{}, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, false
	}
	row := s.db.QueryRow(`SELECT id, transcription, documentation, dispatch, created_at
FROM patient_records WHERE id = $1`, id)
	return scanRecordDB(row)
}

func (s *Store) listRecordsDB() []Record {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	rows, err := s.db.Query(`SELECT id, transcription, documentation, dispatch, created_at
FROM patient_records ORDER BY created_at DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	out := make([]Record, 0, 32)
	for rows.Next() {
		if r, ok := scanRecordDB(rows); ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) deleteRecordDB(id string) bool {
	if err := s.ensureSchema(); err != nil {
		return false
	}
	res, err := s.db.Exec(`DELETE FROM patient_records WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *Store) addTriagedDB(p TriagedPatient) {
	if err := s.ensureSchema(); err != nil {
		return
	}
	var vitalsJSON any
	if len(p.Vitals) > 0 {
		if b, err := json.Marshal(p.Vitals); err == nil {
			vitalsJSON = b
		}
	}
	var gcs any
	if p.GCS != nil {
		gcs = *p.GCS
	}
	_, _ = s.db.Exec(`
INSERT INTO triaged_patients (id, category, notes, vitals, gcs, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO NOTHING`,
		p.ID, p.Category, p.Notes, vitalsJSON, gcs, p.CreatedAt)
}

func (s *Store) listTriagedDB() []TriagedPatient {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	rows, err := s.db.Query(`SELECT id, category, notes, vitals, gcs, created_at
FROM triaged_patients ORDER BY created_at DESC`)
	if err != nil {
		return nil
	}
	defer rows.Close()
	out := make([]TriagedPatient, 0, 32)
	for rows.Next() {
		var (
			p          TriagedPatient
			vitalsJSON sql.NullString
			gcs        sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Category, &p.Notes, &vitalsJSON, &gcs, &p.CreatedAt); err != nil {
			continue
		}
		if vitalsJSON.Valid && vitalsJSON.String != "" {
			_ = json.Unmarshal([]byte(vitalsJSON.String), &p.Vitals)
		}
		if gcs.Valid {
			v := int(gcs.Int64)
			p.GCS = &v
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) deleteTriagedDB(id string) bool {
	if err := s.ensureSchema(); err != nil {
		return false
	}
	res, err := s.db.Exec(`DELETE FROM triaged_patients WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}
