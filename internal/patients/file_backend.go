package patients

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fileDocument is the on-disk shape: each collection lives under its own
// named key in a single JSON file.
type fileDocument struct {
	Records []Record         `json:"patient_records"`
	Triaged []TriagedPatient `json:"triaged_patients"`
}

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var doc fileDocument
		if err := json.Unmarshal(b, &doc); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, r := range doc.Records {
			r = normalizeRecord(r)
			if r.ID == "" {
				continue
			}
			s.records[r.ID] = r
		}
		for _, p := range doc.Triaged {
			p = normalizeTriaged(p)
			if p.ID == "" {
				continue
			}
			s.triaged[p.ID] = p
		}
	})
}

func (s *Store) saveFile() {
	s.ensureLoadedFile()
	s.mu.RLock()
	doc := fileDocument{
		Records: make([]Record, 0, len(s.records)),
		Triaged: make([]TriagedPatient, 0, len(s.triaged)),
	}
	for _, r := range s.records {
		doc.Records = append(doc.Records, r)
	}
	for _, p := range s.triaged {
		doc.Triaged = append(doc.Triaged, p)
	}
	s.mu.RUnlock()

	sort.Slice(doc.Records, func(i, j int) bool { return doc.Records[i].CreatedAt.Before(doc.Records[j].CreatedAt) })
	sort.Slice(doc.Triaged, func(i, j int) bool { return doc.Triaged[i].CreatedAt.Before(doc.Triaged[j].CreatedAt) })

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) addRecordFile(r Record) {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.records[r.ID] = r
	s.mu.Unlock()
	s.saveFile()
}

func (s *Store) getRecordFile(id string) (Record, bool) {
	s.ensureLoadedFile()
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, false
	}
	s.mu.RLock()
	r, ok := s.records[id]
	s.mu.RUnlock()
	return r, ok
}

func (s *Store) listRecordsFile() []Record {
	s.ensureLoadedFile()
	s.mu.RLock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) deleteRecordFile(id string) bool {
	s.ensureLoadedFile()
	id = strings.TrimSpace(id)
	s.mu.Lock()
	_, ok := s.records[id]
	if ok {
		delete(s.records, id)
	}
	s.mu.Unlock()
	if ok {
		s.saveFile()
	}
	return ok
}

func (s *Store) addTriagedFile(p TriagedPatient) {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.triaged[p.ID] = p
	s.mu.Unlock()
	s.saveFile()
}

func (s *Store) listTriagedFile() []TriagedPatient {
	s.ensureLoadedFile()
	s.mu.RLock()
	out := make([]TriagedPatient, 0, len(s.triaged))
	for _, p := range s.triaged {
		out = append(out, p)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Store) deleteTriagedFile(id string) bool {
	s.ensureLoadedFile()
	id = strings.TrimSpace(id)
	s.mu.Lock()
	_, ok := s.triaged[id]
	if ok {
		delete(s.triaged, id)
	}
	s.mu.Unlock()
	if ok {
		s.saveFile()
	}
	return ok
}
