package patients

import (
	"path/filepath"
	"testing"
	"time"

	"paramedai/internal/dispatch"
)

func TestStore_AddAssignsIDAndTimestamp(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "patients.json"))

	r := s.AddRecord(Record{Transcription: "found unresponsive", Documentation: "Assessment: ..."})
	if r.ID == "" {
		t.Fatal("id not assigned")
	}
	if r.CreatedAt.IsZero() {
		t.Fatal("createdAt not assigned")
	}

	got, ok := s.GetRecord(r.ID)
	if !ok || got.Transcription != "found unresponsive" {
		t.Fatalf("get: %+v ok=%v", got, ok)
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.json")

	s := New(path)
	r := s.AddRecord(Record{
		Transcription: "mvc, two patients",
		Dispatch: &dispatch.Result{
			TriageLevel: "RED",
			Hospital:    "Central Emergency Hospital",
			Resources:   []string{"ALS ambulance"},
			ETAMinutes:  15,
		},
	})
	gcs := 14
	p := s.AddTriaged(TriagedPatient{Category: "red", Notes: "no radial pulse", GCS: &gcs})

	reopened := New(path)
	got, ok := reopened.GetRecord(r.ID)
	if !ok {
		t.Fatal("record not persisted")
	}
	if got.Dispatch == nil || got.Dispatch.Hospital != "Central Emergency Hospital" {
		t.Fatalf("dispatch not persisted: %+v", got.Dispatch)
	}

	triaged := reopened.ListTriaged()
	if len(triaged) != 1 || triaged[0].ID != p.ID {
		t.Fatalf("triaged = %+v", triaged)
	}
	if triaged[0].Category != "RED" {
		t.Fatalf("category not normalized: %q", triaged[0].Category)
	}
	if triaged[0].GCS == nil || *triaged[0].GCS != 14 {
		t.Fatalf("gcs = %v", triaged[0].GCS)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "patients.json"))

	old := s.AddRecord(Record{Transcription: "first", CreatedAt: time.Now().Add(-time.Hour)})
	recent := s.AddRecord(Record{Transcription: "second"})

	list := s.ListRecords()
	if len(list) != 2 {
		t.Fatalf("len = %d", len(list))
	}
	if list[0].ID != recent.ID || list[1].ID != old.ID {
		t.Fatalf("order: %s, %s", list[0].Transcription, list[1].Transcription)
	}
}

func TestStore_Delete(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "patients.json"))
	r := s.AddRecord(Record{Transcription: "x"})

	if !s.DeleteRecord(r.ID) {
		t.Fatal("delete should succeed")
	}
	if s.DeleteRecord(r.ID) {
		t.Fatal("second delete should fail")
	}
	if _, ok := s.GetRecord(r.ID); ok {
		t.Fatal("record still present")
	}

	p := s.AddTriaged(TriagedPatient{Category: "GREEN"})
	if !s.DeleteTriaged(p.ID) {
		t.Fatal("triaged delete should succeed")
	}
	if len(s.ListTriaged()) != 0 {
		t.Fatal("triaged list not empty")
	}
}

func TestStore_NilSafe(t *testing.T) {
	var s *Store
	s.EnsureLoaded()
	s.Save()
	if _, ok := s.GetRecord("x"); ok {
		t.Fatal("nil store should report not found")
	}
	if s.ListRecords() != nil || s.ListTriaged() != nil {
		t.Fatal("nil store lists should be nil")
	}
	if s.DeleteRecord("x") || s.DeleteTriaged("x") {
		t.Fatal("nil store deletes should fail")
	}
}

func TestStore_NewFromEnvFallsBackToFile(t *testing.T) {
	t.Setenv("PATIENTS_PG_DSN", "")
	path := filepath.Join(t.TempDir(), "patients.json")
	s := NewFromEnv(path)
	if s.db != nil {
		t.Fatal("expected file backend")
	}
	r := s.AddRecord(Record{Transcription: "ok"})
	if _, ok := s.GetRecord(r.ID); !ok {
		t.Fatal("record missing")
	}
}
