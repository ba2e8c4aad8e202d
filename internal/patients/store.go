package patients

import (
	"database/sql"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Store keeps patient records either in a local JSON file or in
// Postgres, selected at construction. All methods are nil-safe.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	records  map[string]Record
	triaged  map[string]TriagedPatient

	schemaOnce sync.Once
	schemaErr  error
}

// New builds a file-backed store at path.
func New(path string) *Store {
	return &Store{
		path:    path,
		records: make(map[string]Record),
		triaged: make(map[string]TriagedPatient),
	}
}

// NewPostgres connects to Postgres via the pgx stdlib driver.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewFromEnv uses Postgres when PATIENTS_PG_DSN is set and reachable,
// otherwise the JSON file at path.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("PATIENTS_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) EnsureLoaded() {
	if s == nil {
		return
	}
	if s.db != nil {
		_ = s.ensureSchema()
		return
	}
	s.ensureLoadedFile()
}

// Save flushes the file backend; it is a no-op on Postgres.
func (s *Store) Save() {
	if s == nil || s.db != nil {
		return
	}
	s.saveFile()
}

// AddRecord stores a new record, assigning an id and timestamp when
// missing, and returns the stored value.
func (s *Store) AddRecord(r Record) Record {
	if s == nil {
		return r
	}
	r = normalizeRecord(r)
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if s.db != nil {
		s.addRecordDB(r)
		return r
	}
	s.addRecordFile(r)
	return r
}

func (s *Store) GetRecord(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	if s.db != nil {
		return s.getRecordDB(id)
	}
	return s.getRecordFile(id)
}

// ListRecords returns all records, newest first.
func (s *Store) ListRecords() []Record {
	if s == nil {
		return nil
	}
	if s.db != nil {
		return s.listRecordsDB()
	}
	return s.listRecordsFile()
}

func (s *Store) DeleteRecord(id string) bool {
	if s == nil {
		return false
	}
	if s.db != nil {
		return s.deleteRecordDB(id)
	}
	return s.deleteRecordFile(id)
}

// AddTriaged stores a triage decision, assigning an id and timestamp
// when missing.
func (s *Store) AddTriaged(p TriagedPatient) TriagedPatient {
	if s == nil {
		return p
	}
	p = normalizeTriaged(p)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if s.db != nil {
		s.addTriagedDB(p)
		return p
	}
	s.addTriagedFile(p)
	return p
}

// ListTriaged returns all triage decisions, newest first.
func (s *Store) ListTriaged() []TriagedPatient {
	if s == nil {
		return nil
	}
	if s.db != nil {
		return s.listTriagedDB()
	}
	return s.listTriagedFile()
}

func (s *Store) DeleteTriaged(id string) bool {
	if s == nil {
		return false
	}
	if s.db != nil {
		return s.deleteTriagedDB(id)
	}
	return s.deleteTriagedFile(id)
}
