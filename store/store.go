package store

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"

	"github.com/katalvlaran/spanflow/flow"
)

var (
	// ErrNotFound indicates no record has the requested run ID.
	ErrNotFound = errors.New("store: run not found")
	// ErrExists indicates a record with the same run ID is already stored.
	ErrExists = errors.New("store: run already stored")
	// ErrNoID indicates a record without a run ID.
	ErrNoID = errors.New("store: record has no run id")
)

// Record is one archived run.
type Record struct {
	ID        string          `json:"id" boltholdKey:"ID"`
	CreatedAt int64           `json:"created_at" boltholdIndex:"CreatedAt"`
	Scenario  string          `json:"scenario"`
	Nodes     int             `json:"nodes"`
	Edges     int             `json:"edges"`
	Summary   flow.Summary    `json:"summary"`
	Report    json.RawMessage `json:"report"`
}

// Store is an open run archive.
type Store struct {
	db *bolthold.Store
}

// Open opens or creates the archive at path, waiting up to timeout for the
// file lock (a non-positive timeout waits 5s).
func Open(path string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	db, err := bolthold.Open(path, 0o644, &bolthold.Options{
		Encoder: json.Marshal,
		Decoder: json.Unmarshal,
		Options: &bbolt.Options{
			Timeout:      timeout,
			NoGrowSync:   bbolt.DefaultOptions.NoGrowSync,
			FreelistType: bbolt.DefaultOptions.FreelistType,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", path)
	}
	return &Store{db: db}, nil
}

// Close releases the file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts rec, stamping CreatedAt with the current time when unset.
func (s *Store) Save(rec *Record) error {
	if rec.ID == "" {
		return ErrNoID
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	if err := s.db.Insert(rec.ID, rec); err != nil {
		if errors.Is(err, bolthold.ErrKeyExists) {
			return errors.Wrap(ErrExists, rec.ID)
		}
		return errors.Wrap(err, "store: save")
	}
	return nil
}

// Get returns the record stored under id.
func (s *Store) Get(id string) (*Record, error) {
	var rec Record
	if err := s.db.Get(id, &rec); err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil, errors.Wrap(ErrNotFound, id)
		}
		return nil, errors.Wrap(err, "store: get")
	}
	rec.ID = id
	return &rec, nil
}

// List returns records newest first. A positive limit caps the result.
func (s *Store) List(limit int) ([]Record, error) {
	q := (&bolthold.Query{}).SortBy("CreatedAt", "ID").Reverse()
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []Record
	if err := s.db.Find(&recs, q); err != nil {
		return nil, errors.Wrap(err, "store: list")
	}
	return recs, nil
}

// Delete removes the record stored under id.
func (s *Store) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.db.Delete(id, &Record{}); err != nil {
		return errors.Wrap(err, "store: delete")
	}
	return nil
}
