// Package history keeps a journal of completed organization runs in a
// local bbolt database. Preview runs are never journaled.
package history

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"ordnung/internal/errors"
	"ordnung/pkg/types"
)

var runsBucket = []byte("runs")

// ActionRecord is the journaled form of one action result.
type ActionRecord struct {
	Action      string `json:"action"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Performed   bool   `json:"performed"`
	Reason      string `json:"reason,omitempty"`
	Error       string `json:"error,omitempty"`
}

// RunRecord describes one completed organization run.
type RunRecord struct {
	ID       string         `json:"id"`
	Started  time.Time      `json:"started"`
	Finished time.Time      `json:"finished"`
	Roots    []string       `json:"roots"`
	Actions  []ActionRecord `json:"actions"`
}

// NewRunRecord starts a record for the given roots.
func NewRunRecord(roots []string) *RunRecord {
	return &RunRecord{
		ID:      uuid.NewString(),
		Started: time.Now(),
		Roots:   roots,
	}
}

// Add appends one action result to the record.
func (r *RunRecord) Add(res types.ActionResult) {
	rec := ActionRecord{
		Action:      string(res.Action),
		Source:      res.SourcePath,
		Destination: res.DestinationPath,
		Performed:   res.Performed,
		Reason:      res.Reason,
	}
	if res.Error != nil {
		rec.Error = res.Error.Error()
	}
	r.Actions = append(r.Actions, rec)
}

// Store is a bbolt-backed run journal.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.NewStoreError("journal path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.NewStoreError("failed to create journal directory", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.NewStoreError("failed to open journal", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(runsBucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, errors.NewStoreError("failed to initialize journal", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// key orders records chronologically: big-endian start time, then run ID.
func key(rec *RunRecord) []byte {
	k := make([]byte, 8, 8+len(rec.ID))
	binary.BigEndian.PutUint64(k, uint64(rec.Started.UnixNano()))
	return append(k, rec.ID...)
}

// Append finalizes and stores a run record.
func (s *Store) Append(rec *RunRecord) error {
	if rec.Finished.IsZero() {
		rec.Finished = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.NewStoreError("failed to encode run record", err).WithOperation("append")
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Put(key(rec), data)
	})
	if err != nil {
		return errors.NewStoreError("failed to store run record", err).WithOperation("append")
	}
	return nil
}

// Recent returns up to n run records, newest first.
func (s *Store) Recent(n int) ([]RunRecord, error) {
	var records []RunRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(runsBucket).Cursor()
		for k, v := c.Last(); k != nil && len(records) < n; k, v = c.Prev() {
			var rec RunRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewStoreError("failed to read run records", err).WithOperation("recent")
	}
	return records, nil
}
