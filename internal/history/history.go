// Package history records build outcomes in output/history.db.
//
// Every build that reaches the compiler stores one Record keyed by a
// monotonically increasing sequence number, so records iterate in the order
// they were written. Records are informational only: a matching fingerprint
// never causes a build to be skipped.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/Norgate-AV/jpack/internal/codes"
)

// bucketName is the BoltDB bucket name for build records
const bucketName = "builds"

// ErrNoRecords is returned by Latest when nothing has been recorded yet
var ErrNoRecords = errors.New("no builds recorded")

// Store manages build records using BoltDB
type Store struct {
	db   *bbolt.DB
	path string
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, codes.FSError("create", filepath.Dir(path), err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Create bucket if it doesn't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Close closes the history database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

// Put appends a record and returns it with its assigned ID
func (s *Store) Put(rec Record) (Record, error) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))

		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		rec.ID = id

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		return b.Put(itob(id), data)
	})
	if err != nil {
		return rec, fmt.Errorf("failed to store build record: %w", err)
	}

	return rec, nil
}

// List returns up to limit records, newest first. A limit <= 0 returns all.
func (s *Store) List(limit int) ([]Record, error) {
	records := []Record{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketName)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}

			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("corrupt record %d: %w", binary.BigEndian.Uint64(k), err)
			}

			records = append(records, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Latest returns the most recent record, or ErrNoRecords
func (s *Store) Latest() (*Record, error) {
	records, err := s.List(1)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	return &records[0], nil
}

// LatestSuccess returns the most recent successful record, or ErrNoRecords
func (s *Store) LatestSuccess() (*Record, error) {
	records, err := s.List(0)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Success {
			return &records[i], nil
		}
	}

	return nil, ErrNoRecords
}

// Count returns the number of stored records
func (s *Store) Count() (int, error) {
	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(bucketName)).Stats().KeyN
		return nil
	})

	return count, err
}

// Clear removes all records
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}

		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
