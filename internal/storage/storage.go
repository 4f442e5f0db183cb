// Package storage keeps an optional history of predictions served.
// It uses BoltDB as the underlying storage engine; records are JSON values
// keyed by a zero-padded nanosecond timestamp so cursor order is time order.
//
// The history is an audit trail only. Nothing here is read back into a
// prediction.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"clean-energy-predictor/internal/present"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	predictionsBucket = "predictions" // Bucket name for prediction records
	dbFileName        = "predictions.db"
)

// Store provides persistent storage for prediction results using BoltDB.
type Store struct {
	db *bbolt.DB // BoltDB database instance
}

// New opens (or creates) the history database under dataPath.
// Returns an error if the database cannot be opened or buckets cannot be created.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, dbFileName)

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(predictionsBucket)); err != nil {
			return fmt.Errorf("create predictions bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection gracefully.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StorePrediction persists res and returns it with ID set. A zero
// timestamp is replaced with the current time.
func (s *Store) StorePrediction(res present.Result) (present.Result, error) {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.Timestamp.IsZero() {
		res.Timestamp = time.Now().UTC()
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(predictionsBucket))

		data, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal prediction: %w", err)
		}

		return b.Put(recordKey(res.Timestamp, res.ID), data)
	})
	if err != nil {
		return present.Result{}, err
	}
	return res, nil
}

// RecentPredictions returns up to limit records, newest first.
func (s *Store) RecentPredictions(limit int) ([]present.Result, error) {
	if limit <= 0 {
		return nil, nil
	}

	results := make([]present.Result, 0, limit)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(predictionsBucket)).Cursor()

		for k, v := c.Last(); k != nil && len(results) < limit; k, v = c.Prev() {
			var res present.Result
			if err := json.Unmarshal(v, &res); err != nil {
				continue // Skip malformed records
			}
			results = append(results, res)
		}
		return nil
	})
	return results, err
}

// PredictionsInRange returns records with start <= timestamp <= end,
// oldest first.
func (s *Store) PredictionsInRange(start, end time.Time) ([]present.Result, error) {
	var results []present.Result

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(predictionsBucket)).Cursor()

		startKey := timeKey(start)
		endKey := timeKey(end)

		for k, v := c.Seek(startKey); k != nil && bytes.Compare(k[:len(endKey)], endKey) <= 0; k, v = c.Next() {
			var res present.Result
			if err := json.Unmarshal(v, &res); err != nil {
				continue
			}
			results = append(results, res)
		}
		return nil
	})
	return results, err
}

// Count returns the number of stored predictions.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket([]byte(predictionsBucket)).Stats().KeyN
		return nil
	})
	return n, err
}

// timeKey is the fixed-width timestamp prefix of every key.
func timeKey(t time.Time) []byte {
	return []byte(fmt.Sprintf("%020d", t.UnixNano()))
}

func recordKey(t time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%020d_%s", t.UnixNano(), id))
}
