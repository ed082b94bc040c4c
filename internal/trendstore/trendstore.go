// Package trendstore is a small embedded key/value store for UI state
// that must survive restarts: profit trend snapshots, chart history and
// recent searches. Writes are last-write-wins.
package trendstore

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/stablearb/arbgate/internal/apperror"
)

var bucketState = []byte("state")

// Entry is a stored value with its write time.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store wraps a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the store file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, apperror.New(apperror.CodeStateStoreError,
			apperror.WithContext(path), apperror.WithCause(err))
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		db.Close()
		return nil, apperror.New(apperror.CodeStateStoreError, apperror.WithCause(err))
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a value under key, stamping the write time.
func (s *Store) Put(key string, value json.RawMessage) error {
	entry := Entry{Value: value, UpdatedAt: time.Now().UTC()}
	raw, err := json.Marshal(entry)
	if err != nil {
		return apperror.New(apperror.CodeStateStoreError,
			apperror.WithContext(key), apperror.WithCause(err))
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Put([]byte(key), raw)
	})
	if err != nil {
		return apperror.New(apperror.CodeStateStoreError,
			apperror.WithContext(key), apperror.WithCause(err))
	}
	return nil
}

// Get fetches a stored entry. A missing key returns (nil, nil).
func (s *Store) Get(key string) (*Entry, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketState).Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.New(apperror.CodeStateStoreError,
			apperror.WithContext(key), apperror.WithCause(err))
	}
	if raw == nil {
		return nil, nil
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, apperror.New(apperror.CodeStateStoreError,
			apperror.WithContext(key), apperror.WithCause(err))
	}
	return &entry, nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).Delete([]byte(key))
	})
	if err != nil {
		return apperror.New(apperror.CodeStateStoreError,
			apperror.WithContext(key), apperror.WithCause(err))
	}
	return nil
}

// Keys lists all stored keys.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketState).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, apperror.New(apperror.CodeStateStoreError, apperror.WithCause(err))
	}
	return keys, nil
}
