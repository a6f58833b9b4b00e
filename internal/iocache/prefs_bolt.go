package iocache

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/huangsam/shipboard/internal/contract"
	"github.com/huangsam/shipboard/schema"
	bolt "go.etcd.io/bbolt"
)

// Bucket names of the bbolt preferences file.
const (
	preferencesBucket = "preferences"
	updatedAtBucket   = "preferences_updated_at"
)

// BoltPreferenceStore stores preferences in a single bbolt file.
type BoltPreferenceStore struct {
	db   *bolt.DB
	path string
	now  func() time.Time
}

var _ contract.PreferencesStore = &BoltPreferenceStore{} // Compile-time check

// NewBoltPreferenceStore opens (or creates) the bbolt file at path.
// An empty path falls back to the default file in the home directory.
func NewBoltPreferenceStore(path string) (*BoltPreferenceStore, error) {
	if path == "" {
		path = contract.GetPrefsBoltFilePath()
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt preferences at %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{preferencesBucket, updatedAtBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltPreferenceStore{db: db, path: path, now: time.Now}, nil
}

// Load retrieves the value stored under key.
func (bs *BoltPreferenceStore) Load(key string) ([]byte, bool, error) {
	var value []byte
	var found bool
	err := bs.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(preferencesBucket))
		if bucket == nil {
			return bolt.ErrBucketNotFound
		}
		if raw := bucket.Get([]byte(key)); raw != nil {
			// Bytes returned by Get are only valid for the life of the transaction
			value = append([]byte{}, raw...)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load preference %q: %w", key, err)
	}
	return value, found, nil
}

// Save inserts or replaces the value stored under key.
func (bs *BoltPreferenceStore) Save(key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(bs.now().Unix()))

	err := bs.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(preferencesBucket)).Put([]byte(key), value); err != nil {
			return err
		}
		return tx.Bucket([]byte(updatedAtBucket)).Put([]byte(key), ts)
	})
	if err != nil {
		return fmt.Errorf("failed to save preference %q: %w", key, err)
	}
	return nil
}

// GetStatus returns status information about the preferences file.
func (bs *BoltPreferenceStore) GetStatus() (schema.PreferenceStatus, error) {
	status := schema.PreferenceStatus{
		Backend:   string(schema.BoltBackend),
		Connected: bs.db != nil,
	}
	if bs.db == nil {
		return status, nil
	}

	err := bs.db.View(func(tx *bolt.Tx) error {
		status.TotalEntries = tx.Bucket([]byte(preferencesBucket)).Stats().KeyN

		var oldest, last int64
		err := tx.Bucket([]byte(updatedAtBucket)).ForEach(func(_, v []byte) error {
			if len(v) != 8 {
				return nil
			}
			ts := int64(binary.BigEndian.Uint64(v))
			if oldest == 0 || ts < oldest {
				oldest = ts
			}
			if ts > last {
				last = ts
			}
			return nil
		})
		if err != nil {
			return err
		}
		if status.TotalEntries > 0 {
			status.LastEntryTime = time.Unix(last, 0)
			status.OldestEntryTime = time.Unix(oldest, 0)
		}
		return nil
	})
	if err != nil {
		return status, fmt.Errorf("failed to read bolt status: %w", err)
	}
	return status, nil
}

// Close closes the bbolt file.
func (bs *BoltPreferenceStore) Close() error {
	if bs.db != nil {
		return bs.db.Close()
	}
	return nil
}
