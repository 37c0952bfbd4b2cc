// Package prefs persists per-user bot preferences in a local bolt database.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/boltdb/bolt"
)

const dbFile = "duitbot.db"

var prefsBucket = []byte("prefs")

// Store holds the open database. Safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the preferences database inside dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	db, err := bolt.Open(filepath.Join(dir, dbFile), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create prefs bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// AutoDelete reports whether recorded chat messages should be swept for
// this user. Users without a stored preference default to on.
func (s *Store) AutoDelete(userID int64) bool {
	on := true
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(prefsBucket).Get(autoDeleteKey(userID)); len(v) == 1 {
			on = v[0] == 1
		}
		return nil
	})
	return on
}

// SetAutoDelete stores the preference for one user.
func (s *Store) SetAutoDelete(userID int64, on bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prefsBucket).Put(autoDeleteKey(userID), encodeBool(on))
	})
}

// ToggleAutoDelete flips the preference in one transaction and returns
// the new value.
func (s *Store) ToggleAutoDelete(userID int64) (bool, error) {
	var next bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(prefsBucket)
		key := autoDeleteKey(userID)
		on := true
		if v := b.Get(key); len(v) == 1 {
			on = v[0] == 1
		}
		next = !on
		return b.Put(key, encodeBool(next))
	})
	if err != nil {
		return false, err
	}
	return next, nil
}

func autoDeleteKey(userID int64) []byte {
	return []byte("autodelete/" + strconv.FormatInt(userID, 10))
}

func encodeBool(on bool) []byte {
	if on {
		return []byte{1}
	}
	return []byte{0}
}
