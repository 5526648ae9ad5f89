package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/opensmoker/smokerd/internal/status"
	"github.com/opensmoker/smokerd/internal/ui"
)

const (
	BucketHistory = "history"

	// keyLayout renders snapshot timestamps as fixed-width UTC strings,
	// so byte order equals time order.
	keyLayout = time.RFC3339
)

type Persistence interface {
	Init() error

	SaveSnapshot(snap status.Snapshot) error
	LoadSnapshotsSince(since time.Time) ([]status.Snapshot, error)
	DeleteSnapshotsBefore(cutoff time.Time) (int, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveSnapshot appends one status snapshot to the history bucket, keyed
// by its timestamp. A snapshot with the same second-resolution timestamp
// overwrites the previous one.
func (p persistence) SaveSnapshot(snap status.Snapshot) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := historyKey(snap.Time)

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketHistory))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(key), data)
	})
}

// LoadSnapshotsSince returns all snapshots recorded at or after the given
// time, oldest first. Rows that no longer unmarshal are dropped from the
// bucket.
func (p persistence) LoadSnapshotsSince(since time.Time) ([]status.Snapshot, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var snapshots []status.Snapshot
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketHistory))
		if b == nil {
			// nothing recorded yet
			return nil
		}

		var corrupt [][]byte
		c := b.Cursor()
		for k, v := c.Seek([]byte(historyKey(since))); k != nil; k, v = c.Next() {
			var snap status.Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				ui.Warning("Unable to unmarshal history row %s: %v", string(k), err)
				corrupt = append(corrupt, append([]byte(nil), k...))
				continue
			}
			snapshots = append(snapshots, snap)
		}

		for _, k := range corrupt {
			if err := b.Delete(k); err != nil {
				ui.Error("Unable to delete corrupt history row %s: %v", string(k), err)
			}
		}
		return nil
	})

	return snapshots, err
}

// DeleteSnapshotsBefore removes all snapshots recorded before the cutoff
// and returns how many rows were dropped.
func (p persistence) DeleteSnapshotsBefore(cutoff time.Time) (int, error) {
	db, err := p.openPersistence()
	if err != nil {
		return 0, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	count := 0
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketHistory))
		if b == nil {
			return nil
		}

		var stale [][]byte
		cutoffKey := historyKey(cutoff)
		c := b.Cursor()
		for k, _ := c.First(); k != nil && string(k) < cutoffKey; k, _ = c.Next() {
			stale = append(stale, append([]byte(nil), k...))
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			count++
		}
		return nil
	})

	return count, err
}

func historyKey(t time.Time) string {
	return t.UTC().Format(keyLayout)
}
