package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.etcd.io/bbolt"

	"github.com/evenlyhq/receiptlens/internal/common"
)

const entriesBucket = "entries"

// BoltArchive implements Archive on an embedded bbolt database.
type BoltArchive struct {
	db     *bbolt.DB
	logger *slog.Logger
}

func NewBoltArchive(path string, logger *slog.Logger) (*BoltArchive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(entriesBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}
	return &BoltArchive{db: db, logger: logger}, nil
}

func (a *BoltArchive) SaveEntry(_ context.Context, e *Entry) error {
	return a.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshaling entry: %w", err)
		}
		return bucket.Put([]byte(e.ID), data)
	})
}

func (a *BoltArchive) GetEntry(_ context.Context, id string) (*Entry, error) {
	var entry *Entry
	err := a.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: entry %s", common.ErrNotFound, id)
		}
		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries returns all archived entries, oldest first.
func (a *BoltArchive) ListEntries(_ context.Context) ([]*Entry, error) {
	entries := make([]*Entry, 0)
	err := a.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(entriesBucket))
		return bucket.ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("unmarshaling entry: %w", err)
			}
			entries = append(entries, &e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

func (a *BoltArchive) Close() error {
	return a.db.Close()
}
