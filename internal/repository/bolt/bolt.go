// Package bolt stores snapshots in a bbolt file.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	bbolt "go.etcd.io/bbolt"

	"netdiagram/internal/repository"
)

var bucketSnapshots = []byte("snapshots")

// Repository implements repository.Repository using BoltDB
type Repository struct {
	db *bbolt.DB
}

var _ repository.Repository = (*Repository)(nil)

// New opens or creates a BoltDB database
func New(path string) (*Repository, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Repository{db: db}, nil
}

// SaveSnapshot stores s under its id, replacing any previous value
func (r *Repository) SaveSnapshot(ctx context.Context, s *repository.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return fmt.Errorf("bucket %q not found", bucketSnapshots)
		}
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		return b.Put([]byte(s.ID.String()), data)
	})
}

// GetSnapshot loads one snapshot including its data
func (r *Repository) GetSnapshot(ctx context.Context, id uuid.UUID) (*repository.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var snap repository.Snapshot
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return fmt.Errorf("bucket %q not found", bucketSnapshots)
		}
		data := b.Get([]byte(id.String()))
		if data == nil {
			return fmt.Errorf("snapshot %s: %w", id, repository.ErrNotFound)
		}
		return json.Unmarshal(data, &snap)
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListSnapshots returns snapshot summaries, newest first
func (r *Repository) ListSnapshots(ctx context.Context) ([]repository.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []repository.Snapshot
	err := r.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return nil
		}
		out = make([]repository.Snapshot, 0, b.Stats().KeyN)
		return b.ForEach(func(k, v []byte) error {
			var snap repository.Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return fmt.Errorf("decode snapshot %s: %w", k, err)
			}
			snap.Data = nil
			out = append(out, snap)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// DeleteSnapshot removes a snapshot
func (r *Repository) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b == nil {
			return fmt.Errorf("bucket %q not found", bucketSnapshots)
		}
		key := []byte(id.String())
		if b.Get(key) == nil {
			return fmt.Errorf("snapshot %s: %w", id, repository.ErrNotFound)
		}
		return b.Delete(key)
	})
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}
