package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a snapshot id does not exist
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is a stored save document
type Snapshot struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ClientName  string    `json:"clientName,omitempty"`
	SiteName    string    `json:"siteName,omitempty"`
	DeviceCount int       `json:"deviceCount"`
	CreatedAt   time.Time `json:"createdAt"`

	// Data is the encoded document. List leaves it empty.
	Data []byte `json:"data,omitempty"`
}

// Repository stores and retrieves snapshots
type Repository interface {
	SaveSnapshot(ctx context.Context, s *Snapshot) error
	GetSnapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	// ListSnapshots returns every snapshot without Data, newest first
	ListSnapshots(ctx context.Context) ([]Snapshot, error)
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error

	// Close releases resources
	Close() error
}
