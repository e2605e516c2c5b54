package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"netdiagram/internal/codec"
	"netdiagram/internal/domain"
	"netdiagram/internal/repository"
)

// SaveSnapshot stores the current save document under name
func (s *DiagramService) SaveSnapshot(ctx context.Context, name string) (*repository.Snapshot, error) {
	if s.repo == nil {
		return nil, ErrSnapshotsDisabled
	}
	if name == "" {
		return nil, fmt.Errorf("snapshot name: %w", domain.ErrMissingField)
	}

	var buf bytes.Buffer
	s.mu.Lock()
	snap := &repository.Snapshot{
		ID:          uuid.New(),
		Name:        name,
		ClientName:  s.clientName,
		SiteName:    s.siteName,
		DeviceCount: len(s.state.Devices),
		CreatedAt:   time.Now().UTC(),
	}
	err := codec.NewJSONCodec().Export(codec.ExportState(s.state, s.clientName, s.siteName), &buf)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	snap.Data = buf.Bytes()

	if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.log.Info().Str("snapshot_id", snap.ID.String()).Str("name", name).Int("devices", snap.DeviceCount).Msg("snapshot saved")
	s.metrics.IncSnapshot("save")
	s.eventBus.Publish(Event{Type: EventSnapshotSaved, Payload: map[string]string{"snapshot_id": snap.ID.String(), "name": name}})
	return snap, nil
}

// ListSnapshots returns stored snapshots, newest first, without their data
func (s *DiagramService) ListSnapshots(ctx context.Context) ([]repository.Snapshot, error) {
	if s.repo == nil {
		return nil, ErrSnapshotsDisabled
	}
	snaps, err := s.repo.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	s.metrics.IncSnapshot("list")
	return snaps, nil
}

// RestoreSnapshot replaces the diagram with a stored snapshot
func (s *DiagramService) RestoreSnapshot(ctx context.Context, id uuid.UUID) (codec.Meta, error) {
	if s.repo == nil {
		return codec.Meta{}, ErrSnapshotsDisabled
	}
	snap, err := s.repo.GetSnapshot(ctx, id)
	if err != nil {
		return codec.Meta{}, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}

	doc, err := codec.NewJSONCodec().Parse(bytes.NewReader(snap.Data))
	if err != nil {
		return codec.Meta{}, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}

	meta := s.ImportDocument(doc)
	s.log.Info().Str("snapshot_id", id.String()).Msg("snapshot restored")
	s.metrics.IncSnapshot("restore")
	return meta, nil
}

// DeleteSnapshot removes a stored snapshot
func (s *DiagramService) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	if s.repo == nil {
		return ErrSnapshotsDisabled
	}
	if err := s.repo.DeleteSnapshot(ctx, id); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	s.metrics.IncSnapshot("delete")
	return nil
}
