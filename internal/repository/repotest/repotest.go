// Package repotest holds the behaviour every snapshot backend must share.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdiagram/internal/repository"
)

// Run exercises a fresh repository returned by open
func Run(t *testing.T, open func(t *testing.T) repository.Repository) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	snapshot := func(name string, offset time.Duration) *repository.Snapshot {
		return &repository.Snapshot{
			ID:          uuid.New(),
			Name:        name,
			ClientName:  "Acme",
			DeviceCount: 2,
			CreatedAt:   base.Add(offset),
			Data:        []byte(`{"devices":[]}`),
		}
	}

	t.Run("save and get", func(t *testing.T) {
		repo := open(t)
		want := snapshot("first", 0)
		require.NoError(t, repo.SaveSnapshot(ctx, want))

		got, err := repo.GetSnapshot(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, "first", got.Name)
		assert.Equal(t, "Acme", got.ClientName)
		assert.Empty(t, got.SiteName)
		assert.Equal(t, 2, got.DeviceCount)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created at %v, want %v", got.CreatedAt, want.CreatedAt)
		assert.Equal(t, want.Data, got.Data)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := open(t)
		_, err := repo.GetSnapshot(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("save replaces same id", func(t *testing.T) {
		repo := open(t)
		s := snapshot("v1", 0)
		require.NoError(t, repo.SaveSnapshot(ctx, s))
		s.Name = "v2"
		require.NoError(t, repo.SaveSnapshot(ctx, s))

		list, err := repo.ListSnapshots(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "v2", list[0].Name)
	})

	t.Run("list newest first without data", func(t *testing.T) {
		repo := open(t)
		list, err := repo.ListSnapshots(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)

		older := snapshot("older", 0)
		newer := snapshot("newer", time.Hour)
		require.NoError(t, repo.SaveSnapshot(ctx, older))
		require.NoError(t, repo.SaveSnapshot(ctx, newer))

		list, err = repo.ListSnapshots(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "newer", list[0].Name)
		assert.Equal(t, "older", list[1].Name)
		assert.Nil(t, list[0].Data)
	})

	t.Run("delete", func(t *testing.T) {
		repo := open(t)
		s := snapshot("gone", 0)
		require.NoError(t, repo.SaveSnapshot(ctx, s))

		require.NoError(t, repo.DeleteSnapshot(ctx, s.ID))
		_, err := repo.GetSnapshot(ctx, s.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteSnapshot(ctx, s.ID), repository.ErrNotFound)
	})
}
