package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netdiagram/internal/repository"
	"netdiagram/internal/repository/repotest"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository(t *testing.T) {
	repotest.Run(t, newTestRepo)
}

func TestReopenKeepsSnapshots(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "netdiagram.db")

	repo, err := New(path)
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, repo.SaveSnapshot(ctx, &repository.Snapshot{ID: id, Name: "kept", Data: []byte("{}")}))
	require.NoError(t, repo.Close())

	repo, err = New(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.GetSnapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
}

func TestNullHelpers(t *testing.T) {
	assert.False(t, stringToNull("").Valid)
	assert.Equal(t, "x", nullToString(stringToNull("x")))
	assert.Equal(t, "", nullToString(stringToNull("")))
}

func TestCorruptIDSurfaces(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.db.Exec(`INSERT INTO snapshots (id, name, data, created_at) VALUES ('not-a-uuid', 'bad', x'00', 0)`)
	require.NoError(t, err)

	_, err = repo.ListSnapshots(context.Background())
	assert.Error(t, err)
}
