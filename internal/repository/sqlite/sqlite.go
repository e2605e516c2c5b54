package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"netdiagram/internal/repository"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New opens or creates the SQLite database at dbPath. ":memory:" gives a
// private in-memory database.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases and WAL writers consistent
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	PRAGMA journal_mode = WAL;
	PRAGMA busy_timeout = 5000;

	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		client_name TEXT,
		site_name TEXT,
		device_count INTEGER NOT NULL DEFAULT 0,
		data BLOB NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveSnapshot inserts s, replacing any snapshot with the same id
func (r *Repository) SaveSnapshot(ctx context.Context, s *repository.Snapshot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO snapshots (id, name, client_name, site_name, device_count, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID.String(),
		s.Name,
		stringToNull(s.ClientName),
		stringToNull(s.SiteName),
		s.DeviceCount,
		s.Data,
		s.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetSnapshot loads one snapshot including its data
func (r *Repository) GetSnapshot(ctx context.Context, id uuid.UUID) (*repository.Snapshot, error) {
	var (
		row  snapshotRow
		data []byte
	)
	args := append(row.scanArgs(), &data)

	err := r.db.QueryRowContext(ctx,
		`SELECT `+snapshotColumns+`, data FROM snapshots WHERE id = ?`,
		id.String(),
	).Scan(args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	snap, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	snap.Data = data
	return &snap, nil
}

// ListSnapshots returns snapshot summaries, newest first
func (r *Repository) ListSnapshots(ctx context.Context) ([]repository.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM snapshots ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	out := make([]repository.Snapshot, 0)
	for rows.Next() {
		var row snapshotRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return out, nil
}

// DeleteSnapshot removes a snapshot
func (r *Repository) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
