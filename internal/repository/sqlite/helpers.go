package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"netdiagram/internal/repository"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Snapshot Row Scanner
// ============================================================================
//
// Column order must match between snapshotColumns, scanArgs() and every
// SELECT using snapshotColumns.

const snapshotColumns = "id, name, client_name, site_name, device_count, created_at"

// snapshotRow holds the summary columns of a snapshot query
type snapshotRow struct {
	ID          string
	Name        string
	ClientName  sql.NullString
	SiteName    sql.NullString
	DeviceCount int
	CreatedAtMs int64
}

// scanArgs returns pointers to all fields for sql.Scan()
func (r *snapshotRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Name,
		&r.ClientName,
		&r.SiteName,
		&r.DeviceCount,
		&r.CreatedAtMs,
	}
}

// toDomain converts the row to a snapshot without Data
func (r *snapshotRow) toDomain() (repository.Snapshot, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return repository.Snapshot{}, fmt.Errorf("invalid snapshot id %q: %w", r.ID, err)
	}
	return repository.Snapshot{
		ID:          id,
		Name:        r.Name,
		ClientName:  nullToString(r.ClientName),
		SiteName:    nullToString(r.SiteName),
		DeviceCount: r.DeviceCount,
		CreatedAt:   time.UnixMilli(r.CreatedAtMs).UTC(),
	}, nil
}
