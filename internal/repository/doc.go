// Package repository defines snapshot persistence for netdiagram.
//
// A snapshot is a named, timestamped copy of the JSON save document. The
// Repository interface is implemented by two backends:
//
//   - sqlite: a single-table SQLite database in WAL mode
//   - bolt: a bbolt file with one bucket keyed by snapshot id
//
// Both return ErrNotFound for unknown ids and list newest first.
package repository
