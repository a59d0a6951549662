// Package lifecycle declares interfaces of components that manage the
// database itself rather than its content.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// PostgreSQL schema is handled by GORM AutoMigrate, SQLite schema by
// generated DDL. Both are idempotent.
type SchemaManager interface {
	// Create creates tables and indexes in an empty database and records
	// the schema version.
	Create(ctx context.Context) error

	// Migrate brings an existing database to the current schema,
	// creating missing tables.
	Migrate(ctx context.Context) error

	// Version returns the latest recorded schema version, or an empty
	// string for a database without schema.
	Version(ctx context.Context) (string, error)
}
