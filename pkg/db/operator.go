package db

import (
	"context"
	"database/sql"

	"github.com/gnames/gntag/pkg/config"
	"github.com/huandu/go-sqlbuilder"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes a *sql.DB for
// the store and schema components to run their SQL.
//
// Two backends exist: PostgreSQL (pgxpool behind database/sql) and SQLite.
// Flavor tells SQL builders which placeholder and quoting dialect to use.
type Operator interface {
	// Connect opens the database described by the config.
	Connect(context.Context, *config.Config) error

	// Close releases all database connections.
	Close() error

	// DB returns the database handle, nil before Connect.
	DB() *sql.DB

	// Backend returns "postgres" or "sqlite".
	Backend() string

	// Flavor returns the SQL dialect of the backend.
	Flavor() sqlbuilder.Flavor

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should ask for --force.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables of the database.
	DropAllTables(ctx context.Context) error
}
