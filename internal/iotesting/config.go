// Package iotesting provides shared test utilities for store-backed tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gnames/gntag/internal/iodb"
	"github.com/gnames/gntag/internal/ioschema"
	"github.com/gnames/gntag/internal/iostore"
	"github.com/gnames/gntag/pkg/config"
	"github.com/gnames/gntag/pkg/db"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gntag_test"
)

// GetTestConfig returns a configuration with an in-memory SQLite
// database and a temporary home directory.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseBackend("sqlite"),
		config.OptDatabaseSQLitePath(iodb.MemoryPath),
		config.OptJobsNumber(2),
	})
	return cfg
}

// GetPostgresConfig returns a configuration for PostgreSQL integration
// tests. Connection settings come from GNTAG_DATABASE_* environment
// variables, the database name is always TestDatabaseName.
func GetPostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	opts := []config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptDatabaseBackend("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if s := os.Getenv("GNTAG_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNTAG_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNTAG_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if i, err := strconv.Atoi(os.Getenv("GNTAG_DATABASE_PORT")); err == nil {
		opts = append(opts, config.OptDatabasePort(i))
	}

	cfg := config.New()
	cfg.Update(opts)
	return cfg
}

// ConnectSQLite opens an in-memory SQLite database that is closed
// when the test finishes.
func ConnectSQLite(t *testing.T) db.Operator {
	t.Helper()
	op := iodb.NewSQLiteOperator()
	if err := op.Connect(context.Background(), GetTestConfig(t)); err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { op.Close() })
	return op
}

// ConnectPostgres connects to the PostgreSQL test database, or skips
// the test when the server cannot be reached.
func ConnectPostgres(t *testing.T) db.Operator {
	t.Helper()
	op := iodb.NewPgxOperator()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := op.Connect(ctx, GetPostgresConfig(t)); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { op.Close() })
	return op
}

// NewStore returns a store over a fresh in-memory SQLite database
// with the gntag schema.
func NewStore(t *testing.T) store.Store {
	t.Helper()
	op := ConnectSQLite(t)
	if err := ioschema.NewManager(op).Create(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	res, err := iostore.New(op)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return res
}

// Seed inserts tags into the store and fails the test on error.
// Creation times follow the order of the slice.
func Seed(t *testing.T, s store.Store, tags ...tag.Tag) {
	t.Helper()
	if err := s.InsertTags(context.Background(), tags); err != nil {
		t.Fatalf("Failed to seed tags: %v", err)
	}
}

// Parent builds a parent tag of a document.
func Parent(id, name, doc string) tag.Tag {
	return tag.Tag{ID: id, Name: name, Type: tag.Parent, DocumentID: doc}
}

// Child builds a child tag of a document, empty parentID means an
// unattached child.
func Child(id, name, doc, parentID string) tag.Tag {
	res := tag.Tag{ID: id, Name: name, Type: tag.Child, DocumentID: doc}
	if parentID != "" {
		res.ParentID = &parentID
	}
	return res
}
