package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iodb"
	"github.com/gnames/gntag/internal/iotesting"
	"github.com/gnames/gntag/pkg/config"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: PostgreSQL tests need a running server and the gntag_test
// database. Connection settings come from GNTAG_DATABASE_* environment
// variables. They are skipped with -short or when the server is not
// reachable. SQLite tests always run.

func TestNew(t *testing.T) {
	cfg := config.New()

	op, err := iodb.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", op.Backend())

	cfg.Update([]config.Option{config.OptDatabaseBackend("sqlite")})
	op, err = iodb.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", op.Backend())

	cfg.Database.Backend = "mysql"
	_, err = iodb.New(cfg)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBUnsupportedBackendError, gnErr.Code)
}

func TestSQLiteOperator_NotConnected(t *testing.T) {
	op := iodb.NewSQLiteOperator()
	ctx := context.Background()

	_, err := op.HasTables(ctx)
	assert.Error(t, err)
	assert.Error(t, op.DropAllTables(ctx))
	assert.NoError(t, op.Close())
}

func TestSQLiteOperator_Tables(t *testing.T) {
	ctx := context.Background()
	op := iotesting.ConnectSQLite(t)

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "fresh database has no tables")

	_, err = op.DB().ExecContext(ctx, "CREATE TABLE drop_test1 (id INTEGER)")
	require.NoError(t, err)
	_, err = op.DB().ExecContext(ctx, "CREATE TABLE drop_test2 (id INTEGER)")
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "drop_test1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.TableExists(ctx, "nonexistent_table")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, op.DropAllTables(ctx))
	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has, "all tables should be dropped")
}

func TestSQLiteOperator_File(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.GetTestConfig(t)
	path := filepath.Join(cfg.HomeDir, "sub", "tags.sqlite")
	cfg.Update([]config.Option{config.OptDatabaseSQLitePath(path)})

	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Connect(ctx, cfg))
	_, err := op.DB().ExecContext(ctx, "CREATE TABLE keep (id INTEGER)")
	require.NoError(t, err)
	require.NoError(t, op.Close())

	// data survives reconnect
	require.NoError(t, op.Connect(ctx, cfg))
	defer op.Close()
	exists, err := op.TableExists(ctx, "keep")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	cfg := iotesting.GetPostgresConfig(t)
	cfg.Database.Host = "invalid-host-that-does-not-exist"

	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}

func TestPgxOperator_TableExists(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	op := iotesting.ConnectPostgres(t)

	_, _ = op.DB().ExecContext(ctx, "DROP TABLE IF EXISTS test_table_exists CASCADE")

	exists, err := op.TableExists(ctx, "test_table_exists")
	require.NoError(t, err)
	assert.False(t, exists, "Table should not exist initially")

	_, err = op.DB().ExecContext(ctx, "CREATE TABLE test_table_exists (id SERIAL PRIMARY KEY)")
	require.NoError(t, err)

	exists, err = op.TableExists(ctx, "test_table_exists")
	require.NoError(t, err)
	assert.True(t, exists, "Table should exist after creation")

	_, _ = op.DB().ExecContext(ctx, "DROP TABLE test_table_exists")
}
