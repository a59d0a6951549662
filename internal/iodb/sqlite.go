package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnames/gntag/pkg/config"
	"github.com/gnames/gntag/pkg/db"
	"github.com/huandu/go-sqlbuilder"
	_ "modernc.org/sqlite"
)

// MemoryPath keeps a SQLite database in memory.
const MemoryPath = ":memory:"

// sqliteOperator implements db.Operator for a local SQLite file.
type sqliteOperator struct {
	path string
	db   *sql.DB
}

// NewSQLiteOperator creates a new SQLite operator
// (without connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the SQLite database, creating the file if needed.
// A single connection is used, SQLite serializes writers anyway and
// an in-memory database exists only inside its connection.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	path := cfg.SQLitePath()
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return SQLiteOpenError(path, err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return SQLiteOpenError(path, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteOpenError(path, err)
	}

	s.path = path
	s.db = sqlDB
	return nil
}

// Close releases the database file.
func (s *sqliteOperator) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

func (s *sqliteOperator) Backend() string {
	return "sqlite"
}

func (s *sqliteOperator) Flavor() sqlbuilder.Flavor {
	return sqlbuilder.SQLite
}

// TableExists checks if a table exists in the database file.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?`

	var count int
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&count)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return count > 0, nil
}

// HasTables checks if the database has any user tables.
func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	tables, err := s.tables(ctx)
	if err != nil {
		return false, TableCheckError(err)
	}
	return len(tables) > 0, nil
}

// DropAllTables drops all user tables of the database file.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}

	tables, err := s.tables(ctx)
	if err != nil {
		return QueryTablesError(err)
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := s.db.ExecContext(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

func (s *sqliteOperator) tables(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	return res, rows.Err()
}
