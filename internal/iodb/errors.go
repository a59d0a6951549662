package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
)

// ConnectionError is returned when PostgreSQL connection fails.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database <em>%s</em> exists for user <em>%s</em>
  3. Check ~/.config/gntag/config.yaml or GNTAG_DATABASE_* variables
  4. Use <em>--backend sqlite</em> to work with a local file instead`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database, user},
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// SQLiteOpenError is returned when the SQLite file cannot be opened.
func SQLiteOpenError(path string, err error) error {
	msg := `Could not open SQLite database <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory is writable
  2. Set <em>database.sqlite_path</em> in config.yaml to another file`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %s: %w", path, err),
	}
}

// UnsupportedBackendError is returned for an unknown database backend.
func UnsupportedBackendError(backend string) error {
	msg := `Unknown database backend <em>%s</em>

<em>How to fix:</em>
  Use "postgres" or "sqlite"`

	return &gn.Error{
		Code: errcode.DBUnsupportedBackendError,
		Msg:  msg,
		Vars: []any{backend},
		Err:  fmt.Errorf("unsupported backend %q", backend),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not verify database state",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError is returned when a table lookup fails.
func TableExistsCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not check if table <em>%s</em> exists",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}

// QueryTablesError is returned when the list of tables cannot be read.
func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Could not list database tables",
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError is returned when a table name cannot be scanned.
func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Could not read database table names",
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := `Could not drop table <em>%s</em>

<em>How to fix:</em>
  Check that the database user owns the table`

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
