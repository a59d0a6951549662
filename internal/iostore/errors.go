package iostore

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/gnames/gntag/pkg/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// NotConnectedError is returned when a store is created before the
// database operator connects.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Tag store created without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// UnavailableError marks a failure to reach the database. Its Err
// matches store.ErrUnavailable with errors.Is.
func UnavailableError(op string, err error) error {
	msg := `Tag store is unavailable

<em>How to fix:</em>
  1. Check that the database server is running
  2. Check database settings in ~/.config/gntag/config.yaml`

	return &gn.Error{
		Code: errcode.StoreUnavailableError,
		Msg:  msg,
		Err:  fmt.Errorf("%s: %w: %w", op, store.ErrUnavailable, err),
	}
}

// QueryError is returned when reading from the store fails.
func QueryError(op string, err error) error {
	if isConnectionError(err) {
		return UnavailableError(op, err)
	}
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "Cannot read from tag store (%s)",
		Vars: []any{op},
		Err:  fmt.Errorf("%s: %w", op, err),
	}
}

// WriteError is returned when changing the store fails.
func WriteError(op string, err error) error {
	if isConnectionError(err) {
		return UnavailableError(op, err)
	}
	return &gn.Error{
		Code: errcode.StoreWriteError,
		Msg:  "Cannot write to tag store (%s)",
		Vars: []any{op},
		Err:  fmt.Errorf("%s: %w", op, err),
	}
}

// NotFoundError is returned when a tag addressed by id does not exist.
func NotFoundError(id string) error {
	return &gn.Error{
		Code: errcode.CurateTagNotFoundError,
		Msg:  "Tag <em>%s</em> does not exist",
		Vars: []any{id},
		Err:  fmt.Errorf("tag %s: %w", id, store.ErrNotFound),
	}
}

// isConnectionError detects failures of the connection itself, as
// opposed to failures of a statement.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
