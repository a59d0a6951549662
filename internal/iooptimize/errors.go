package iooptimize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
)

// NotConnectedError is returned when optimization starts before the
// database connection is opened.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.OptimizeNotConnectedError,
		Msg:  "Database not connected",
		Vars: nil,
		Err:  fmt.Errorf("optimize: database is not connected"),
	}
}

// VacuumError is returned when space reclaiming or statistics update
// fails.
func VacuumError(stmt string, err error) error {
	msg := `Cannot run <em>%s</em>

<em>How to fix:</em>
  1. Make sure no other long transaction holds the tables
  2. Check that the database user owns the gntag tables`

	return &gn.Error{
		Code: errcode.OptimizeVacuumError,
		Msg:  msg,
		Vars: []any{stmt},
		Err:  fmt.Errorf("optimize: %s failed: %w", stmt, err),
	}
}
