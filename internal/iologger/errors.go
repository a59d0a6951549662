package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
)

// CreateLogFileError is returned when the curation log file cannot be
// opened for appending.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>

<em>How to fix:</em>
  1. Check that the logs directory is writable
  2. Or log to the terminal: GNTAG_LOG_DESTINATION=stderr`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open log file %s: %w",
			fn.Name(), path, err),
	}
}
