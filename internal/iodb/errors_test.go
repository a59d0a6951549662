package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 4,
		"Should have 4 vars: host, port, database, user")
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestErrors_Structure(t *testing.T) {
	orig := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		vars int
	}{
		{"sqlite", SQLiteOpenError("/tmp/x.sqlite", orig), errcode.DBConnectionError, 1},
		{"check", TableCheckError(orig), errcode.DBTableCheckError, 0},
		{"exists", TableExistsCheckError("tags", orig), errcode.DBTableCheckError, 1},
		{"query", QueryTablesError(orig), errcode.DBQueryTablesError, 0},
		{"scan", ScanTableError(orig), errcode.DBScanTableError, 0},
		{"drop", DropTableError("tags", orig), errcode.DBDropTableError, 1},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Len(t, gnErr.Vars, v.vars, v.msg)
		assert.ErrorIs(t, gnErr.Err, orig, v.msg)
	}
}

func TestUnsupportedBackendError(t *testing.T) {
	err := UnsupportedBackendError("mysql")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBUnsupportedBackendError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "mysql")
}

func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
