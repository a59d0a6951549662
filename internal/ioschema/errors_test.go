package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestSchemaErrors_Structure(t *testing.T) {
	orig := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"gorm", GORMConnectionError(orig), errcode.SchemaGORMConnectionError},
		{"create", CreateSchemaError(orig), errcode.SchemaCreateError},
		{"migrate", MigrateSchemaError(orig), errcode.SchemaMigrateError},
		{"version", VersionError(orig), errcode.SchemaVersionError},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.ErrorIs(t, gnErr.Err, orig, v.msg)
	}
}

func TestMissingSchemaError(t *testing.T) {
	err := MissingSchemaError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.SchemaMissingError, gnErr.Code)
	assert.Contains(t, gnErr.Msg, "gntag create")
	assert.EqualError(t, gnErr.Err, "schema version is not recorded")
}
