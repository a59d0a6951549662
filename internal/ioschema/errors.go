package ioschema

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Database configuration issue

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Tables left from an older installation

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Run <em>gntag create --force</em> to start from scratch`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>How to fix:</em>
  1. Check database user permissions
  2. Export the taxonomy, recreate the schema and import it back`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// VersionError creates an error for failures to read or
// write the schema version.
func VersionError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaVersionError,
		Msg:  "Cannot read or record schema version",
		Vars: nil,
		Err:  fmt.Errorf("schema version: %w", err),
	}
}

// MissingSchemaError is returned when curation starts on a database
// without gntag tables.
func MissingSchemaError() error {
	msg := `Database has no gntag schema

<em>How to fix:</em>
  Run <em>gntag create</em> first`

	return &gn.Error{
		Code: errcode.SchemaMissingError,
		Msg:  msg,
		Vars: nil,
		Err:  errors.New("schema version is not recorded"),
	}
}
