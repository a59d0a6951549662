// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate on PostgreSQL and runs generated
// DDL on SQLite.
package ioschema

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/gnames/gntag/pkg/db"
	"github.com/gnames/gntag/pkg/lifecycle"
	"github.com/gnames/gntag/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema and records its version.
func (m *manager) Create(ctx context.Context) error {
	if err := m.migrate(ctx, CreateSchemaError); err != nil {
		return err
	}
	return m.setVersion(ctx)
}

// Migrate updates the database schema to the latest version.
func (m *manager) Migrate(ctx context.Context) error {
	if err := m.migrate(ctx, MigrateSchemaError); err != nil {
		return err
	}
	return m.setVersion(ctx)
}

func (m *manager) migrate(
	ctx context.Context,
	errFn func(error) error,
) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	if m.operator.Backend() == "postgres" {
		gormDB, err := gorm.Open(
			postgres.New(postgres.Config{Conn: sqlDB}),
			&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
		)
		if err != nil {
			return GORMConnectionError(err)
		}

		if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
			return errFn(err)
		}
		return nil
	}

	return m.migrateDDL(ctx, errFn)
}

// migrateDDL creates missing tables with their indexes.
func (m *manager) migrateDDL(
	ctx context.Context,
	errFn func(error) error,
) error {
	sqlDB := m.operator.DB()
	for _, model := range schema.AllModels() {
		exists, err := m.operator.TableExists(ctx, model.TableName())
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		stmts := append([]string{model.TableDDL()}, model.IndexDDL()...)
		for _, stmt := range stmts {
			if _, err = sqlDB.ExecContext(ctx, stmt); err != nil {
				return errFn(err)
			}
		}
		slog.Info("Created table", "table", model.TableName())
	}
	return nil
}

func (m *manager) setVersion(ctx context.Context) error {
	cur, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if cur == schema.Version {
		return nil
	}

	ib := m.operator.Flavor().NewInsertBuilder()
	ib.InsertInto(schema.SchemaVersion{}.TableName())
	ib.Cols(schema.Columns(schema.SchemaVersion{})...)
	ib.Values(schema.Version, "tags, merge rules and curation events",
		nowUTC())

	query, args := ib.Build()
	if _, err = m.operator.DB().ExecContext(ctx, query, args...); err != nil {
		return VersionError(err)
	}
	slog.Info("Schema version recorded", "version", schema.Version)
	return nil
}

// Version returns the latest applied schema version.
func (m *manager) Version(ctx context.Context) (string, error) {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return "", NotConnectedError()
	}

	table := schema.SchemaVersion{}.TableName()
	exists, err := m.operator.TableExists(ctx, table)
	if err != nil || !exists {
		return "", err
	}

	sb := m.operator.Flavor().NewSelectBuilder()
	sb.Select("version").From(table)
	sb.OrderBy("applied_at").Desc().Limit(1)

	query, args := sb.Build()
	var res string
	err = sqlDB.QueryRowContext(ctx, query, args...).Scan(&res)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", VersionError(err)
	}
	return res, nil
}
