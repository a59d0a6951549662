// Package iodb implements database operations for PostgreSQL (pgxpool)
// and SQLite (modernc). This is an impure I/O package that implements
// contracts defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gnames/gntag/pkg/config"
	"github.com/gnames/gntag/pkg/db"
	"github.com/huandu/go-sqlbuilder"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// New creates an operator (without connecting) for the backend
// selected in the config.
func New(cfg *config.Config) (db.Operator, error) {
	switch cfg.Database.Backend {
	case "postgres":
		return NewPgxOperator(), nil
	case "sqlite":
		return NewSQLiteOperator(), nil
	default:
		return nil, UnsupportedBackendError(cfg.Database.Backend)
	}
}

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

// NewPgxOperator creates a new PostgreSQL operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
// Uses sensible hardcoded pool settings that work well for
// most use cases.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.Config,
) error {
	dbc := cfg.Database
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.Database,
		dbc.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(dbc.Host, dbc.Port,
			dbc.Database, dbc.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(dbc.Host, dbc.Port,
			dbc.Database, dbc.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(dbc.Host, dbc.Port,
			dbc.Database, dbc.User, err)
	}

	p.pool = pool
	p.db = stdlib.OpenDBFromPool(pool)
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	var err error
	if p.db != nil {
		err = p.db.Close()
		p.db = nil
	}
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return err
}

// DB returns database/sql view of the pool.
func (p *pgxOperator) DB() *sql.DB {
	return p.db
}

func (p *pgxOperator) Backend() string {
	return "postgres"
}

func (p *pgxOperator) Flavor() sqlbuilder.Flavor {
	return sqlbuilder.PostgreSQL
}

// TableExists checks if a table exists in the current
// database.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables in the
// public schema.
func (p *pgxOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`

	var hasTables bool
	err := p.pool.QueryRow(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError(err)
	}

	return hasTables, nil
}

// DropAllTables drops all tables in the public schema.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return QueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return ScanTableError(err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return ScanTableError(err)
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf(
			"DROP TABLE IF EXISTS %s CASCADE", table)
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}
