package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iocurator"
	"github.com/gnames/gntag/internal/iodb"
	"github.com/gnames/gntag/internal/ioschema"
	"github.com/gnames/gntag/internal/iostore"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/db"
)

// connect opens the backend selected in the configuration.
func connect(ctx context.Context) (db.Operator, error) {
	op, err := iodb.New(cfg)
	if err != nil {
		return nil, err
	}
	if err = op.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	gn.Info("Connected to database: <em>%s</em>", location())
	return op, nil
}

func location() string {
	if cfg.Database.Backend == "sqlite" {
		return cfg.SQLitePath()
	}
	dbc := cfg.Database
	return fmt.Sprintf("%s@%s:%d/%s", dbc.User, dbc.Host, dbc.Port, dbc.Database)
}

// openCurator connects to the store and makes sure it has the schema.
// The returned function closes the connection.
func openCurator(ctx context.Context) (curator.Curator, func(), error) {
	op, err := connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = op.Close() }

	version, err := ioschema.NewManager(op).Version(ctx)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	if version == "" {
		closeDB()
		return nil, nil, ioschema.MissingSchemaError()
	}

	s, err := iostore.New(op)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return iocurator.New(cfg, s, nil), closeDB, nil
}
