package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntag/pkg/db"
)

// vacuumAnalyze reclaims storage occupied by deleted tags and updates
// statistics used by the query planner.
//
// VACUUM cannot run inside a transaction block.
func vacuumAnalyze(ctx context.Context, op db.Operator) error {
	stmts := []string{"VACUUM ANALYZE"}
	if op.Backend() == "sqlite" {
		stmts = []string{"VACUUM", "ANALYZE"}
	}

	timeStart := time.Now()
	for _, stmt := range stmts {
		if _, err := op.DB().ExecContext(ctx, stmt); err != nil {
			slog.Error("Maintenance statement failed", "statement", stmt, "error", err)
			return VacuumError(stmt, err)
		}
	}

	slog.Info("Maintenance completed",
		"statements", stmts,
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()),
	)
	return nil
}
