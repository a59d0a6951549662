// Package iooptimize implements the lifecycle.Optimizer interface.
// This is an impure I/O package that runs maintenance statements on
// the tag store.
package iooptimize

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/db"
	"github.com/gnames/gntag/pkg/lifecycle"
	"github.com/gnames/gntag/pkg/store"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	operator db.Operator
	store    store.Store
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(op db.Operator, s store.Store) lifecycle.Optimizer {
	return &optimizer{
		operator: op,
		store:    s,
	}
}

// Optimize executes 2 sequential steps:
//  1. Count live tags and orphans that wait for review
//  2. Reclaim space and update statistics
//
// Orphans are never removed here, they are a curation decision.
func (o *optimizer) Optimize(
	ctx context.Context,
) (*lifecycle.OptimizeReport, error) {
	if o.operator.DB() == nil {
		return nil, NotConnectedError()
	}

	slog.Info("Starting tag store optimization")

	slog.Info("Step 1/2: Counting tags and orphans")
	res, err := o.count(ctx)
	if err != nil {
		return nil, err
	}
	if res.Orphans > 0 {
		gn.Warn(
			"Found <em>%d</em> orphans, review them with "+
				"<em>gntag orphans list</em>",
			res.Orphans,
		)
	}
	slog.Info("Step 1/2: Complete",
		"tags", res.Tags,
		"orphans", res.Orphans,
	)

	slog.Info("Step 2/2: Reclaiming space and updating statistics")
	if err = vacuumAnalyze(ctx, o.operator); err != nil {
		return nil, err
	}
	slog.Info("Step 2/2: Complete")

	slog.Info("Tag store optimization completed successfully")
	return res, nil
}

func (o *optimizer) count(ctx context.Context) (*lifecycle.OptimizeReport, error) {
	var res lifecycle.OptimizeReport
	var err error
	res.Tags, err = o.store.CountTags(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	res.Orphans, err = o.store.CountTags(ctx, store.Filter{Orphaned: true})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
