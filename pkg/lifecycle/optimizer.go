package lifecycle

import (
	"context"
)

// Optimizer keeps the tag store in good shape after many curation
// decisions.
type Optimizer interface {
	// Optimize reports orphans waiting for review, reclaims space left
	// by deleted tags and refreshes query planner statistics.
	Optimize(ctx context.Context) (*OptimizeReport, error)
}

// OptimizeReport summarizes an optimization run.
type OptimizeReport struct {
	// Tags is the number of live tags.
	Tags int

	// Orphans is the number of children without an existing parent.
	Orphans int
}
