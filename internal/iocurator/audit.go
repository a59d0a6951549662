package iocurator

import (
	"context"
	"log/slog"

	"github.com/gnames/gntag/pkg/tag"
)

// record appends the event of a decision to the audit log. The action
// comes from the result, the id of the event goes back to it.
func (c *curatorio) record(
	ctx context.Context,
	res *tag.Result,
	e tag.Event,
) error {
	e.Action = res.Action
	if e.Tags == nil {
		e.Tags = []tag.InvolvedTag{}
	}

	id, err := c.store.AppendEvent(ctx, e)
	if err != nil {
		res.Problems = append(res.Problems, err.Error())
		slog.Error("Cannot record curation event",
			"action", e.Action,
			"error", err,
		)
		return AuditError(e.Action, err)
	}

	res.EventID = id
	slog.Info("Recorded curation event",
		"action", e.Action,
		"event", id,
		"tags", len(e.Tags),
	)
	return nil
}
