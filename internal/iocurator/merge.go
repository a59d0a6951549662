package iocurator

import (
	"context"
	"log/slog"

	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
)

// absorbed is the outcome of merging one candidate name.
type absorbed struct {
	rows       []tag.Tag
	reassigned int
	rule       tag.MergeRule
}

// Merge absorbs candidate names into the master tag. Every candidate is
// processed on its own: children of its parent rows move to the master,
// its rows are deleted and the rule candidate -> master is learned.
// Failed candidates do not stop the others, an unavailable store stops
// the whole merge.
func (c *curatorio) Merge(
	ctx context.Context,
	inp curator.MergeInput,
) (*tag.Result, error) {
	res := newResult(tag.ActionMergeParent)

	if inp.MasterID == "" {
		return refuse(res, ValidationError(res.Action, "master id is empty"))
	}
	names := cleanList(inp.CandidateNames)
	if len(names) == 0 {
		return refuse(res, ValidationError(res.Action, "no candidate names"))
	}

	if err := c.preflight(ctx); err != nil {
		return refuse(res, err)
	}

	master, err := c.byID(ctx, inp.MasterID)
	if err != nil {
		return refuse(res, err)
	}
	if master == nil {
		return refuse(res, TagNotFoundError(res.Action, inp.MasterID))
	}
	if master.IsChild() {
		res.Action = tag.ActionMergeChild
	}

	var candidates []string
	for _, n := range names {
		if tag.SameName(n, master.Name) {
			slog.Info("Skipping candidate equal to master", "name", n)
			continue
		}
		candidates = append(candidates, n)
	}
	if len(candidates) == 0 {
		return refuse(res, ValidationError(res.Action,
			"all candidate names are equal to the master name"))
	}

	scope := inp.Scope
	if scope == "" {
		scope = c.cfg.Curate.DefaultScope
	}
	by := inp.CreatedBy
	if by == "" {
		by = c.cfg.Curate.Creator
	}

	var rows []tag.Tag
	var merged []string
	var reassigned int
	for i, name := range candidates {
		out, err := c.absorb(ctx, *master, name, scope, by)
		if store.IsUnavailable(err) {
			return abort(res, candidates[i:], err)
		}
		if err != nil {
			fail(res, name, err)
			continue
		}
		res.Succeeded++
		rows = append(rows, out.rows...)
		merged = append(merged, name)
		reassigned += out.reassigned
	}
	res.Documents = len(documents(rows))

	var errAudit error
	if res.Succeeded > 0 {
		errAudit = c.record(ctx, res, tag.Event{
			Tags: involved(append([]tag.Tag{*master}, rows...)...),
			Decision: map[string]any{
				"master_id":   master.ID,
				"master_name": master.Name,
				"candidates":  merged,
				"failed":      res.FailedItems,
				"scope":       scope,
				"absorbed":    len(rows),
				"reassigned":  reassigned,
			},
			Rationale:  inp.Rationale,
			DecisionMS: inp.DecisionMS,
		})
	}

	slog.Info("Merged tags",
		"master", master.Name,
		"succeeded", res.Succeeded,
		"failed", res.Failed,
		"documents", res.Documents,
	)

	if res, err = finish(res); err != nil {
		return res, err
	}
	return res, errAudit
}

// absorb merges all rows named name into the master. Every step can be
// repeated safely, so a retried merge finishes the work of a failed one.
func (c *curatorio) absorb(
	ctx context.Context,
	master tag.Tag,
	name, scope, by string,
) (absorbed, error) {
	var res absorbed
	unlock := c.locks.lock(name, master.Name)
	defer unlock()

	rows, err := c.store.Tags(ctx, store.Filter{Names: []string{name}})
	if err != nil {
		return res, err
	}

	var parentIDs []string
	for _, t := range rows {
		if t.IsParent() && t.ID != master.ID {
			parentIDs = append(parentIDs, t.ID)
		}
	}

	if len(parentIDs) > 0 {
		// only parents can have children
		var target *string
		if master.IsParent() {
			target = &master.ID
		}
		res.reassigned, err = c.store.SetParent(ctx,
			store.Filter{ParentIDs: parentIDs}, target,
		)
		if err != nil {
			return res, err
		}
	}

	if len(rows) > 0 {
		if _, err = c.store.DeleteTags(ctx,
			store.Filter{Names: []string{name}},
		); err != nil {
			return res, err
		}
	}

	res.rule, err = c.store.UpsertRule(ctx, tag.MergeRule{
		SourceName:    name,
		CanonicalName: master.Name,
		Scope:         scope,
		CreatedBy:     by,
	})
	if err != nil {
		return res, err
	}

	res.rows = rows
	slog.Debug("Absorbed candidate",
		"name", name,
		"rows", len(rows),
		"reassigned", res.reassigned,
		"rule_usage", res.rule.UsageCount,
	)
	return res, nil
}

// byID returns a tag by id, or nil if there is no such tag.
func (c *curatorio) byID(ctx context.Context, id string) (*tag.Tag, error) {
	tags, err := c.store.Tags(ctx, store.Filter{IDs: []string{id}})
	if err != nil || len(tags) == 0 {
		return nil, err
	}
	return &tags[0], nil
}
