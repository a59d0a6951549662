package iocurator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
)

// Delete removes the tags, or every tag sharing a name with them when
// the scope is tag.ScopeAll. Children of deleted parents become orphans
// before their parents are gone.
func (c *curatorio) Delete(
	ctx context.Context,
	inp curator.DeleteInput,
) (*tag.Result, error) {
	scope := inp.Scope
	if scope == "" {
		scope = tag.ScopeSingle
	}
	res := newResult(tag.ActionDeleteTag)
	if scope == tag.ScopeAll {
		res.Action = tag.ActionDeleteAll
	}

	tagIDs := cleanList(inp.TagIDs)
	if len(tagIDs) == 0 {
		return refuse(res, ValidationError(res.Action, "no tag ids"))
	}
	if scope != tag.ScopeSingle && scope != tag.ScopeAll {
		return refuse(res, ValidationError(res.Action,
			fmt.Sprintf("unknown scope '%s'", scope)))
	}
	if err := checkReasons(res.Action, inp.Reasons); err != nil {
		return refuse(res, err)
	}

	if err := c.preflight(ctx); err != nil {
		return refuse(res, err)
	}

	targets, err := c.store.Tags(ctx, store.Filter{IDs: tagIDs})
	if err != nil {
		return refuse(res, err)
	}
	found := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		found[t.ID] = struct{}{}
	}
	for _, id := range tagIDs {
		if _, ok := found[id]; !ok {
			fail(res, id, TagNotFoundError(res.Action, id))
		}
	}

	var deleted []tag.Tag
	var orphaned int
	if scope == tag.ScopeAll {
		deleted, orphaned, err = c.deleteNames(ctx, res, targets)
	} else {
		deleted, orphaned, err = c.deleteRows(ctx, res, targets)
	}
	if err != nil {
		return res, err
	}
	res.Documents = len(documents(deleted))

	var errAudit error
	if res.Succeeded > 0 {
		reasons := make([]string, len(inp.Reasons))
		for i := range inp.Reasons {
			reasons[i] = string(inp.Reasons[i])
		}
		errAudit = c.record(ctx, res, tag.Event{
			Tags: involved(deleted...),
			Decision: map[string]any{
				"scope":    string(scope),
				"reasons":  reasons,
				"ids":      tagIDs,
				"failed":   res.FailedItems,
				"deleted":  len(deleted),
				"orphaned": orphaned,
			},
			Rationale:  inp.Note,
			DecisionMS: inp.DecisionMS,
		})
	}

	slog.Info("Deleted tags",
		"scope", scope,
		"deleted", len(deleted),
		"orphaned", orphaned,
		"failed", res.Failed,
	)

	if res, err = finish(res); err != nil {
		return res, err
	}
	return res, errAudit
}

func checkReasons(action tag.Action, reasons []tag.Reason) error {
	if len(reasons) == 0 {
		return ValidationError(action, "at least one reason is required")
	}
	for _, r := range reasons {
		if !r.Valid() {
			return ValidationError(action,
				fmt.Sprintf("unknown reason '%s'", r))
		}
	}
	return nil
}

// deleteRows deletes exactly the target rows one by one.
func (c *curatorio) deleteRows(
	ctx context.Context,
	res *tag.Result,
	targets []tag.Tag,
) ([]tag.Tag, int, error) {
	var deleted []tag.Tag
	var orphaned int
	for i, t := range targets {
		n, err := c.deleteRow(ctx, t)
		if store.IsUnavailable(err) {
			_, err = abort(res, ids(targets[i:]), err)
			return deleted, orphaned, err
		}
		if err != nil {
			fail(res, t.ID, err)
			continue
		}
		res.Succeeded++
		orphaned += n
		deleted = append(deleted, t)
	}
	return deleted, orphaned, nil
}

func (c *curatorio) deleteRow(ctx context.Context, t tag.Tag) (int, error) {
	unlock := c.locks.lock(t.Name)
	defer unlock()

	var orphaned int
	var err error
	if t.IsParent() {
		orphaned, err = c.store.SetParent(ctx,
			store.Filter{ParentIDs: []string{t.ID}}, nil,
		)
		if err != nil {
			return 0, err
		}
	}
	_, err = c.store.DeleteTags(ctx, store.Filter{IDs: []string{t.ID}})
	return orphaned, err
}

// deleteNames deletes all rows that have the names of targets. Every
// name is an item of the result.
func (c *curatorio) deleteNames(
	ctx context.Context,
	res *tag.Result,
	targets []tag.Tag,
) ([]tag.Tag, int, error) {
	var names []string
	for _, t := range targets {
		names = append(names, t.Name)
	}
	names = cleanList(names)

	var deleted []tag.Tag
	var orphaned int
	for i, name := range names {
		rows, n, err := c.deleteName(ctx, name)
		if store.IsUnavailable(err) {
			_, err = abort(res, names[i:], err)
			return deleted, orphaned, err
		}
		if err != nil {
			fail(res, name, err)
			continue
		}
		res.Succeeded++
		orphaned += n
		deleted = append(deleted, rows...)
	}
	return deleted, orphaned, nil
}

func (c *curatorio) deleteName(
	ctx context.Context,
	name string,
) ([]tag.Tag, int, error) {
	unlock := c.locks.lock(name)
	defer unlock()

	rows, err := c.store.Tags(ctx, store.Filter{Names: []string{name}})
	if err != nil {
		return nil, 0, err
	}

	var parentIDs []string
	for _, t := range rows {
		if t.IsParent() {
			parentIDs = append(parentIDs, t.ID)
		}
	}

	var orphaned int
	if len(parentIDs) > 0 {
		orphaned, err = c.store.SetParent(ctx,
			store.Filter{ParentIDs: parentIDs}, nil,
		)
		if err != nil {
			return nil, 0, err
		}
	}

	_, err = c.store.DeleteTags(ctx, store.Filter{Names: []string{name}})
	if err != nil {
		return nil, 0, err
	}
	return rows, orphaned, nil
}
