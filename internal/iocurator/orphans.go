package iocurator

import (
	"context"
	"log/slog"

	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
)

// AdoptOrphan attaches an orphan to an existing parent.
func (c *curatorio) AdoptOrphan(
	ctx context.Context,
	orphanID, parentID, rationale string,
) (*tag.Result, error) {
	res := newResult(tag.ActionAdoptOrphan)
	if orphanID == "" || parentID == "" {
		return refuse(res, ValidationError(res.Action,
			"orphan id and parent id are required"))
	}
	if err := c.preflight(ctx); err != nil {
		return refuse(res, err)
	}

	orphan, err := c.byID(ctx, orphanID)
	if err != nil {
		return refuse(res, err)
	}
	if orphan == nil {
		return refuse(res, TagNotFoundError(res.Action, orphanID))
	}
	isOrphan, err := c.isOrphan(ctx, *orphan)
	if err != nil {
		return refuse(res, err)
	}
	if !isOrphan {
		return refuse(res, ValidationError(res.Action,
			"tag '"+orphan.Name+"' is not an orphan"))
	}

	parent, err := c.byID(ctx, parentID)
	if err != nil {
		return refuse(res, err)
	}
	if parent == nil {
		return refuse(res, TagNotFoundError(res.Action, parentID))
	}
	if !parent.IsParent() {
		return refuse(res, ValidationError(res.Action,
			"tag '"+parent.Name+"' is not a parent"))
	}

	unlock := c.locks.lock(orphan.Name)
	err = c.store.UpdateTag(ctx, orphan.ID, store.TagUpdate{
		ParentID:  &parent.ID,
		SetParent: true,
	})
	unlock()
	if store.IsUnavailable(err) {
		return abort(res, []string{orphan.ID}, err)
	}
	if err != nil {
		fail(res, orphan.ID, err)
		return finish(res)
	}
	res.Succeeded++
	res.Documents = 1

	var previous string
	if orphan.ParentID != nil {
		previous = *orphan.ParentID
	}
	errAudit := c.record(ctx, res, tag.Event{
		Tags: involved(*orphan, *parent),
		Decision: map[string]any{
			"orphan_id":          orphan.ID,
			"parent_id":          parent.ID,
			"previous_parent_id": previous,
		},
		Rationale: rationale,
	})

	slog.Info("Adopted orphan", "orphan", orphan.Name, "parent", parent.Name)
	res, err = finish(res)
	if err != nil {
		return res, err
	}
	return res, errAudit
}

// isOrphan checks one child against parents that exist now.
func (c *curatorio) isOrphan(ctx context.Context, t tag.Tag) (bool, error) {
	n, err := c.store.CountTags(ctx, store.Filter{
		IDs:      []string{t.ID},
		Orphaned: true,
	})
	return n > 0, err
}

// DeleteOrphans deletes orphans one by one. Ids that are not orphans
// fail on their own.
func (c *curatorio) DeleteOrphans(
	ctx context.Context,
	orphanIDs []string,
	rationale string,
) (*tag.Result, error) {
	res := newResult(tag.ActionDeleteOrphan)
	orphanIDs = cleanList(orphanIDs)
	if len(orphanIDs) == 0 {
		return refuse(res, ValidationError(res.Action, "no orphan ids"))
	}
	if len(orphanIDs) > 1 {
		res.Action = tag.ActionBulkDeleteOrphans
	}
	if err := c.preflight(ctx); err != nil {
		return refuse(res, err)
	}

	found, err := c.store.Tags(ctx, store.Filter{
		IDs:      orphanIDs,
		Orphaned: true,
	})
	if err != nil {
		return refuse(res, err)
	}
	byID := make(map[string]tag.Tag, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	var deleted []tag.Tag
	for i, id := range orphanIDs {
		t, ok := byID[id]
		if !ok {
			fail(res, id, ValidationError(res.Action,
				"tag '"+id+"' is missing or is not an orphan"))
			continue
		}

		err = c.deleteOrphan(ctx, t)
		if store.IsUnavailable(err) {
			return abort(res, orphanIDs[i:], err)
		}
		if err != nil {
			fail(res, id, err)
			continue
		}
		res.Succeeded++
		deleted = append(deleted, t)
	}
	res.Documents = len(documents(deleted))

	var errAudit error
	if res.Succeeded > 0 {
		errAudit = c.record(ctx, res, tag.Event{
			Tags: involved(deleted...),
			Decision: map[string]any{
				"ids":    ids(deleted),
				"failed": res.FailedItems,
			},
			Rationale: rationale,
		})
	}

	slog.Info("Deleted orphans", "deleted", len(deleted), "failed", res.Failed)
	if res, err = finish(res); err != nil {
		return res, err
	}
	return res, errAudit
}

func (c *curatorio) deleteOrphan(ctx context.Context, t tag.Tag) error {
	unlock := c.locks.lock(t.Name)
	defer unlock()
	_, err := c.store.DeleteTags(ctx, store.Filter{IDs: []string{t.ID}})
	return err
}
