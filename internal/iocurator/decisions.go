package iocurator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
)

// RejectDuplicate records that tags are not duplicates of each other.
// Tags stay as they are.
func (c *curatorio) RejectDuplicate(
	ctx context.Context,
	tagIDs []string,
	reason string,
) (*tag.Result, error) {
	res := newResult(tag.ActionRejectDuplicate)
	tagIDs = cleanList(tagIDs)
	if len(tagIDs) < 2 {
		return refuse(res, ValidationError(res.Action,
			"at least two tag ids are required"))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return refuse(res, ValidationError(res.Action, "reason is required"))
	}
	if err := c.preflight(ctx); err != nil {
		return refuse(res, err)
	}

	tags, err := c.store.Tags(ctx, store.Filter{IDs: tagIDs})
	if err != nil {
		return refuse(res, err)
	}
	if len(tags) != len(tagIDs) {
		for _, id := range tagIDs {
			if !containsID(tags, id) {
				return refuse(res, TagNotFoundError(res.Action, id))
			}
		}
	}

	res.Succeeded = len(tags)
	res.Documents = len(documents(tags))
	names := make([]string, len(tags))
	for i := range tags {
		names[i] = tags[i].Name
	}
	if err = c.record(ctx, res, tag.Event{
		Tags: involved(tags...),
		Decision: map[string]any{
			"ids":   tagIDs,
			"names": names,
		},
		Rationale: reason,
	}); err != nil {
		res.Status = tag.Failed
		return res, err
	}

	slog.Info("Rejected duplicates", "names", names)
	return finish(res)
}

// DeleteRule removes a learned merge rule.
func (c *curatorio) DeleteRule(
	ctx context.Context,
	id string,
) (*tag.Result, error) {
	res := newResult(tag.ActionDeleteRule)
	id = strings.TrimSpace(id)
	if id == "" {
		return refuse(res, ValidationError(res.Action, "rule id is empty"))
	}
	if err := c.preflight(ctx); err != nil {
		return refuse(res, err)
	}

	rules, err := c.store.Rules(ctx)
	if err != nil {
		return refuse(res, err)
	}
	var rule *tag.MergeRule
	for i := range rules {
		if rules[i].ID == id {
			rule = &rules[i]
			break
		}
	}
	if rule == nil {
		return refuse(res, RuleNotFoundError(id))
	}

	ok, err := c.store.DeleteRule(ctx, id)
	if store.IsUnavailable(err) {
		return abort(res, []string{id}, err)
	}
	if err != nil {
		fail(res, id, err)
		return finish(res)
	}
	if !ok {
		return refuse(res, RuleNotFoundError(id))
	}
	res.Succeeded++

	errAudit := c.record(ctx, res, tag.Event{
		Decision: map[string]any{
			"rule_id":        rule.ID,
			"source_name":    rule.SourceName,
			"canonical_name": rule.CanonicalName,
			"scope":          rule.Scope,
			"usage_count":    rule.UsageCount,
		},
	})

	slog.Info("Deleted merge rule",
		"source", rule.SourceName,
		"canonical", rule.CanonicalName,
		"scope", rule.Scope,
	)
	res, err = finish(res)
	if err != nil {
		return res, err
	}
	return res, errAudit
}

func containsID(tags []tag.Tag, id string) bool {
	for _, t := range tags {
		if t.ID == id {
			return true
		}
	}
	return false
}
