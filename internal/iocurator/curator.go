// Package iocurator implements curator.Curator over a tag store.
//
// Derived views (duplicates, clusters, orphans) are computed from a fresh
// snapshot of the store on every call. Mutations are sequences of
// idempotent store calls. Mutations of tags with the same name are
// serialized by a lock table keyed by the name.
package iocurator

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/gntag/internal/iotaxonomy"
	"github.com/gnames/gntag/pkg/clusters"
	"github.com/gnames/gntag/pkg/config"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/duplicates"
	"github.com/gnames/gntag/pkg/orphans"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/gnames/gntag/pkg/taxonomy"
)

type curatorio struct {
	cfg      *config.Config
	store    store.Store
	locks    *nameLocks
	detector *duplicates.Detector
	builder  *clusters.Builder
	porter   *iotaxonomy.Porter
}

// New creates a Curator. A nil classifier means the default chain of
// cluster reason rules.
func New(
	cfg *config.Config,
	s store.Store,
	classifier clusters.Classifier,
) curator.Curator {
	res := curatorio{
		cfg:      cfg,
		store:    s,
		locks:    newNameLocks(),
		detector: duplicates.New(cfg.Detect, cfg.JobsNumber),
		builder:  clusters.New(classifier),
		porter:   iotaxonomy.New(s, cfg),
	}
	return &res
}

// ListDuplicates detects duplicates in the current tag set.
func (c *curatorio) ListDuplicates(
	ctx context.Context,
) (*duplicates.Report, error) {
	tags, err := c.store.Tags(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	return c.detector.Detect(ctx, tags)
}

// BuildClusters groups similar parent names of the current tag set.
func (c *curatorio) BuildClusters(
	ctx context.Context,
) ([]clusters.Cluster, error) {
	tags, err := c.store.Tags(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	rep, err := c.detector.Detect(ctx, tags)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(rep.ParentPairs, clusters.Stats(tags)), nil
}

// ListOrphans returns orphans of the current tag set.
func (c *curatorio) ListOrphans(ctx context.Context) ([]tag.Tag, error) {
	tags, err := c.store.Tags(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	return orphans.Find(tags), nil
}

// Rules returns learned merge rules.
func (c *curatorio) Rules(ctx context.Context) ([]tag.MergeRule, error) {
	return c.store.Rules(ctx)
}

// Events returns the latest curation events.
func (c *curatorio) Events(ctx context.Context, limit int) ([]tag.Event, error) {
	return c.store.Events(ctx, limit)
}

// ExportTaxonomy builds a document of the live taxonomy and records
// the export.
func (c *curatorio) ExportTaxonomy(
	ctx context.Context,
) (*taxonomy.Document, error) {
	doc, err := c.porter.Export(ctx)
	if err != nil {
		return nil, err
	}

	var children int
	for _, p := range doc.Parents {
		children += len(p.Children)
	}
	res := newResult(tag.ActionExportTaxonomy)
	err = c.record(ctx, res, tag.Event{
		Decision: map[string]any{
			"parents":  len(doc.Parents),
			"children": children,
			"rules":    len(doc.Rules),
			"orphans":  len(doc.Orphans),
		},
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ImportTaxonomy imports a document and records the import when at
// least one item was written.
func (c *curatorio) ImportTaxonomy(
	ctx context.Context,
	inp curator.ImportInput,
) (*curator.ImportReport, error) {
	rep, err := c.porter.Import(ctx, inp.Data, iotaxonomy.Options{
		Mode:       inp.Mode,
		DocumentID: inp.DocumentID,
		DryRun:     inp.DryRun,
		Progress:   inp.WithProgress,
	})
	if rep == nil || rep.Result == nil || rep.Result.Succeeded == 0 {
		return rep, err
	}

	mode := inp.Mode
	if mode == "" {
		mode = curator.ImportMerge
	}
	errAudit := c.record(ctx, rep.Result, tag.Event{
		Decision: map[string]any{
			"mode":        string(mode),
			"document_id": inp.DocumentID,
			"parents":     rep.Validation.Parents,
			"children":    rep.Validation.Children,
			"rules":       rep.Validation.Rules,
			"conflicts":   len(rep.Conflicts),
			"failed":      rep.Result.Failed,
		},
	})
	if err == nil {
		err = errAudit
	}
	return rep, err
}

// newResult creates an empty result of an action.
func newResult(action tag.Action) *tag.Result {
	return &tag.Result{
		Action:      action,
		FailedItems: []string{},
		Problems:    []string{},
	}
}

// refuse ends an operation that changed nothing.
func refuse(res *tag.Result, err error) (*tag.Result, error) {
	res.Status = tag.Failed
	res.Problems = append(res.Problems, err.Error())
	slog.Warn("Curation request refused", "action", res.Action, "error", err)
	return res, err
}

// fail counts a failed item and logs the cause.
func fail(res *tag.Result, item string, err error) {
	res.Failed++
	res.FailedItems = append(res.FailedItems, item)
	res.Problems = append(res.Problems, err.Error())
	slog.Error("Curation item failed",
		"action", res.Action,
		"item", item,
		"error", err,
	)
}

// abort ends an operation when the store cannot be reached. Items that
// were not processed yet are counted as failed, nothing is recorded.
func abort(res *tag.Result, rest []string, err error) (*tag.Result, error) {
	for _, item := range rest {
		res.Failed++
		res.FailedItems = append(res.FailedItems, item)
	}
	res.Status = tag.Failed
	res.Problems = append(res.Problems, err.Error())
	slog.Error("Curation aborted, store is unavailable",
		"action", res.Action,
		"succeeded", res.Succeeded,
		"failed", res.Failed,
		"error", err,
	)
	return res, err
}

// finish sets the status and returns the error matching it.
func finish(res *tag.Result) (*tag.Result, error) {
	res.SetStatus()
	switch res.Status {
	case tag.Partial:
		return res, PartialError(res)
	case tag.Failed:
		return res, AllItemsFailedError(res)
	}
	return res, nil
}

// preflight makes sure the store answers before a mutation starts.
func (c *curatorio) preflight(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// cleanList trims items, drops empty ones and repeated ones keeping the
// first occurrence.
func cleanList(items []string) []string {
	res := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(res, s) {
			continue
		}
		res = append(res, s)
	}
	return res
}

// documents lists distinct documents of tags.
func documents(tags []tag.Tag) []string {
	var res []string
	for _, t := range tags {
		if t.DocumentID != "" && !slices.Contains(res, t.DocumentID) {
			res = append(res, t.DocumentID)
		}
	}
	return res
}

func involved(tags ...tag.Tag) []tag.InvolvedTag {
	res := make([]tag.InvolvedTag, 0, len(tags))
	for _, t := range tags {
		res = append(res, t.Involved())
	}
	return res
}

func ids(tags []tag.Tag) []string {
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		res = append(res, t.ID)
	}
	return res
}
