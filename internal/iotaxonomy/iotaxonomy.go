// Package iotaxonomy moves taxonomy documents in and out of the tag
// store. Decoding, validation and conflict detection are pure and live in
// pkg/taxonomy; this package reads and writes the store.
package iotaxonomy

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/gnames/gntag/pkg/config"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/gnames/gntag/pkg/taxonomy"
	"github.com/google/uuid"
)

// Options of an import.
type Options struct {
	// Mode is merge or replace, empty Mode means merge.
	Mode       curator.ImportMode
	DocumentID string
	DryRun     bool
	Progress   bool
}

// Porter imports and exports taxonomy documents.
type Porter struct {
	store store.Store
	cfg   *config.Config
}

// New creates a Porter over a tag store.
func New(s store.Store, cfg *config.Config) *Porter {
	return &Porter{store: s, cfg: cfg}
}

// Export builds a document from the live tags and rules.
func (p *Porter) Export(ctx context.Context) (*taxonomy.Document, error) {
	tags, err := p.store.Tags(ctx, store.Filter{})
	if err != nil {
		return nil, err
	}
	rules, err := p.store.Rules(ctx)
	if err != nil {
		return nil, err
	}
	return taxonomy.Build(tags, rules, time.Now()), nil
}

// Import validates the document and writes it to the store. Documents
// with validation errors, unknown modes or bad document references are
// refused before anything is written. A dry run stops after conflicts
// are found.
func (p *Porter) Import(
	ctx context.Context,
	data []byte,
	opts Options,
) (*curator.ImportReport, error) {
	res := curator.ImportReport{
		Validation: taxonomy.Validation{Errors: []string{}, Warnings: []string{}},
		Conflicts:  []taxonomy.Conflict{},
	}

	raw, err := taxonomy.Decode(data)
	if err != nil {
		res.Validation.Errors = append(res.Validation.Errors, err.Error())
		return &res, err
	}

	res.Validation = taxonomy.Validate(raw)
	if !res.Validation.OK() {
		return &res, ValidationError(res.Validation.Errors)
	}

	if err = checkOptions(&opts); err != nil {
		return &res, err
	}

	doc := taxonomy.FromRaw(raw)
	live, err := p.store.Tags(ctx, store.Filter{})
	if err != nil {
		return &res, err
	}
	res.Conflicts = taxonomy.Conflicts(doc, live)

	if opts.DryRun {
		return &res, nil
	}

	if opts.Mode == curator.ImportReplace {
		if err = p.store.DeleteAllTags(ctx); err != nil {
			return &res, err
		}
		slog.Info("Deleted all tags before import", "mode", opts.Mode)
		live = nil
	}

	res.Result, err = p.write(ctx, doc, newIndex(live), opts)
	return &res, err
}

func checkOptions(opts *Options) error {
	switch opts.Mode {
	case "":
		opts.Mode = curator.ImportMerge
	case curator.ImportMerge, curator.ImportReplace:
	default:
		return ModeError(string(opts.Mode))
	}

	if opts.DryRun {
		return nil
	}
	if opts.DocumentID == "" {
		return DocumentRefError(opts.DocumentID, nil)
	}
	if _, err := uuid.Parse(opts.DocumentID); err != nil {
		return DocumentRefError(opts.DocumentID, err)
	}
	return nil
}

// write stores parents, their children and rules. Failed items are
// counted and skipped, an unavailable store stops the import.
func (p *Porter) write(
	ctx context.Context,
	doc *taxonomy.Document,
	idx *index,
	opts Options,
) (*tag.Result, error) {
	res := tag.Result{
		Action:      tag.ActionImportTaxonomy,
		FailedItems: []string{},
		Problems:    []string{},
	}

	total := len(doc.Rules)
	for _, n := range doc.Parents {
		total += 1 + len(n.Children)
	}
	bar := newProgress(opts.Progress, total, "Importing taxonomy: ")
	defer bar.finish()

	fail := func(name string, err error) {
		res.Failed++
		res.FailedItems = append(res.FailedItems, name)
		res.Problems = append(res.Problems, err.Error())
		slog.Error("Cannot import item", "name", name, "error", err)
	}

	for _, node := range doc.Parents {
		if err := ctx.Err(); err != nil {
			return abort(&res, err)
		}

		parentID, err := p.putParent(ctx, node, idx, opts.DocumentID)
		if store.IsUnavailable(err) {
			return abort(&res, err)
		}
		if err != nil {
			fail(node.Name, err)
			for _, ch := range node.Children {
				fail(ch.Name, err)
			}
			bar.add(1 + len(node.Children))
			continue
		}
		res.Succeeded++
		bar.add(1)

		for _, ch := range node.Children {
			err = p.putChild(ctx, ch, parentID, idx, opts.DocumentID)
			if store.IsUnavailable(err) {
				return abort(&res, err)
			}
			if err != nil {
				fail(ch.Name, err)
			} else {
				res.Succeeded++
			}
			bar.add(1)
		}
	}

	for _, r := range doc.Rules {
		err := p.store.PutRule(ctx, p.rule(r))
		if store.IsUnavailable(err) {
			return abort(&res, err)
		}
		if err != nil {
			fail(r.SourceName, err)
		} else {
			res.Succeeded++
		}
		bar.add(1)
	}

	res.SetStatus()
	if total == 0 {
		res.Status = tag.Succeeded
	}
	if res.Succeeded > 0 {
		res.Documents = 1
	}

	slog.Info("Imported taxonomy",
		"mode", opts.Mode,
		"document", opts.DocumentID,
		"succeeded", res.Succeeded,
		"failed", res.Failed,
	)

	if res.Status != tag.Succeeded {
		return &res, ImportError(res.Failed, total)
	}
	return &res, nil
}

func abort(res *tag.Result, err error) (*tag.Result, error) {
	res.Status = tag.Failed
	res.Problems = append(res.Problems, err.Error())
	slog.Error("Import aborted", "error", err)
	return res, err
}

// putParent updates synonyms of a parent with the same name or inserts
// a new parent. Returns the id of the parent.
func (p *Porter) putParent(
	ctx context.Context,
	node taxonomy.Node,
	idx *index,
	docID string,
) (string, error) {
	if ex := idx.find(node.Name); ex != nil {
		syns, changed := union(ex.Synonyms, node.Synonyms)
		if !changed {
			return ex.ID, nil
		}
		err := p.store.UpdateTag(ctx, ex.ID, store.TagUpdate{Synonyms: &syns})
		if err != nil {
			return "", err
		}
		ex.Synonyms = syns
		return ex.ID, nil
	}

	t := newTag(node, tag.Parent, docID)
	if err := p.store.InsertTags(ctx, []tag.Tag{t}); err != nil {
		return "", err
	}
	idx.add(t)
	return t.ID, nil
}

// putChild updates a child with the same name that is under the parent
// or is an orphan, or inserts a new child.
func (p *Porter) putChild(
	ctx context.Context,
	node taxonomy.Node,
	parentID string,
	idx *index,
	docID string,
) error {
	if ex := idx.findChild(node.Name, parentID); ex != nil {
		var upd store.TagUpdate
		if ex.ParentID == nil || *ex.ParentID != parentID {
			upd.ParentID = &parentID
			upd.SetParent = true
		}
		syns, changed := union(ex.Synonyms, node.Synonyms)
		if changed {
			upd.Synonyms = &syns
		}
		if err := p.store.UpdateTag(ctx, ex.ID, upd); err != nil {
			return err
		}
		ex.ParentID = &parentID
		ex.Synonyms = syns
		idx.use(ex)
		return nil
	}

	t := newTag(node, tag.Child, docID)
	t.ParentID = &parentID
	if err := p.store.InsertTags(ctx, []tag.Tag{t}); err != nil {
		return err
	}
	idx.use(idx.add(t))
	return nil
}

func (p *Porter) rule(r taxonomy.Rule) tag.MergeRule {
	scope := r.Scope
	if scope == "" {
		scope = p.cfg.Curate.DefaultScope
	}
	return tag.MergeRule{
		SourceName:    r.SourceName,
		CanonicalName: r.CanonicalName,
		Scope:         scope,
		UsageCount:    r.UsageCount,
		CreatedBy:     p.cfg.Curate.Creator,
	}
}

// newTag creates an imported tag with a fresh id. Ids of the document are
// not reused, they may belong to rows of another database.
func newTag(node taxonomy.Node, tp tag.Type, docID string) tag.Tag {
	return tag.Tag{
		ID:         uuid.NewString(),
		Name:       node.Name,
		Type:       tp,
		Source:     tag.Import,
		DocumentID: docID,
		Synonyms:   node.Synonyms,
	}
}

// union adds new synonyms to existing ones keeping the order.
func union(old, add []string) ([]string, bool) {
	res := slices.Clone(old)
	var changed bool
	for _, s := range add {
		if !slices.Contains(res, s) {
			res = append(res, s)
			changed = true
		}
	}
	return res, changed
}
