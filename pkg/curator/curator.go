// Package curator declares the operations a user interface calls to
// review and clean the tag taxonomy.
//
// Read operations compute derived views from a fresh snapshot of the tag
// set. Mutating operations return a tag.Result that tells apart full
// success, partial success and failure; an error is returned together
// with the result whenever its status is not tag.Succeeded.
package curator

import (
	"context"

	"github.com/gnames/gntag/pkg/clusters"
	"github.com/gnames/gntag/pkg/duplicates"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/gnames/gntag/pkg/taxonomy"
)

// MergeInput describes a merge of candidate names into a master tag.
type MergeInput struct {
	// MasterID is the id of an existing tag that survives the merge.
	MasterID string

	// CandidateNames are absorbed into the master. Names equal to the
	// master name (case-insensitively) are skipped.
	CandidateNames []string

	// Scope of learned merge rules. Empty scope means the configured
	// default scope.
	Scope string

	Rationale  string
	DecisionMS int64

	// CreatedBy is the author of learned rules. Empty value means the
	// configured creator.
	CreatedBy string
}

// DeleteInput describes a deletion of tags.
type DeleteInput struct {
	TagIDs []string
	Scope  tag.DeleteScope

	// Reasons are mandatory and must come from tag.Reasons.
	Reasons []tag.Reason

	Note       string
	DecisionMS int64
}

// ImportMode selects how imported tags meet the live taxonomy.
type ImportMode string

const (
	// ImportMerge updates tags with the same names in place and adds
	// the rest.
	ImportMerge ImportMode = "merge"

	// ImportReplace deletes all live tags before the import.
	ImportReplace ImportMode = "replace"
)

// ImportInput describes an import of a taxonomy document.
type ImportInput struct {
	// Data is the JSON or YAML document.
	Data []byte
	Mode ImportMode

	// DocumentID is the owning document of every imported tag.
	// It must be a UUID.
	DocumentID string

	// DryRun validates the document and detects conflicts without
	// writing anything.
	DryRun bool

	// WithProgress shows a progress bar on STDERR.
	WithProgress bool
}

// ImportReport describes an import or a dry run.
type ImportReport struct {
	Validation taxonomy.Validation
	Conflicts  []taxonomy.Conflict

	// Result is nil for dry runs and refused imports.
	Result *tag.Result
}

// Curator is the caller-facing contract of the tag engine.
type Curator interface {
	// ListDuplicates detects exact and near-duplicate tags.
	ListDuplicates(ctx context.Context) (*duplicates.Report, error)

	// ListOrphans returns children that point to missing parents.
	ListOrphans(ctx context.Context) ([]tag.Tag, error)

	// BuildClusters groups similar parent names for batch review.
	BuildClusters(ctx context.Context) ([]clusters.Cluster, error)

	// Merge absorbs candidate names into the master tag and learns
	// merge rules from the decision.
	Merge(ctx context.Context, inp MergeInput) (*tag.Result, error)

	// Delete removes tags either by id or by all rows sharing their names.
	Delete(ctx context.Context, inp DeleteInput) (*tag.Result, error)

	// AdoptOrphan attaches an orphan to an existing parent.
	AdoptOrphan(
		ctx context.Context,
		orphanID, parentID, rationale string,
	) (*tag.Result, error)

	// DeleteOrphans removes orphans one by one.
	DeleteOrphans(
		ctx context.Context,
		ids []string,
		rationale string,
	) (*tag.Result, error)

	// RejectDuplicate records that the tags are not duplicates.
	// Nothing but the audit log changes.
	RejectDuplicate(
		ctx context.Context,
		ids []string,
		reason string,
	) (*tag.Result, error)

	// ExportTaxonomy creates a document from the live taxonomy.
	ExportTaxonomy(ctx context.Context) (*taxonomy.Document, error)

	// ImportTaxonomy validates and imports a document.
	ImportTaxonomy(ctx context.Context, inp ImportInput) (*ImportReport, error)

	// Rules returns learned merge rules.
	Rules(ctx context.Context) ([]tag.MergeRule, error)

	// DeleteRule removes a learned merge rule.
	DeleteRule(ctx context.Context, id string) (*tag.Result, error)

	// Events returns the latest curation events, newest first.
	Events(ctx context.Context, limit int) ([]tag.Event, error)
}
