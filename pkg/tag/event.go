package tag

import (
	"slices"
	"time"
)

// Action is a kind of curation decision recorded in the audit log.
type Action string

const (
	ActionAdoptOrphan       Action = "adopt-orphan"
	ActionDeleteOrphan      Action = "delete-orphan"
	ActionBulkDeleteOrphans Action = "bulk-delete-orphans"
	ActionRejectDuplicate   Action = "reject-duplicate"
	ActionMergeParent       Action = "merge-parent"
	ActionMergeChild        Action = "merge-child"
	ActionDeleteTag         Action = "delete-tag"
	ActionDeleteAll         Action = "delete-all-instances"
	ActionExportTaxonomy    Action = "export-taxonomy"
	ActionImportTaxonomy    Action = "import-taxonomy"
	ActionDeleteRule        Action = "delete-rule"
)

var actions = []Action{
	ActionAdoptOrphan, ActionDeleteOrphan, ActionBulkDeleteOrphans,
	ActionRejectDuplicate, ActionMergeParent, ActionMergeChild,
	ActionDeleteTag, ActionDeleteAll, ActionExportTaxonomy,
	ActionImportTaxonomy, ActionDeleteRule,
}

// Valid checks that the action belongs to the closed set of actions.
func (a Action) Valid() bool {
	return slices.Contains(actions, a)
}

// InvolvedTag is a snapshot of a tag at the moment of a decision.
// It stays meaningful after the tag itself is gone.
type InvolvedTag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

// Event is an append-only record of a curation decision.
type Event struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Tags      []InvolvedTag  `json:"tags"`
	Action    Action         `json:"action"`
	Decision  map[string]any `json:"decision"`
	Rationale string         `json:"rationale,omitempty"`

	// DecisionMS is the time the curator needed to make the decision.
	DecisionMS int64 `json:"decision_ms"`
}
