// Package tag provides the domain types of the tag taxonomy: tags, learned
// merge rules, curation events and the results of curation operations.
package tag

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Type is the level of a tag in the two-level hierarchy.
type Type string

const (
	Parent Type = "parent"
	Child  Type = "child"
)

// Source tells how a tag came into existence.
type Source string

const (
	Auto   Source = "auto"
	Manual Source = "manual"
	Import Source = "import"
)

// Tag is a label attached to a document. Children point to a parent tag
// through ParentID. A child whose ParentID is nil or does not resolve to
// an existing parent is an orphan.
type Tag struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Confidence *float64  `json:"confidence,omitempty"`
	Source     Source    `json:"source"`
	DocumentID string    `json:"document_id"`
	ParentID   *string   `json:"parent_id"`
	Synonyms   []string  `json:"synonyms,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsParent returns true for parent-level tags.
func (t Tag) IsParent() bool {
	return t.Type == Parent
}

// IsChild returns true for child-level tags.
func (t Tag) IsChild() bool {
	return t.Type == Child
}

// Involved converts a tag to the snapshot recorded in curation events.
func (t Tag) Involved() InvolvedTag {
	res := InvolvedTag{ID: t.ID, Name: t.Name, Type: t.Type}
	if t.ParentID != nil {
		res.ParentID = *t.ParentID
	}
	return res
}

// MergeRule maps a source name to its canonical name within a scope.
// There is at most one rule for every (SourceName, Scope) pair.
type MergeRule struct {
	ID            string    `json:"id"             yaml:"id"`
	SourceName    string    `json:"source_name"    yaml:"source_name"`
	CanonicalName string    `json:"canonical_name" yaml:"canonical_name"`
	Scope         string    `json:"scope"          yaml:"scope"`
	UsageCount    int       `json:"usage_count"    yaml:"usage_count"`
	CreatedBy     string    `json:"created_by"     yaml:"created_by"`
	CreatedAt     time.Time `json:"created_at"     yaml:"created_at"`
}

// SameName compares tag names the way curation does: Unicode NFC form,
// case-insensitive, surrounding whitespace ignored.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

// NameKey returns the key under which SameName considers names equal.
func NameKey(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}
