// Package taxonomy describes the portable taxonomy document and the pure
// part of its import and export: decoding, validation, conflict detection
// and encoding.
//
// A document holds the parent/child hierarchy, learned merge rules and
// the list of orphans. Documents are written as JSON or YAML.
package taxonomy

import (
	"bytes"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntag/pkg/tag"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the version of documents created by Build.
const FormatVersion = "v0.1.0"

// Format of an encoded document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// NewFormat converts user input to a Format, JSON is the default.
func NewFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, true
	case "yaml", "yml":
		return YAML, true
	}
	return "", false
}

// Document is a portable snapshot of the taxonomy.
type Document struct {
	Version    string    `json:"version"     yaml:"version"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	Parents    []Node    `json:"parents"     yaml:"parents"`
	Rules      []Rule    `json:"rules"       yaml:"rules"`
	Orphans    []Orphan  `json:"orphans"     yaml:"orphans"`
}

// Node is a parent with its children, or a child.
type Node struct {
	ID       string   `json:"id,omitempty"       yaml:"id,omitempty"`
	Name     string   `json:"name"               yaml:"name"`
	Synonyms []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Rule is a merge rule without its bookkeeping fields.
type Rule struct {
	SourceName    string `json:"source_name"    yaml:"source_name"`
	CanonicalName string `json:"canonical_name" yaml:"canonical_name"`
	Scope         string `json:"scope"          yaml:"scope"`
	UsageCount    int    `json:"usage_count"    yaml:"usage_count"`
}

// Orphan is a child without an existing parent. Orphans are exported for
// review and are not imported.
type Orphan struct {
	ID       string `json:"id"                  yaml:"id"`
	Name     string `json:"name"                yaml:"name"`
	ParentID string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
}

// Build creates a document from the live tag set and rules. Parents keep
// the order of the input, children are placed under their parents.
// Children that are orphans or have no parent go to the Orphans list.
func Build(tags []tag.Tag, rules []tag.MergeRule, now time.Time) *Document {
	res := Document{
		Version:    FormatVersion,
		ExportedAt: now.UTC(),
		Parents:    []Node{},
		Rules:      []Rule{},
		Orphans:    []Orphan{},
	}

	idx := make(map[string]int)
	for _, t := range tags {
		if !t.IsParent() {
			continue
		}
		idx[t.ID] = len(res.Parents)
		res.Parents = append(res.Parents, Node{
			ID:       t.ID,
			Name:     t.Name,
			Synonyms: t.Synonyms,
		})
	}

	for _, t := range tags {
		if !t.IsChild() {
			continue
		}
		if t.ParentID != nil {
			if i, ok := idx[*t.ParentID]; ok {
				res.Parents[i].Children = append(res.Parents[i].Children, Node{
					ID:       t.ID,
					Name:     t.Name,
					Synonyms: t.Synonyms,
				})
				continue
			}
		}
		o := Orphan{ID: t.ID, Name: t.Name}
		if t.ParentID != nil {
			o.ParentID = *t.ParentID
		}
		res.Orphans = append(res.Orphans, o)
	}

	for _, r := range rules {
		res.Rules = append(res.Rules, Rule{
			SourceName:    r.SourceName,
			CanonicalName: r.CanonicalName,
			Scope:         r.Scope,
			UsageCount:    r.UsageCount,
		})
	}
	return &res
}

// Encode writes the document in the given format.
func Encode(doc *Document, f Format) ([]byte, error) {
	var res []byte
	var err error
	switch f {
	case YAML:
		res, err = yaml.Marshal(doc)
	default:
		res, err = gnfmt.GNjson{Pretty: true}.Encode(doc)
	}
	if err != nil {
		return nil, EncodeError(string(f), err)
	}
	return res, nil
}

// Decode reads a JSON or YAML document into a generic map that can be
// validated before it is trusted.
func Decode(data []byte) (map[string]any, error) {
	var res map[string]any
	var err error

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, DecodeError(ErrEmptyDocument)
	}

	if trimmed[0] == '{' {
		err = gnfmt.GNjson{}.Decode(trimmed, &res)
	} else {
		err = yaml.Unmarshal(trimmed, &res)
	}
	if err != nil {
		return nil, DecodeError(err)
	}
	if res == nil {
		return nil, DecodeError(ErrEmptyDocument)
	}
	return res, nil
}
