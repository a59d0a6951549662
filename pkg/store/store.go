// Package store declares the persistence contracts of the tag engine.
//
// Implementations live in internal/iostore. Filtered updates and deletes
// are primitives of the store, so bulk reparenting or bulk deletion by
// name is one statement, not a loop over fetched ids.
package store

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/tag"
)

// ErrUnavailable marks errors caused by a store that cannot be reached.
// Curation operations abort as soon as they see it.
var ErrUnavailable = errors.New("store is unavailable")

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// IsUnavailable checks if an error returned by a store means the store
// cannot be reached.
func IsUnavailable(err error) bool {
	return isErr(err, ErrUnavailable)
}

// IsNotFound checks if an error returned by a store means a missing row.
func IsNotFound(err error) bool {
	return isErr(err, ErrNotFound)
}

func isErr(err, target error) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && errors.Is(gnErr.Err, target) {
		return true
	}
	return errors.Is(err, target)
}

// Filter selects tag rows. Empty fields do not restrict the selection.
// Non-empty fields are combined with AND.
type Filter struct {
	IDs       []string
	Names     []string
	Type      tag.Type
	ParentIDs []string

	// Orphaned selects children without a parent or with a reference
	// to a missing parent.
	Orphaned bool
}

// IsEmpty returns true when the filter would select every row.
func (f Filter) IsEmpty() bool {
	return len(f.IDs) == 0 && len(f.Names) == 0 && f.Type == "" &&
		len(f.ParentIDs) == 0 && !f.Orphaned
}

// TagUpdate lists fields to change in one tag row. Nil fields are kept.
type TagUpdate struct {
	Name     *string
	Type     *tag.Type
	Synonyms *[]string

	// ParentID changes parent reference when SetParent is true,
	// nil ParentID clears it.
	ParentID  *string
	SetParent bool
}

// TagStore is the relation of tags.
type TagStore interface {
	// Tags returns rows selected by the filter ordered by creation time.
	Tags(ctx context.Context, f Filter) ([]tag.Tag, error)

	// InsertTags adds new rows. Missing ids and timestamps are generated.
	InsertTags(ctx context.Context, tags []tag.Tag) error

	// UpdateTag changes one row by its id. Returns ErrNotFound if there
	// is no such row.
	UpdateTag(ctx context.Context, id string, upd TagUpdate) error

	// SetParent sets parent reference of all rows selected by the filter.
	// Nil parentID orphans the rows. Returns the number of changed rows.
	SetParent(ctx context.Context, f Filter, parentID *string) (int, error)

	// DeleteTags removes all rows selected by the filter and returns their
	// number. An empty filter is refused.
	DeleteTags(ctx context.Context, f Filter) (int, error)

	// CountTags returns the number of rows selected by the filter.
	CountTags(ctx context.Context, f Filter) (int, error)

	// DeleteAllTags empties the relation.
	DeleteAllTags(ctx context.Context) error
}

// RuleStore is the relation of learned merge rules.
type RuleStore interface {
	// UpsertRule creates the rule for (source, scope) with usage count 1,
	// or points the existing rule to the canonical name and increments its
	// usage count. It is one atomic statement.
	UpsertRule(ctx context.Context, r tag.MergeRule) (tag.MergeRule, error)

	// PutRule writes the rule as is, overwriting the usage count.
	PutRule(ctx context.Context, r tag.MergeRule) error

	// Rules returns all rules ordered by scope and source name.
	Rules(ctx context.Context) ([]tag.MergeRule, error)

	// DeleteRule removes a rule by id. Returns false if there was no such rule.
	DeleteRule(ctx context.Context, id string) (bool, error)
}

// AuditStore is the append-only relation of curation events.
type AuditStore interface {
	// AppendEvent stores an event and returns its id.
	AppendEvent(ctx context.Context, e tag.Event) (string, error)

	// Events returns the latest events, newest first.
	// A non-positive limit returns all events.
	Events(ctx context.Context, limit int) ([]tag.Event, error)
}

// Store combines all relations used by the curation engine.
type Store interface {
	TagStore
	RuleStore
	AuditStore

	// Ping checks that the store can be reached.
	Ping(ctx context.Context) error
}
