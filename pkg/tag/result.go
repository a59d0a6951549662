package tag

import (
	"slices"
	"strings"
)

// Reason explains why a tag is deleted.
type Reason string

const (
	ReasonGenericTerm       Reason = "generic-term"
	ReasonOutOfDomain       Reason = "out-of-domain"
	ReasonProperNoun        Reason = "high-cardinality-proper-noun"
	ReasonTemporalValue     Reason = "temporal-value"
	ReasonOverlongPhrase    Reason = "overlong-phrase"
	ReasonMisspelling       Reason = "misspelling"
	ReasonInflectional      Reason = "inflectional-variant"
	ReasonIsolatedVerb      Reason = "isolated-verb"
	ReasonSensitivePersonal Reason = "sensitive-personal-data"
)

// Reasons lists all accepted deletion reasons.
var Reasons = []Reason{
	ReasonGenericTerm, ReasonOutOfDomain, ReasonProperNoun,
	ReasonTemporalValue, ReasonOverlongPhrase, ReasonMisspelling,
	ReasonInflectional, ReasonIsolatedVerb, ReasonSensitivePersonal,
}

// Valid checks that the reason belongs to the closed set of reasons.
func (r Reason) Valid() bool {
	return slices.Contains(Reasons, r)
}

// DeleteScope selects between deleting exact rows and deleting every row
// sharing their names.
type DeleteScope string

const (
	ScopeSingle DeleteScope = "single"
	ScopeAll    DeleteScope = "all"
)

// NewDeleteScope converts user input to a DeleteScope.
// Empty input means ScopeSingle.
func NewDeleteScope(s string) (DeleteScope, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ScopeSingle):
		return ScopeSingle, true
	case string(ScopeAll):
		return ScopeAll, true
	}
	return "", false
}

// Status summarizes the outcome of a curation operation.
type Status string

const (
	Succeeded Status = "succeeded"
	Partial   Status = "partial"
	Failed    Status = "failed"
)

// Result is returned by every mutating curation operation.
type Result struct {
	Action    Action
	Status    Status
	Succeeded int
	Failed    int

	// FailedItems contains ids or names of items that could not be processed.
	FailedItems []string

	// Documents is the number of distinct documents affected.
	Documents int

	// EventID is empty when nothing was recorded in the audit log.
	EventID  string
	Problems []string
}

// SetStatus derives Status from the success and failure counters.
func (r *Result) SetStatus() {
	switch {
	case r.Failed == 0 && r.Succeeded > 0:
		r.Status = Succeeded
	case r.Succeeded > 0:
		r.Status = Partial
	default:
		r.Status = Failed
	}
}
