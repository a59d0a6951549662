package iotaxonomy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
)

// ErrInvalidDocument is the cause of refusing a document with
// validation errors.
var ErrInvalidDocument = errors.New("invalid taxonomy document")

// ValidationError is returned when a document has blocking errors.
// Nothing is written in this case.
func ValidationError(problems []string) error {
	msg := `Taxonomy document is not valid

<em>Problems:</em>
  - %s

<em>How to fix:</em>
  1. Fix the problems in the document
  2. Run import with <em>--dry-run</em> to check it again`

	vars := []any{strings.Join(problems, "\n  - ")}

	return &gn.Error{
		Code: errcode.TaxonomyValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"%w: %s", ErrInvalidDocument, strings.Join(problems, "; "),
		),
	}
}

// ModeError is returned for an unknown import mode.
func ModeError(mode string) error {
	msg := `Unknown import mode <em>%s</em>

<em>How to fix:</em>
  Use <em>merge</em> or <em>replace</em>`

	return &gn.Error{
		Code: errcode.TaxonomyValidationError,
		Msg:  msg,
		Vars: []any{mode},
		Err:  fmt.Errorf("%w: unknown mode %q", ErrInvalidDocument, mode),
	}
}

// DocumentRefError is returned when imported tags would not have a
// valid owning document.
func DocumentRefError(id string, err error) error {
	msg := `Imported tags need an owning document, got <em>'%s'</em>

<em>How to fix:</em>
  Provide a document UUID with <em>--document</em>`

	if err == nil {
		err = errors.New("document id is empty")
	}

	return &gn.Error{
		Code: errcode.TaxonomyDocumentRefError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("bad document reference %q: %w", id, err),
	}
}

// ImportError is returned when some items of a document were not
// written.
func ImportError(failed, total int) error {
	msg := "Failed to import <em>%d</em> of <em>%d</em> items, see the log for details"

	return &gn.Error{
		Code: errcode.TaxonomyImportError,
		Msg:  msg,
		Vars: []any{failed, total},
		Err:  fmt.Errorf("failed to import %d of %d items", failed, total),
	}
}
