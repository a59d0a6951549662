package taxonomy

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
)

// ErrEmptyDocument is the cause of decoding an empty document.
var ErrEmptyDocument = errors.New("document is empty")

// DecodeError is returned when a document is neither JSON nor YAML.
func DecodeError(err error) error {
	msg := `Cannot read taxonomy document

<em>How to fix:</em>
  1. Make sure the file is a JSON or YAML taxonomy export
  2. Check the file for syntax errors`

	return &gn.Error{
		Code: errcode.TaxonomyDecodeError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot decode taxonomy document: %w", err),
	}
}

// EncodeError is returned when a document cannot be serialized.
func EncodeError(format string, err error) error {
	msg := "Cannot write taxonomy document as <em>%s</em>"
	vars := []any{format}

	return &gn.Error{
		Code: errcode.TaxonomyEncodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot encode taxonomy document as %s: %w", format, err),
	}
}
