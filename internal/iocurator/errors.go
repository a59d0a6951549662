package iocurator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
)

// ErrValidation is the cause of requests refused before any mutation.
var ErrValidation = errors.New("invalid curation request")

// ValidationError is returned when a request is refused before it
// changes anything.
func ValidationError(action tag.Action, problem string) error {
	msg := `Cannot run <em>%s</em>: %s`

	return &gn.Error{
		Code: errcode.CurateValidationError,
		Msg:  msg,
		Vars: []any{action, problem},
		Err:  fmt.Errorf("%s: %w: %s", action, ErrValidation, problem),
	}
}

// TagNotFoundError is returned when a tag the request depends on does
// not exist.
func TagNotFoundError(action tag.Action, id string) error {
	msg := `Cannot run <em>%s</em>: tag <em>%s</em> does not exist

<em>How to fix:</em>
  Reload the tag list, the tag might be merged or deleted already`

	return &gn.Error{
		Code: errcode.CurateTagNotFoundError,
		Msg:  msg,
		Vars: []any{action, id},
		Err:  fmt.Errorf("%s: tag %s: %w", action, id, store.ErrNotFound),
	}
}

// RuleNotFoundError is returned when a merge rule does not exist.
func RuleNotFoundError(id string) error {
	msg := "Merge rule <em>%s</em> does not exist"

	return &gn.Error{
		Code: errcode.CurateRuleNotFoundError,
		Msg:  msg,
		Vars: []any{id},
		Err:  fmt.Errorf("rule %s: %w", id, store.ErrNotFound),
	}
}

// PartialError is returned when some items of a request failed.
func PartialError(res *tag.Result) error {
	msg := `<em>%s</em> failed for %d of %d items: %s`
	vars := []any{
		res.Action, res.Failed, res.Failed + res.Succeeded,
		strings.Join(res.FailedItems, ", "),
	}

	return &gn.Error{
		Code: errcode.CurateItemError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s: %d of %d items failed",
			res.Action, res.Failed, res.Failed+res.Succeeded),
	}
}

// AllItemsFailedError is returned when no item of a request succeeded.
func AllItemsFailedError(res *tag.Result) error {
	msg := `<em>%s</em> failed for all items: %s

<em>How to fix:</em>
  Check the log for details`
	vars := []any{res.Action, strings.Join(res.FailedItems, ", ")}

	return &gn.Error{
		Code: errcode.CurateAllItemsFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: all %d items failed", res.Action, res.Failed),
	}
}

// AuditError is returned when a decision was applied but could not be
// recorded.
func AuditError(action tag.Action, err error) error {
	msg := `Changes of <em>%s</em> are applied, but the event is not recorded`

	return &gn.Error{
		Code: errcode.CurateAuditError,
		Msg:  msg,
		Vars: []any{action},
		Err:  fmt.Errorf("cannot record %s event: %w", action, err),
	}
}
