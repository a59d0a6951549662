package duplicates

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/errcode"
)

// CancelledError is returned when the caller abandons detection.
func CancelledError(err error) error {
	msg := "Duplicates detection was cancelled"
	return &gn.Error{
		Code: errcode.DetectCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("detection cancelled: %w", err),
	}
}
