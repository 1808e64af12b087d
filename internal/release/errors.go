package release

import (
	"errors"
	"fmt"
)

// ErrAborted means the operator declined the confirmation prompt.
var ErrAborted = errors.New("release aborted")

// ReadBackMismatchError means the pushed tag did not show up when the tag
// list was read back. The push may still have succeeded; the operator has
// to inspect the remote before retrying.
type ReadBackMismatchError struct {
	Tag  string
	Tags []string
}

func (e *ReadBackMismatchError) Error() string {
	return fmt.Sprintf("tag %s not visible after push (%d tags listed)", e.Tag, len(e.Tags))
}
