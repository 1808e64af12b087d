package gitver

import (
	"errors"
	"fmt"
)

// ErrPushRejected is the sentinel for errors.Is checks on failed tag pushes.
var ErrPushRejected = errors.New("tag push rejected")

// PushRejectedError reports a push that either failed outright or completed
// without the remote confirming the tag.
type PushRejectedError struct {
	Tag    string
	Output string

	// Unconfirmed: exit code was zero, but no acceptance marker for the tag
	// appeared in the remote's output.
	Unconfirmed bool
}

func (e *PushRejectedError) Error() string {
	if e.Unconfirmed {
		return fmt.Sprintf("%v: push of %q exited cleanly but output does not confirm acceptance: %s", ErrPushRejected, e.Tag, e.Output)
	}
	return fmt.Sprintf("%v: %q: %s", ErrPushRejected, e.Tag, e.Output)
}

func (e *PushRejectedError) Unwrap() error { return ErrPushRejected }
