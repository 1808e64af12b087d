package semver

import (
	"errors"
	"fmt"
)

// ErrNoValidTag is the sentinel you can check with errors.Is when a tag
// listing contains no parsable version at all. This is a reported,
// recoverable condition - the usual fix is creating an initial tag.
var ErrNoValidTag = errors.New("no valid version tag found")

// ErrInvalidCurrentTag marks an increment whose starting version failed the
// defensive re-validation. Callers should have validated via Parse already,
// so hitting this is fatal to the operation.
var ErrInvalidCurrentTag = errors.New("current tag is not a valid version")

// InvalidTagError reports one malformed tag string. The Tag Selector filters
// these silently; everywhere else they surface verbatim.
type InvalidTagError struct {
	Raw    string
	Reason string
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Raw, e.Reason)
}

// NoValidTagError carries the raw candidate list that produced no usable
// version, for operator-facing messages.
type NoValidTagError struct {
	Candidates []string
}

func (e *NoValidTagError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%v: repository has no version tags yet", ErrNoValidTag)
	}
	return fmt.Sprintf("%v: none of %d tags parse as major.minor.patch", ErrNoValidTag, len(e.Candidates))
}

func (e *NoValidTagError) Unwrap() error { return ErrNoValidTag }
