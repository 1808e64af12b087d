// Package semver parses and orders strict three-component release versions.
//
// Unlike general-purpose semver, release tags in this project are exactly
// "major.minor.patch" with numeric components: no pre-release suffixes, no
// build metadata, no partial versions. Anything else is unparsable and gets
// filtered out by the callers, not treated as a fatal condition.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

// Version is an ordered (major, minor, patch) triple.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse validates text as a strict "major.minor.patch" version.
// Exactly three dot-separated components, each a non-negative integer.
// Partial or garbage input yields an InvalidTagError, never a partial Version.
func Parse(text string) (Version, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return Version{}, &InvalidTagError{Raw: text, Reason: fmt.Sprintf("want 3 components, got %d", len(parts))}
	}

	nums := [3]uint64{}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, &InvalidTagError{Raw: text, Reason: fmt.Sprintf("component %q is not a non-negative integer", p)}
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParse is a test/fixture helper; it panics on unparsable input.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the canonical "<major>.<minor>.<patch>" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 depending on whether a is less than, equal to,
// or greater than b. Comparison is numeric per component (major, then minor,
// then patch) - "1.1000.1" sorts after "1.999.1".
//
// The actual tuple comparison is delegated to the Masterminds semver
// implementation; the strict shape gate in Parse is ours because that
// library coerces partials like "1.2" and accepts pre-release suffixes.
func Compare(a, b Version) int {
	return a.underlying().Compare(b.underlying())
}

// Less reports whether a orders strictly before b.
func Less(a, b Version) bool {
	return Compare(a, b) < 0
}

func (v Version) underlying() *masterminds.Version {
	return masterminds.New(v.Major, v.Minor, v.Patch, "", "")
}
