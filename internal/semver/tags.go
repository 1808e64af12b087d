package semver

import "fmt"

// Component selects which part of a version an increment targets.
// The ordinal ranking Major < Minor < Patch decides which components reset.
type Component int

const (
	Major Component = iota
	Minor
	Patch
)

func (c Component) String() string {
	switch c {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	}
	return fmt.Sprintf("component(%d)", int(c))
}

// ParseComponent maps CLI text onto a Component.
func ParseComponent(text string) (Component, error) {
	switch text {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	}
	return 0, fmt.Errorf("unknown version component %q (want major, minor or patch)", text)
}

// SelectLatest maps Parse over raw tag strings, silently discards the
// unparsable ones, and returns the maximum of the remainder. Duplicate
// maxima are fine - the returned Version is unambiguous either way.
func SelectLatest(tags []string) (Version, error) {
	var best Version
	found := false

	for _, t := range tags {
		v, err := Parse(t)
		if err != nil {
			continue
		}
		if !found || Less(best, v) {
			best = v
			found = true
		}
	}

	if !found {
		return Version{}, &NoValidTagError{Candidates: tags}
	}
	return best, nil
}

// Increment advances the target component by one and resets every less
// significant component to zero; more significant components are untouched.
//
//	Increment(1.2.3, Major) = 2.0.0
//	Increment(1.2.3, Minor) = 1.3.0
//	Increment(1.2.3, Patch) = 1.2.4
//
// Pure function: tag creation, pushing and read-back verification live in
// the release workflow on top of this.
func Increment(current Version, target Component) Version {
	next := current
	switch target {
	case Major:
		next.Major++
		next.Minor = 0
		next.Patch = 0
	case Minor:
		next.Minor++
		next.Patch = 0
	case Patch:
		next.Patch++
	}
	return next
}

// IncrementTag re-validates a raw tag string before incrementing. Callers
// should already hold a parsed Version by the time they increment, so a
// failure here wraps ErrInvalidCurrentTag and is fatal to the operation.
func IncrementTag(raw string, target Component) (Version, error) {
	current, err := Parse(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %v", ErrInvalidCurrentTag, err)
	}
	return Increment(current, target), nil
}
