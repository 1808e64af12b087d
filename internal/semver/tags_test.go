// Tests in this file cover tag selection and version incrementing.
package semver

import (
	"errors"
	"testing"
)

func TestSelectLatestNumericOrdering(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tags []string
		want Version
	}{
		{"major wins", []string{"1000.1.1", "999.1.1", "1.1000.1", "1.1.1000"}, Version{1000, 1, 1}},
		{"minor wins", []string{"1.1.1", "1.1000.1", "1.999.1", "1.1.1000"}, Version{1, 1000, 1}},
		{"patch wins", []string{"1.1.1", "1.1000.1", "1.1000.1000"}, Version{1, 1000, 1000}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := SelectLatest(tc.tags)
			if err != nil {
				t.Fatalf("SelectLatest returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("SelectLatest = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSelectLatestFiltersGarbage(t *testing.T) {
	t.Parallel()

	got, err := SelectLatest([]string{"nightly", "v2.0.0", "1.4.2", "1.4", "1.4.10", "release-candidate"})
	if err != nil {
		t.Fatalf("SelectLatest returned error: %v", err)
	}
	if got != (Version{1, 4, 10}) {
		t.Fatalf("SelectLatest = %v, want 1.4.10", got)
	}
}

func TestSelectLatestNoValidTag(t *testing.T) {
	t.Parallel()

	for _, tags := range [][]string{nil, {}, {"nightly", "foo-bar", "1.2"}} {
		_, err := SelectLatest(tags)
		if err == nil {
			t.Fatalf("SelectLatest(%v) should fail", tags)
		}
		if !errors.Is(err, ErrNoValidTag) {
			t.Fatalf("expected ErrNoValidTag via errors.Is, got %v", err)
		}
	}
}

func TestSelectLatestDuplicateMaxima(t *testing.T) {
	t.Parallel()

	got, err := SelectLatest([]string{"1.2.3", "1.2.3", "1.0.0"})
	if err != nil {
		t.Fatalf("SelectLatest returned error: %v", err)
	}
	if got != (Version{1, 2, 3}) {
		t.Fatalf("SelectLatest = %v, want 1.2.3", got)
	}
}

func TestIncrementRollOver(t *testing.T) {
	t.Parallel()

	base := Version{1, 2, 3}
	if got := Increment(base, Major); got != (Version{2, 0, 0}) {
		t.Fatalf("Increment major = %v, want 2.0.0", got)
	}
	if got := Increment(base, Minor); got != (Version{1, 3, 0}) {
		t.Fatalf("Increment minor = %v, want 1.3.0", got)
	}
	if got := Increment(base, Patch); got != (Version{1, 2, 4}) {
		t.Fatalf("Increment patch = %v, want 1.2.4", got)
	}
}

func TestIncrementTagRevalidates(t *testing.T) {
	t.Parallel()

	got, err := IncrementTag("0.9.41", Minor)
	if err != nil {
		t.Fatalf("IncrementTag returned error: %v", err)
	}
	if got != (Version{0, 10, 0}) {
		t.Fatalf("IncrementTag = %v, want 0.10.0", got)
	}

	if _, err := IncrementTag("0.9", Patch); !errors.Is(err, ErrInvalidCurrentTag) {
		t.Fatalf("expected ErrInvalidCurrentTag, got %v", err)
	}
}

func TestParseComponent(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]Component{"major": Major, "minor": Minor, "patch": Patch} {
		got, err := ParseComponent(text)
		if err != nil {
			t.Fatalf("ParseComponent(%q) error: %v", text, err)
		}
		if got != want {
			t.Fatalf("ParseComponent(%q) = %v, want %v", text, got, want)
		}
	}

	if _, err := ParseComponent("micro"); err == nil {
		t.Fatal("expected error for unknown component")
	}
}
