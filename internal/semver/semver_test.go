// Tests in this file exercise strict version parsing and ordering.
package semver

import (
	"errors"
	"testing"
)

func TestParseStrictShape(t *testing.T) {
	t.Parallel()

	got, err := Parse("1.2.3")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != (Version{1, 2, 3}) {
		t.Fatalf("Parse = %v, want {1 2 3}", got)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	t.Parallel()

	bad := []string{"", "0.0", "1.2.3.4", "1.2.x", "v1.2.3", "1.2.-3", "1.2.3-rc.1", "a.b.c", "1..3"}
	for _, raw := range bad {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("Parse(%q) unexpectedly succeeded", raw)
		} else {
			var ite *InvalidTagError
			if !errors.As(err, &ite) {
				t.Fatalf("Parse(%q) error %v is not an InvalidTagError", raw, err)
			}
		}
	}
}

func TestCompareIsNumericNotLexicographic(t *testing.T) {
	t.Parallel()

	if Compare(MustParse("1.1000.1"), MustParse("1.999.1")) <= 0 {
		t.Fatal("1.1000.1 should order after 1.999.1")
	}
	if Compare(MustParse("2.0.0"), MustParse("10.0.0")) >= 0 {
		t.Fatal("2.0.0 should order before 10.0.0")
	}
}

// TestCompareTotalOrder checks reflexive equality, antisymmetry and
// transitivity over a grid of triples.
func TestCompareTotalOrder(t *testing.T) {
	t.Parallel()

	vals := []uint64{0, 1, 2, 999, 1000}
	var versions []Version
	for _, ma := range vals {
		for _, mi := range vals {
			for _, pa := range vals {
				versions = append(versions, Version{ma, mi, pa})
			}
		}
	}

	for _, a := range versions {
		if Compare(a, a) != 0 {
			t.Fatalf("Compare(%v, %v) != 0", a, a)
		}
		for _, b := range versions {
			ab, ba := Compare(a, b), Compare(b, a)
			if ab != -ba {
				t.Fatalf("antisymmetry violated for %v, %v: %d vs %d", a, b, ab, ba)
			}
			if ab == 0 && a != b {
				t.Fatalf("distinct versions compare equal: %v, %v", a, b)
			}
			for _, c := range versions {
				if ab <= 0 && Compare(b, c) <= 0 && Compare(a, c) > 0 {
					t.Fatalf("transitivity violated for %v <= %v <= %v", a, b, c)
				}
			}
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	v := Version{12, 0, 103}
	if v.String() != "12.0.103" {
		t.Fatalf("String = %q, want %q", v.String(), "12.0.103")
	}
	back, err := Parse(v.String())
	if err != nil {
		t.Fatalf("Parse(String) failed: %v", err)
	}
	if back != v {
		t.Fatalf("round trip changed version: %v -> %v", v, back)
	}
}
