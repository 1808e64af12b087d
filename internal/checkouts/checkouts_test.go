// Tests in this file cover alias derivation and symlink idempotence.
package checkouts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAliasFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		alias string
		ok    bool
	}{
		{"Hello-1.0.3", "Hello", true},
		{"swift-nio-2.40.0", "swift-nio", true},
		{"Hello.git-a1b2c3d", "Hello", true},
		{".git-metadata", "", false},
		{".DS_Store", "", false},
		{"README", "", false},
		{"workspace-state.json", "", false},
		{"manifest.db", "", false},
		{"Package.resolved", "", false},
		{"-1.0.0", "", false},
	}

	for _, tc := range cases {
		alias, ok := AliasFor(tc.name)
		if ok != tc.ok || alias != tc.alias {
			t.Fatalf("AliasFor(%q) = (%q, %v), want (%q, %v)", tc.name, alias, ok, tc.alias, tc.ok)
		}
	}
}

func TestListMissingCheckoutsDir(t *testing.T) {
	t.Parallel()

	n := New()
	_, err := n.List(t.TempDir())
	if !errors.Is(err, ErrCheckoutsDirNotFound) {
		t.Fatalf("expected ErrCheckoutsDirNotFound, got %v", err)
	}
}

func TestEnsureSymlinkCreatesThenReuses(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	checkout := filepath.Join(dir, "Hello-1.0.3")
	if err := os.Mkdir(checkout, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	n := New()
	created, err := n.EnsureSymlink(checkout, "Hello")
	if err != nil {
		t.Fatalf("EnsureSymlink failed: %v", err)
	}
	if !created {
		t.Fatal("first call should create the link")
	}

	target, err := os.Readlink(filepath.Join(dir, "Hello"))
	if err != nil {
		t.Fatalf("Readlink failed: %v", err)
	}
	if target != checkout {
		t.Fatalf("link points at %q, want %q", target, checkout)
	}

	created, err = n.EnsureSymlink(checkout, "Hello")
	if err != nil {
		t.Fatalf("second EnsureSymlink failed: %v", err)
	}
	if created {
		t.Fatal("second call should report already existed")
	}
}

func TestEnsureSymlinkNeverOverwritesRealEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	checkout := filepath.Join(dir, "Hello-1.0.3")
	occupied := filepath.Join(dir, "Hello")
	for _, d := range []string{checkout, occupied} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	n := New()
	created, err := n.EnsureSymlink(checkout, "Hello")
	if err != nil {
		t.Fatalf("EnsureSymlink failed: %v", err)
	}
	if created {
		t.Fatal("existing real directory must be treated as already satisfied")
	}

	fi, err := os.Lstat(occupied)
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if !fi.IsDir() || fi.Mode()&os.ModeSymlink != 0 {
		t.Fatal("existing directory was replaced")
	}
}
