// Tests in this file cover strict path resolution helpers.
package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestResolvePathStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	resolved, err := ResolvePathStrict(dir)
	if err != nil {
		t.Fatalf("ResolvePathStrict failed: %v", err)
	}
	if !filepath.IsAbs(resolved) {
		t.Fatalf("resolved path %q is not absolute", resolved)
	}

	if _, err := ResolvePathStrict(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for nonexistent path")
	}
}

func TestResolveSourceRootFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "Package.swift")
	if err := os.WriteFile(file, []byte("// manifest"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	root, err := ResolveSourceRoot(file)
	if err != nil {
		t.Fatalf("ResolveSourceRoot failed: %v", err)
	}
	want, err := ResolvePathStrict(dir)
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if root != want {
		t.Fatalf("ResolveSourceRoot = %q, want %q", root, want)
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	got := SplitLines("1.0.0\n\n  1.2.0  \n1.0.0\nnightly\n")
	want := []string{"1.0.0", "1.2.0", "nightly"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLines = %v, want %v", got, want)
	}

	if SplitLines("") != nil {
		t.Fatal("empty blob should yield nil")
	}
}
