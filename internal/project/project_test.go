// Tests in this file cover project resolution.
package project

import (
	"strings"
	"testing"
)

func TestResolveDerivesSafeName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if p.Root == "" || p.Name == "" {
		t.Fatalf("empty project fields: %+v", p)
	}
	if strings.ContainsAny(p.Name, "/ ") {
		t.Fatalf("project name %q contains unsafe characters", p.Name)
	}
	if p.Name != strings.ToLower(p.Name) {
		t.Fatalf("project name %q is not lowercase", p.Name)
	}
}

func TestResolveMissingPath(t *testing.T) {
	t.Parallel()

	if _, err := Resolve("/definitely/not/a/real/path"); err == nil {
		t.Fatal("expected error for nonexistent path")
	}
}
