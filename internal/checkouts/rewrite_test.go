// Tests in this file cover project-manifest location and reference rewriting.
package checkouts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidewater-dev/slipway/internal/fsops"
	fsopsMocks "github.com/tidewater-dev/slipway/internal/fsops/mocks"
	"go.uber.org/mock/gomock"
)

func writeProject(t *testing.T, root string) string {
	t.Helper()
	projDir := filepath.Join(root, "App.xcodeproj")
	if err := os.MkdirAll(projDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := filepath.Join(projDir, "project.pbxproj")
	contents := strings.Repeat("path = checkouts/Hello-1.0.3;\nname = Hello-1.0.3;\n", 3) +
		"path = checkouts/Other-2.0.0;\n"
	if err := os.WriteFile(manifest, []byte(contents), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return manifest
}

func TestLocateManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := writeProject(t, root)

	got, err := New().LocateManifest(root)
	if err != nil {
		t.Fatalf("LocateManifest failed: %v", err)
	}
	if got != want {
		t.Fatalf("LocateManifest = %q, want %q", got, want)
	}
}

func TestLocateManifestAmbiguity(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := New().LocateManifest(root); !errors.Is(err, ErrProjectFileNotFound) {
		t.Fatalf("zero projects: expected ErrProjectFileNotFound, got %v", err)
	}

	writeProject(t, root)
	if err := os.MkdirAll(filepath.Join(root, "Second.xcodeproj"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := New().LocateManifest(root)
	if !errors.Is(err, ErrProjectFileNotFound) {
		t.Fatalf("two projects: expected ErrProjectFileNotFound, got %v", err)
	}
	var le *LocateError
	if !errors.As(err, &le) || le.Matches != 2 {
		t.Fatalf("expected LocateError with 2 matches, got %v", err)
	}
}

func TestRewriteReplacesAllOccurrences(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	manifest := writeProject(t, root)

	replaced, err := NewTextualRewriter(fsops.DefaultOps()).Rewrite(manifest, "Hello-1.0.3", "Hello")
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}
	if replaced != 6 {
		t.Fatalf("replaced = %d, want 6", replaced)
	}

	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "Hello-1.0.3") {
		t.Fatal("versioned name still present after rewrite")
	}
	if strings.Count(text, "name = Hello;") != 3 {
		t.Fatalf("alias substitution incomplete:\n%s", text)
	}
	if !strings.Contains(text, "Other-2.0.0") {
		t.Fatal("unrelated reference was modified")
	}
}

func TestRewriteNoMatchLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	osOps := fsopsMocks.NewMockOSOps(ctrl)
	osOps.EXPECT().ReadFile("m.pbxproj").Return([]byte("nothing relevant"), nil)
	// No WriteFile expectation: a zero-match rewrite must not write.

	ops := fsops.Ops{Path: fsops.DefaultOps().Path, OS: osOps}
	replaced, err := NewTextualRewriter(ops).Rewrite("m.pbxproj", "Hello-1.0.3", "Hello")
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}
	if replaced != 0 {
		t.Fatalf("replaced = %d, want 0", replaced)
	}
}

func TestSyncEndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	manifest := writeProject(t, root)

	checkoutsDir := filepath.Join(root, ".build", "checkouts")
	for _, name := range []string{"Hello-1.0.3", "Other-2.0.0"} {
		if err := os.MkdirAll(filepath.Join(checkoutsDir, name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(checkoutsDir, "workspace-state.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	n := New()
	results, err := n.Sync(root, NewTextualRewriter(fsops.DefaultOps()))
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (metadata must be skipped): %+v", len(results), results)
	}

	for _, r := range results {
		if !r.LinkCreated {
			t.Fatalf("link for %s should be created on first sync", r.Checkout)
		}
		if _, err := os.Readlink(filepath.Join(checkoutsDir, r.Alias)); err != nil {
			t.Fatalf("missing symlink for %s: %v", r.Alias, err)
		}
	}

	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if strings.Contains(string(data), "Hello-1.0.3") || strings.Contains(string(data), "Other-2.0.0") {
		t.Fatal("versioned references survived sync")
	}

	// Second pass: idempotent, nothing created, nothing left to replace.
	results, err = n.Sync(root, NewTextualRewriter(fsops.DefaultOps()))
	if err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	for _, r := range results {
		if r.LinkCreated || r.ReferencesReplaced != 0 {
			t.Fatalf("second sync should be a no-op, got %+v", r)
		}
	}
}
