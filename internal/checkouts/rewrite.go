package checkouts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidewater-dev/slipway/internal/fsops"
)

const (
	projectFileExt  = ".xcodeproj"
	manifestFileExt = ".pbxproj"
)

var (
	// ErrProjectFileNotFound: zero or multiple project files under the
	// source root. Ambiguity is never resolved by picking one.
	ErrProjectFileNotFound = errors.New("project file not found")

	// ErrManifestNotFound: zero or multiple manifest files inside the
	// project file.
	ErrManifestNotFound = errors.New("project manifest not found")
)

// LocateError reports how many candidates were found where exactly one was
// required.
type LocateError struct {
	Dir     string
	Matches int
	kind    error
}

func (e *LocateError) Error() string {
	return fmt.Sprintf("%v: %d candidates in %s (want exactly 1)", e.kind, e.Matches, e.Dir)
}

func (e *LocateError) Unwrap() error { return e.kind }

// ReferenceRewriter rewrites dependency references inside a project file.
// The textual implementation is a blunt global substring replacement; keep
// call sites behind this interface so a structured-format rewriter can be
// substituted later without touching them.
type ReferenceRewriter interface {
	Rewrite(manifestPath, rawName, alias string) (replaced int, err error)
}

type textualRewriter struct {
	ops fsops.Ops
}

// NewTextualRewriter returns the substring-replacement rewriter. rawName
// always carries the version suffix, which makes accidental collisions with
// unrelated text implausible - that distinctiveness is what justifies
// skipping structured parsing here.
func NewTextualRewriter(ops fsops.Ops) ReferenceRewriter {
	return &textualRewriter{ops: ops}
}

func (r *textualRewriter) Rewrite(manifestPath, rawName, alias string) (int, error) {
	data, err := r.ops.OS.ReadFile(manifestPath)
	if err != nil {
		return 0, fmt.Errorf("read project manifest %s: %w", manifestPath, err)
	}

	text := string(data)
	count := strings.Count(text, rawName)
	if count == 0 {
		return 0, nil
	}

	rewritten := strings.ReplaceAll(text, rawName, alias)
	if err := r.ops.OS.WriteFile(manifestPath, []byte(rewritten), 0o644); err != nil {
		return 0, fmt.Errorf("write project manifest %s: %w", manifestPath, err)
	}
	return count, nil
}

// LocateManifest finds the single project file under sourceRoot and the
// single manifest inside it, returning the manifest path.
func (n *Normalizer) LocateManifest(sourceRoot string) (string, error) {
	projDir, err := n.locateOne(sourceRoot, projectFileExt, ErrProjectFileNotFound)
	if err != nil {
		return "", err
	}
	return n.locateOne(projDir, manifestFileExt, ErrManifestNotFound)
}

func (n *Normalizer) locateOne(dir, ext string, kind error) (string, error) {
	entries, err := n.ops.OS.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", kind, err)
	}

	var matches []string
	for _, e := range entries {
		if n.ops.Path.Ext(e.Name()) == ext {
			matches = append(matches, n.ops.Path.Join(dir, e.Name()))
		}
	}
	if len(matches) != 1 {
		return "", &LocateError{Dir: dir, Matches: len(matches), kind: kind}
	}
	return matches[0], nil
}
