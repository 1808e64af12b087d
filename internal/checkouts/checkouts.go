// Package checkouts normalizes versioned dependency checkouts: each checkout
// directory gets a stable version-less alias symlink, and IDE project
// references are rewritten from the versioned name to the alias so project
// files stay valid across dependency updates.
package checkouts

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/tidewater-dev/slipway/internal/cachemap"
	"github.com/tidewater-dev/slipway/internal/fsops"
)

// CheckoutsDirName is the conventional checkouts location under the
// build-output directory.
const CheckoutsDirName = "checkouts"

// versionSeparator marks where the version (or hash) suffix of a checkout
// name starts; the suffix begins at its last occurrence.
const versionSeparator = "-"

// metadataExtensions are entries the dependency manager drops next to real
// checkouts (state files, lockfiles). Never aliased.
var metadataExtensions = map[string]struct{}{
	".json":     {},
	".db":       {},
	".txt":      {},
	".plist":    {},
	".yaml":     {},
	".yml":      {},
	".lock":     {},
	".resolved": {},
}

// ErrCheckoutsDirNotFound reports a missing checkouts directory under the
// source root.
var ErrCheckoutsDirNotFound = errors.New("checkouts directory not found")

// Normalizer performs the listing, symlinking and rewriting steps. The fsops
// seam keeps it testable against fakes.
type Normalizer struct {
	ops fsops.Ops
}

func New() *Normalizer {
	return &Normalizer{ops: fsops.DefaultOps()}
}

func NewWithOps(ops fsops.Ops) *Normalizer {
	return &Normalizer{ops: ops}
}

// CheckoutsDir returns the conventional checkouts directory for sourceRoot.
func (n *Normalizer) CheckoutsDir(sourceRoot string) string {
	return n.ops.Path.Join(sourceRoot, cachemap.BuildDirName, CheckoutsDirName)
}

// List returns the raw entry names of the checkouts directory, unfiltered.
func (n *Normalizer) List(sourceRoot string) ([]string, error) {
	dir := n.CheckoutsDir(sourceRoot)
	entries, err := n.ops.OS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckoutsDirNotFound, dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// AliasFor derives the stable alias for a checkout name, or reports skip.
// Skipped: dotfiles, names without a version-suffix separator, and metadata
// files that live alongside real checkouts. Otherwise the suffix starting at
// the last separator is stripped, and a trailing ".git" (from
// "<Name>.git-<hash>" style checkouts) is trimmed, yielding the bare package
// name.
func AliasFor(name string) (string, bool) {
	if name == "" || strings.HasPrefix(name, ".") {
		return "", false
	}
	if _, meta := metadataExtensions[extOf(name)]; meta {
		return "", false
	}
	idx := strings.LastIndex(name, versionSeparator)
	if idx <= 0 {
		return "", false
	}
	alias := strings.TrimSuffix(name[:idx], ".git")
	if alias == "" {
		return "", false
	}
	return alias, true
}

func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// EnsureSymlink places a symlink named alias alongside checkoutPath,
// pointing at it. An existing entry of any kind under that name - symlink or
// not - counts as already satisfied; it is never overwritten or followed.
// Safe to repeat.
func (n *Normalizer) EnsureSymlink(checkoutPath, alias string) (created bool, err error) {
	linkPath := n.ops.Path.Join(n.ops.Path.Dir(checkoutPath), alias)

	if _, err := n.ops.OS.Lstat(linkPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("inspect %s: %w", linkPath, err)
	}

	if err := n.ops.OS.Symlink(checkoutPath, linkPath); err != nil {
		return false, fmt.Errorf("symlink %s -> %s: %w", linkPath, checkoutPath, err)
	}
	return true, nil
}
