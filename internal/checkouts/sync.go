package checkouts

// SyncResult describes what happened to one checkout during a sync pass.
type SyncResult struct {
	Checkout string
	Alias    string

	// LinkCreated is false when the alias entry already existed.
	LinkCreated bool

	// ReferencesReplaced counts occurrences rewritten in the project manifest.
	ReferencesReplaced int
}

// Sync runs the full normalization over a source tree: list checkouts,
// derive aliases, ensure symlinks, rewrite project references. Entries that
// are not real checkouts are skipped. Partially-created links from an
// earlier failed run are picked up as already satisfied, so re-running is
// the recovery path.
func (n *Normalizer) Sync(sourceRoot string, rewriter ReferenceRewriter) ([]SyncResult, error) {
	names, err := n.List(sourceRoot)
	if err != nil {
		return nil, err
	}

	manifest, err := n.LocateManifest(sourceRoot)
	if err != nil {
		return nil, err
	}

	dir := n.CheckoutsDir(sourceRoot)
	var results []SyncResult
	for _, name := range names {
		alias, ok := AliasFor(name)
		if !ok {
			continue
		}

		created, err := n.EnsureSymlink(n.ops.Path.Join(dir, name), alias)
		if err != nil {
			return results, err
		}

		replaced, err := rewriter.Rewrite(manifest, name, alias)
		if err != nil {
			return results, err
		}

		results = append(results, SyncResult{
			Checkout:           name,
			Alias:              alias,
			LinkCreated:        created,
			ReferencesReplaced: replaced,
		})
	}
	return results, nil
}
