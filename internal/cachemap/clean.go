package cachemap

import (
	"os"
	"path/filepath"
	"strings"
)

// ShouldClean decides whether the previous build output for configuration is
// cross-platform-incompatible and must be purged before building for
// wantTriple.
//
// Best-effort staleness detection, not a guarantee: it reads the
// per-configuration build manifest (<sourceRoot>/.build/<configuration>.yaml)
// and reports true when the manifest does not mention wantTriple. When the
// manifest is absent or unreadable it falls back to directory presence -
// an output dir without a readable manifest is treated as possibly stale.
func ShouldClean(sourceRoot, configuration, wantTriple string) bool {
	manifest := filepath.Join(sourceRoot, BuildDirName, configuration+".yaml")
	data, err := os.ReadFile(manifest)
	if err == nil {
		return !strings.Contains(string(data), wantTriple)
	}

	// No readable manifest. Clean only if there is prior output at all.
	fi, err := os.Stat(filepath.Join(sourceRoot, BuildDirName, configuration))
	return err == nil && fi.IsDir()
}
