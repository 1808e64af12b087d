package hostappconfig

import (
	"os"
	"path/filepath"
)

// ensureFolder recursively creates a folder if it does not exist.
func ensureFolder(path string) error {
	return os.MkdirAll(path, 0o755)
}

func ConfigBasePath() string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		homedir = "/usr/local/config/slipway"
	}

	return filepath.Join(homedir, ".config", "slipway")
}

func StateDBFile() string {
	return filepath.Join(ConfigBasePath(), "state.db")
}

func ScratchPath() string {
	p := filepath.Join(ConfigBasePath(), "scratch")
	ensureFolder(p)
	return p
}
