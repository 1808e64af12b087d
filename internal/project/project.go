package project

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/tidewater-dev/slipway/internal/utils"
)

var invalidNameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// Project is one source tree slipway operates on.
type Project struct {
	Name string
	Root string
}

// Resolve canonicalizes path into a source root and derives a stable,
// container-safe project name from it.
func Resolve(path string) (*Project, error) {
	root, err := utils.ResolveSourceRoot(path)
	if err != nil {
		return nil, err
	}

	return &Project{
		Name: nameFromPath(root),
		Root: root,
	}, nil
}

// nameFromPath encodes (almost) the full path into a container-safe name.
func nameFromPath(input string) string {
	if input == "" {
		input = "."
	}

	abs, _ := filepath.Abs(input)
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	home, _ := os.UserHomeDir()
	asSlash := filepath.ToSlash(abs)
	homeSlash := filepath.ToSlash(home)

	if homeSlash != "" && strings.HasPrefix(asSlash, homeSlash) {
		asSlash = strings.Replace(asSlash, homeSlash, "home", 1)
	}
	asSlash = strings.TrimPrefix(asSlash, "/")

	if runtime.GOOS == "windows" {
		if len(asSlash) >= 2 && asSlash[1] == ':' {
			asSlash = asSlash[2:]
			asSlash = strings.TrimPrefix(asSlash, "/")
		}
	}

	name := strings.ToLower(strings.ReplaceAll(asSlash, "/", "-"))
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".-")
	if name == "" {
		name = "project"
	}

	return name
}
