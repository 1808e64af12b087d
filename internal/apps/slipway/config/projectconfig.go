package hostappconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfigFileName is looked up at the source root.
const ProjectConfigFileName = "slipway.yaml"

// Platform is one build target: Bucket names the cache partition, Triple is
// the toolchain target triple builds for it produce.
type Platform struct {
	Bucket string `yaml:"bucket"`
	Triple string `yaml:"triple"`
}

// StorageConfig says where packaged artifacts get published.
type StorageConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// ProjectConfig is the per-project slipway.yaml. Every field has a default;
// a missing file is not an error.
type ProjectConfig struct {
	// Image is the container image builds run in.
	Image string `yaml:"image"`

	// Configuration is the build configuration (debug/release).
	Configuration string `yaml:"configuration"`

	// BuildCommand is executed inside the container at the source root.
	BuildCommand []string `yaml:"build_command"`

	// Setup lists shell commands baked into a derived build image on top of
	// Image. Empty means Image is used as-is.
	Setup []string `yaml:"setup"`

	Platforms []Platform    `yaml:"platforms"`
	Storage   StorageConfig `yaml:"storage"`
}

func defaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Image:         "swift:6.0",
		Configuration: "release",
		BuildCommand:  []string{"swift", "build", "-c", "release"},
		Platforms: []Platform{
			{Bucket: "linux-x86_64", Triple: "x86_64-unknown-linux-gnu"},
		},
	}
}

// LoadProjectConfig reads slipway.yaml from sourceRoot, filling unset fields
// with defaults. A missing file yields the full default config.
func LoadProjectConfig(sourceRoot string) (*ProjectConfig, error) {
	cfg := defaultProjectConfig()

	path := filepath.Join(sourceRoot, ProjectConfigFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Image == "" {
		cfg.Image = defaultProjectConfig().Image
	}
	if cfg.Configuration == "" {
		cfg.Configuration = defaultProjectConfig().Configuration
	}
	if len(cfg.BuildCommand) == 0 {
		cfg.BuildCommand = defaultProjectConfig().BuildCommand
	}
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = defaultProjectConfig().Platforms
	}
	return cfg, nil
}

// PlatformByBucket finds the configured platform for a bucket name.
func (c *ProjectConfig) PlatformByBucket(bucket string) (Platform, bool) {
	for _, p := range c.Platforms {
		if p.Bucket == bucket {
			return p, true
		}
	}
	return Platform{}, false
}
