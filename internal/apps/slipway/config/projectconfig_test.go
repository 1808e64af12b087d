// Tests in this file cover project config loading and defaults.
package hostappconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProjectConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadProjectConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProjectConfig failed: %v", err)
	}
	if cfg.Image == "" || cfg.Configuration == "" || len(cfg.Platforms) == 0 {
		t.Fatalf("defaults incomplete: %+v", cfg)
	}
}

func TestLoadProjectConfigOverridesAndFills(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	contents := `
image: swift:5.10
platforms:
  - bucket: linux-aarch64
    triple: aarch64-unknown-linux-gnu
storage:
  bucket: my-artifacts
  prefix: releases
`
	if err := os.WriteFile(filepath.Join(dir, ProjectConfigFileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadProjectConfig(dir)
	if err != nil {
		t.Fatalf("LoadProjectConfig failed: %v", err)
	}
	if cfg.Image != "swift:5.10" {
		t.Fatalf("Image = %q", cfg.Image)
	}
	if cfg.Configuration != "release" {
		t.Fatalf("Configuration default not filled: %q", cfg.Configuration)
	}
	if cfg.Storage.Bucket != "my-artifacts" || cfg.Storage.Prefix != "releases" {
		t.Fatalf("Storage = %+v", cfg.Storage)
	}

	p, ok := cfg.PlatformByBucket("linux-aarch64")
	if !ok || p.Triple != "aarch64-unknown-linux-gnu" {
		t.Fatalf("PlatformByBucket = %+v, %v", p, ok)
	}
	if _, ok := cfg.PlatformByBucket("windows"); ok {
		t.Fatal("unexpected platform match")
	}
}

func TestLoadProjectConfigRejectsBadYAML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ProjectConfigFileName), []byte("image: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadProjectConfig(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
