// Tests in this file cover cache-bucket mapping and idempotent creation.
package cachemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDirDeterministicAndIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	first, err := CacheDir(root, "linux-x86_64")
	if err != nil {
		t.Fatalf("CacheDir failed: %v", err)
	}
	want := filepath.Join(root, ".build", "caches", "linux-x86_64")
	if first != want {
		t.Fatalf("CacheDir = %q, want %q", first, want)
	}

	fi, err := os.Stat(filepath.Join(first, ".build"))
	if err != nil || !fi.IsDir() {
		t.Fatalf("nested build dir missing: %v", err)
	}

	second, err := CacheDir(root, "linux-x86_64")
	if err != nil {
		t.Fatalf("second CacheDir call failed: %v", err)
	}
	if second != first {
		t.Fatalf("second call returned %q, want %q", second, first)
	}
}

func TestCacheDirBucketsDoNotCollide(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a, err := CacheDir(root, "linux-x86_64")
	if err != nil {
		t.Fatalf("CacheDir failed: %v", err)
	}
	b, err := CacheDir(root, "linux-aarch64")
	if err != nil {
		t.Fatalf("CacheDir failed: %v", err)
	}
	if a == b {
		t.Fatalf("distinct buckets share directory %q", a)
	}
}

func TestMountMapping(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	m, err := MountMapping(root, "linux-x86_64")
	if err != nil {
		t.Fatalf("MountMapping failed: %v", err)
	}

	wantHost := filepath.Join(root, ".build", "caches", "linux-x86_64", ".build")
	wantContainer := filepath.Join(root, ".build")
	if m.Host != wantHost || m.Container != wantContainer {
		t.Fatalf("MountMapping = %+v, want host %q container %q", m, wantHost, wantContainer)
	}

	bind := m.Bind()
	if bind != wantHost+":"+wantContainer+":rw" {
		t.Fatalf("Bind = %q", bind)
	}
	if _, err := os.Stat(m.Host); err != nil {
		t.Fatalf("host side not created: %v", err)
	}
}

func TestDependencyCacheMappingIsSeparate(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	build, err := MountMapping(root, "linux-x86_64")
	if err != nil {
		t.Fatalf("MountMapping failed: %v", err)
	}
	deps, err := DependencyCacheMapping(root, "linux-x86_64")
	if err != nil {
		t.Fatalf("DependencyCacheMapping failed: %v", err)
	}

	if deps.Host == build.Host {
		t.Fatal("dependency cache shares the build-output host dir")
	}
	if !strings.HasSuffix(deps.Container, filepath.Join(".build", "repositories")) {
		t.Fatalf("dependency container path = %q", deps.Container)
	}
}
