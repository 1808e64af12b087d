// Package cachemap maps a source tree's incremental-build state onto
// persistent host-side cache directories and the container bind mounts they
// back, so containerized rebuilds stay incremental instead of clean.
//
// Layout owned by this package, one subtree per bucket name:
//
//	<sourceRoot>/.build/caches/<bucket>/.build
//
// The nested .build mirrors the conventional build-output directory and is
// what actually gets bind-mounted over <sourceRoot>/.build inside the
// container. Buckets are created on first use and never deleted here.
//
// There is no cross-invocation locking: two concurrent builds against the
// same source tree and bucket can interleave writes. Callers serialize one
// pipeline run at a time per checkout.
package cachemap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// BuildDirName is the conventional build-output directory the toolchain
	// writes to inside the source tree.
	BuildDirName = ".build"

	// cachesDirName partitions the per-bucket subtrees under BuildDirName.
	cachesDirName = "caches"

	// DependencyCacheBucketSuffix names the bucket subdir for the resolved
	// external-package cache. See DependencyCacheMapping for why the build
	// workflow never mounts it.
	DependencyCacheBucketSuffix = "repositories"
)

// Mapping asserts that Host must be bind-mounted at Container for the
// duration of one containerized invocation. It is recomputed fresh on every
// call; only the directories it names persist.
type Mapping struct {
	Host      string
	Container string
}

// Bind renders the docker "host:container:rw" bind string.
func (m Mapping) Bind() string {
	return strings.Join([]string{m.Host, m.Container, "rw"}, ":")
}

// CachesRoot returns the directory holding every bucket's cache subtree.
// It is not created here; clean-up code uses this to find what to remove.
func CachesRoot(sourceRoot string) string {
	return filepath.Join(sourceRoot, BuildDirName, cachesDirName)
}

// CacheDir computes and ensures the stable cache directory for bucket under
// sourceRoot. The result is a deterministic function of its inputs; the
// directory (including the mirrored build-output subdir beneath it) is
// created recursively and idempotently.
func CacheDir(sourceRoot, bucket string) (string, error) {
	dir := filepath.Join(sourceRoot, BuildDirName, cachesDirName, bucket)
	if err := os.MkdirAll(filepath.Join(dir, BuildDirName), 0o755); err != nil {
		return "", fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return dir, nil
}

// MountMapping returns the bind mount that gives bucket its own private copy
// of the build-output directory contents, mounted over the same path the
// build tool writes to inside the container. Builds for different buckets
// never clobber each other's incremental state.
func MountMapping(sourceRoot, bucket string) (Mapping, error) {
	dir, err := CacheDir(sourceRoot, bucket)
	if err != nil {
		return Mapping{}, err
	}
	return Mapping{
		Host:      filepath.Join(dir, BuildDirName),
		Container: filepath.Join(sourceRoot, BuildDirName),
	}, nil
}

// DependencyCacheMapping follows the identical scheme for the resolved
// dependency cache. The capability is generic, but the build workflow must
// not invoke it: sharing the dependency cache across container invocations
// has been observed to corrupt build state in the underlying toolchain.
// Known limitation until that defect is confirmed fixed upstream.
func DependencyCacheMapping(sourceRoot, bucket string) (Mapping, error) {
	dir, err := CacheDir(sourceRoot, filepath.Join(bucket, DependencyCacheBucketSuffix))
	if err != nil {
		return Mapping{}, err
	}
	return Mapping{
		Host:      filepath.Join(dir, BuildDirName),
		Container: filepath.Join(sourceRoot, BuildDirName, DependencyCacheBucketSuffix),
	}, nil
}
