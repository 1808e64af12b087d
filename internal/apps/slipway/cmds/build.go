package slipway

import (
	"fmt"
	"os"
	"path/filepath"

	hostappconfig "github.com/tidewater-dev/slipway/internal/apps/slipway/config"
	"github.com/tidewater-dev/slipway/internal/cachemap"
	"github.com/tidewater-dev/slipway/internal/dockerclient"
	"github.com/tidewater-dev/slipway/internal/guardrails"
	"github.com/tidewater-dev/slipway/internal/logs"
	"github.com/tidewater-dev/slipway/internal/runtime"
	"github.com/tidewater-dev/slipway/internal/version"
	"github.com/spf13/cobra"
)

type buildOptions struct {
	Bucket string
	Yes    bool
}

func newBuildCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [PATH]",
		Short: "Run the project build in a container with a persistent cache",
		Long: `Run the configured build command inside the build image. Incremental
build state lives in a per-bucket cache directory that is bind-mounted over
the build-output path, so consecutive builds for the same bucket stay
incremental and different buckets never share state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.FromContextOrPanic(cmd.Context())
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runBuild(rt, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Cache bucket / platform to build for (default: first configured)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Assume yes on prompts")

	return cmd
}

func runBuild(rt *runtime.Runtime, path string, opts *buildOptions) error {
	ctx := rt.Ctx()

	proj, err := rt.ResolveProject(path)
	if err != nil {
		return err
	}
	if guardrails.IsAbsolutelyForbidden(proj.Root) {
		return fmt.Errorf("refusing to mount %s into a build container", proj.Root)
	}

	cfg, err := hostappconfig.LoadProjectConfig(proj.Root)
	if err != nil {
		return err
	}

	bucket := opts.Bucket
	if bucket == "" {
		bucket = cfg.Platforms[0].Bucket
	}
	platform, ok := cfg.PlatformByBucket(bucket)
	if !ok {
		return fmt.Errorf("bucket %q is not configured in %s", bucket, hostappconfig.ProjectConfigFileName)
	}

	cacheMount, err := cachemap.MountMapping(proj.Root, bucket)
	if err != nil {
		return err
	}
	// The bucket's cache subtree mirrors the build-output layout, so the
	// staleness check applies to both the source root and the bucket.
	bucketRoot := filepath.Dir(cacheMount.Host)

	stale := cachemap.ShouldClean(proj.Root, cfg.Configuration, platform.Triple) ||
		cachemap.ShouldClean(bucketRoot, cfg.Configuration, platform.Triple)
	if stale {
		confirmed := opts.Yes
		if !confirmed {
			confirmed, err = logs.PromptConfirm(fmt.Sprintf(
				"Existing %s output looks built for another platform. Purge it?", cfg.Configuration))
			if err != nil {
				return err
			}
		}
		if confirmed {
			for _, root := range []string{proj.Root, bucketRoot} {
				if err := purgeBuildOutput(root, cfg.Configuration); err != nil {
					return err
				}
			}
			logs.Infof("purged stale %s output", cfg.Configuration)
		} else {
			logs.Warnf("building on top of possibly stale output")
		}
	}

	// The source root is mounted at its own host path so build output paths
	// match between host and container. The cache bucket mounts over the
	// build-output dir AFTER it, order matters to docker.
	//
	// The dependency cache (cachemap.DependencyCacheMapping) is deliberately
	// not mounted: sharing it across invocations corrupts toolchain state.
	binds := []string{
		cachemap.Mapping{Host: proj.Root, Container: proj.Root}.Bind(),
		cacheMount.Bind(),
	}

	dc, err := dockerclient.NewDockerClient()
	if err != nil {
		return err
	}

	derivedTag := fmt.Sprintf("slipway-%s:schema%d", proj.Name, version.ImageSchemaVersion)
	image, err := dc.EnsureImage(ctx, cfg.Image, derivedTag, cfg.Setup)
	if err != nil {
		return err
	}

	logs.Infof("building %s for %s in %s", proj.Name, bucket, image)
	res, err := dc.RunBuild(ctx, proj.Name, dockerclient.BuildRun{
		Image:      image,
		WorkingDir: proj.Root,
		Binds:      binds,
		Cmd:        cfg.BuildCommand,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &dockerclient.BuildFailedError{
			Image:    image,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}

	logs.Infof("build for %s succeeded", bucket)
	return nil
}

// purgeBuildOutput removes the per-configuration output dir and its manifest,
// leaving the cache buckets and checkouts alone.
func purgeBuildOutput(sourceRoot, configuration string) error {
	outDir := filepath.Join(sourceRoot, cachemap.BuildDirName, configuration)
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("purge %s: %w", outDir, err)
	}
	manifest := filepath.Join(sourceRoot, cachemap.BuildDirName, configuration+".yaml")
	if err := os.Remove(manifest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("purge %s: %w", manifest, err)
	}
	return nil
}
