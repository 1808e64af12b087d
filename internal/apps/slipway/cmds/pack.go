package slipway

import (
	"fmt"
	"path/filepath"
	"time"

	hostappconfig "github.com/tidewater-dev/slipway/internal/apps/slipway/config"
	"github.com/tidewater-dev/slipway/internal/archive"
	"github.com/tidewater-dev/slipway/internal/cachemap"
	"github.com/tidewater-dev/slipway/internal/logs"
	"github.com/tidewater-dev/slipway/internal/runtime"
	"github.com/tidewater-dev/slipway/internal/semver"
	"github.com/tidewater-dev/slipway/internal/state"
	"github.com/tidewater-dev/slipway/internal/storage"
	"github.com/spf13/cobra"
)

type packOptions struct {
	Bucket  string
	Version string
	Publish bool
}

func newPackCmd() *cobra.Command {
	opts := &packOptions{}

	cmd := &cobra.Command{
		Use:   "pack [PATH]",
		Short: "Package build output into a versioned artifact",
		Long: `Tar and compress the bucket's build output into
<project>-<version>-<bucket>-<yyyymmdd>.tar.gz under the scratch directory,
optionally publishing it to the configured object-storage bucket.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.FromContextOrPanic(cmd.Context())
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runPack(rt, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Bucket whose output to package (default: first configured)")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Release version for the artifact name (e.g. 1.2.3)")
	cmd.Flags().BoolVar(&opts.Publish, "publish", false, "Upload the artifact to the configured storage bucket")

	return cmd
}

func runPack(rt *runtime.Runtime, path string, opts *packOptions) error {
	ctx := rt.Ctx()

	proj, err := rt.ResolveProject(path)
	if err != nil {
		return err
	}

	cfg, err := hostappconfig.LoadProjectConfig(proj.Root)
	if err != nil {
		return err
	}

	bucket := opts.Bucket
	if bucket == "" {
		bucket = cfg.Platforms[0].Bucket
	}
	if _, ok := cfg.PlatformByBucket(bucket); !ok {
		return fmt.Errorf("bucket %q is not configured in %s", bucket, hostappconfig.ProjectConfigFileName)
	}

	ver := opts.Version
	if ver == "" {
		return fmt.Errorf("--version is required (the tag being packaged)")
	}
	if _, err := semver.Parse(ver); err != nil {
		return err
	}

	cacheDir, err := cachemap.CacheDir(proj.Root, bucket)
	if err != nil {
		return err
	}
	outDir := filepath.Join(cacheDir, cachemap.BuildDirName, cfg.Configuration)

	name := archive.ArtifactName(proj.Name, ver, bucket, time.Now())
	dest := filepath.Join(hostappconfig.ScratchPath(), name)
	if err := archive.Create(dest, []string{outDir}); err != nil {
		return err
	}
	logs.Infof("packaged %s", dest)

	uri := ""
	if opts.Publish {
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("no storage bucket configured in %s", hostappconfig.ProjectConfigFileName)
		}
		pub, err := storage.NewGCSPublisher(ctx, cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err != nil {
			return err
		}
		defer pub.Close()

		uri, err = pub.Publish(ctx, dest, name)
		if err != nil {
			return err
		}
		logs.Infof("published %s", uri)
	}

	store, err := state.DefaultReleaseStore(ctx)
	if err != nil {
		return err
	}
	artifact := name
	if uri != "" {
		artifact = uri
	}
	return store.Record(ctx, state.Release{
		Project:  proj.Name,
		Tag:      ver,
		Bucket:   bucket,
		Artifact: artifact,
	})
}
