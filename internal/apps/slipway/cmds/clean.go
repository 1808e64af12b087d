package slipway

import (
	"fmt"
	"os"
	"path/filepath"

	hostappconfig "github.com/tidewater-dev/slipway/internal/apps/slipway/config"
	"github.com/tidewater-dev/slipway/internal/cachemap"
	"github.com/tidewater-dev/slipway/internal/logs"
	"github.com/tidewater-dev/slipway/internal/runtime"
	"github.com/spf13/cobra"
)

type cleanOptions struct {
	Bucket string
	Caches bool
	Output bool
	All    bool
}

func newCleanCmd() *cobra.Command {
	opts := &cleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean [PATH]",
		Short: "Remove build output and cache buckets",
		Long: `Remove build state for the project.

By default, '--all' is implied, which removes the build output and every
cache bucket. Use flags to be more granular.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.FromContextOrPanic(cmd.Context())
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runClean(rt, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Remove one cache bucket only")
	cmd.Flags().BoolVar(&opts.Caches, "caches", false, "Remove cache buckets")
	cmd.Flags().BoolVar(&opts.Output, "output", false, "Remove build output")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Remove everything (default behavior)")

	return cmd
}

func runClean(rt *runtime.Runtime, path string, opts *cleanOptions) error {
	proj, err := rt.ResolveProject(path)
	if err != nil {
		return err
	}

	cfg, err := hostappconfig.LoadProjectConfig(proj.Root)
	if err != nil {
		return err
	}

	if opts.Bucket != "" {
		dir := filepath.Join(cachemap.CachesRoot(proj.Root), opts.Bucket)
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("clean bucket %s: %w", opts.Bucket, err)
		}
		logs.Infof("removed cache bucket %s", opts.Bucket)
		return nil
	}

	if !opts.Caches && !opts.Output && !opts.All {
		opts.All = true
	}
	if opts.All {
		opts.Caches = true
		opts.Output = true
	}

	if opts.Caches {
		if err := os.RemoveAll(cachemap.CachesRoot(proj.Root)); err != nil {
			return fmt.Errorf("clean caches: %w", err)
		}
		logs.Infof("removed cache buckets")
	}
	if opts.Output {
		outDir := filepath.Join(proj.Root, cachemap.BuildDirName, cfg.Configuration)
		if err := os.RemoveAll(outDir); err != nil {
			return fmt.Errorf("clean output: %w", err)
		}
		manifest := filepath.Join(proj.Root, cachemap.BuildDirName, cfg.Configuration+".yaml")
		if err := os.Remove(manifest); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clean output: %w", err)
		}
		logs.Infof("removed %s output", cfg.Configuration)
	}
	return nil
}
