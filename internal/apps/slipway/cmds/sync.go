package slipway

import (
	"github.com/tidewater-dev/slipway/internal/checkouts"
	"github.com/tidewater-dev/slipway/internal/fsops"
	"github.com/tidewater-dev/slipway/internal/logs"
	"github.com/tidewater-dev/slipway/internal/runtime"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [PATH]",
		Short: "Normalize dependency checkouts for IDE use",
		Long: `Give every versioned dependency checkout a stable version-less symlink
and rewrite IDE project references to point at it, so project files stay
valid across dependency updates. Safe to re-run; re-running is also the
recovery path after a partial failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.FromContextOrPanic(cmd.Context())
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runSync(rt, path)
		},
	}

	return cmd
}

func runSync(rt *runtime.Runtime, path string) error {
	proj, err := rt.ResolveProject(path)
	if err != nil {
		return err
	}

	n := checkouts.New()
	results, err := n.Sync(proj.Root, checkouts.NewTextualRewriter(fsops.DefaultOps()))
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.LinkCreated:
			logs.Infof("%s -> %s (%d references rewritten)", r.Alias, r.Checkout, r.ReferencesReplaced)
		case r.ReferencesReplaced > 0:
			logs.Infof("%s already linked (%d references rewritten)", r.Alias, r.ReferencesReplaced)
		default:
			logs.Debugf("%s already linked, no references left to rewrite", r.Alias)
		}
	}
	logs.Infof("synced %d checkouts", len(results))
	return nil
}
