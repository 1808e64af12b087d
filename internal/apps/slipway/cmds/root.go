package slipway

import (
	"github.com/tidewater-dev/slipway/internal/logs"
	"github.com/tidewater-dev/slipway/internal/runtime"
	"github.com/spf13/cobra"
)

var verbosity int

func Execute(rt *runtime.Runtime) error {
	rootCmd := &cobra.Command{
		Use:   "slipway",
		Short: "Containerized builds with persistent caches and remote releases",
		Long: `slipway runs your project's build inside a container, keeps incremental
build state in per-platform cache buckets, normalizes dependency checkouts
for IDE use, and cuts verified release tags.`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logs.SetDebugVerbosity(verbosity)
			return nil
		},
		// we will handle that
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity level")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newReleaseCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newPackCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd.ExecuteContext(rt.Ctx())
}
