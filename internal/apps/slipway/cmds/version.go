package slipway

import (
	"fmt"

	"github.com/tidewater-dev/slipway/internal/version"
	"github.com/tidewater-dev/slipway/internal/versioncheck"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of slipway",
		Long:  `Display the current version of slipway.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", version.Get())
			if check {
				versioncheck.PrintUpdateBanner(versioncheck.Check(cmd.Context()))
			}
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Check for a newer release")

	return cmd
}
