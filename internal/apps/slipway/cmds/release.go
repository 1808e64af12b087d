package slipway

import (
	"fmt"

	"github.com/tidewater-dev/slipway/internal/gitver"
	"github.com/tidewater-dev/slipway/internal/logs"
	"github.com/tidewater-dev/slipway/internal/release"
	"github.com/tidewater-dev/slipway/internal/runtime"
	"github.com/tidewater-dev/slipway/internal/semver"
	"github.com/tidewater-dev/slipway/internal/state"
	"github.com/spf13/cobra"
)

type releaseOptions struct {
	Component string
	Bucket    string
	Initial   string
	Yes       bool
	History   bool
}

func newReleaseCmd() *cobra.Command {
	opts := &releaseOptions{}

	cmd := &cobra.Command{
		Use:   "release [PATH]",
		Short: "Cut the next release tag and push it",
		Long: `Select the highest valid version tag, increment the requested component,
create and push the new tag, and verify against the remote that it landed.
Every cut is recorded in the local release history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.FromContextOrPanic(cmd.Context())
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runRelease(rt, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Component, "component", "patch", "Version component to increment (major, minor, patch)")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Bucket to record this release under")
	cmd.Flags().StringVar(&opts.Initial, "initial", "", "Version to use when no valid tag exists yet (e.g. 0.1.0)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Assume yes on prompts")
	cmd.Flags().BoolVar(&opts.History, "history", false, "Show locally recorded releases instead of cutting one")

	return cmd
}

func runRelease(rt *runtime.Runtime, path string, opts *releaseOptions) error {
	ctx := rt.Ctx()

	proj, err := rt.ResolveProject(path)
	if err != nil {
		return err
	}

	store, err := state.DefaultReleaseStore(ctx)
	if err != nil {
		return err
	}

	if opts.History {
		return printHistory(rt, proj.Name, store)
	}

	component, err := semver.ParseComponent(opts.Component)
	if err != nil {
		return err
	}

	w := &release.Workflow{
		Tags:  gitver.NewCLI(),
		Store: store,
	}
	if !opts.Yes {
		w.Confirm = func(prompt string) bool {
			ok, err := logs.PromptConfirm(prompt)
			return err == nil && ok
		}
	}
	if opts.Initial != "" {
		initial, err := semver.Parse(opts.Initial)
		if err != nil {
			return err
		}
		w.Initial = &initial
	}

	res, err := w.Run(ctx, proj.Root, proj.Name, opts.Bucket, component)
	if err != nil {
		return err
	}

	if res.FirstRelease {
		logs.Infof("released %s (first release)", res.Next)
	} else {
		logs.Infof("released %s (was %s)", res.Next, res.Previous)
	}
	return nil
}

func printHistory(rt *runtime.Runtime, project string, store *state.ReleaseStore) error {
	history, err := store.History(rt.Ctx(), project)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Printf("no recorded releases for %s\n", project)
		return nil
	}
	for _, r := range history {
		line := fmt.Sprintf("%s  %s", r.PublishedAt.Format("2006-01-02 15:04"), r.Tag)
		if r.Bucket != "" {
			line += "  " + r.Bucket
		}
		if r.Artifact != "" {
			line += "  " + r.Artifact
		}
		fmt.Println(line)
	}
	return nil
}
