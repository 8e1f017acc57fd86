package cmd

import (
	"context"
	"fmt"

	"github.com/penwyp/pushnote/internal/git"
	"github.com/spf13/cobra"
)

func newPushCommand() *cobra.Command {
	var opts git.PushOptions

	cmd := &cobra.Command{
		Use:   "push [remote] [branch]",
		Short: "Push the current branch and summarize the result",
		Long: `Push a branch to a remote. Without arguments the current branch is pushed
to the configured default remote, "origin", or the only remote.

An upstream is set automatically when the branch has none.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Remote = argOr(args, 0, appConfig.DefaultRemote)
			opts.Branch = argOr(args, 1, "")

			label := "Pushing…"
			if opts.Branch != "" {
				label = fmt.Sprintf("Pushing %s…", opts.Branch)
			}
			executor := newExecutor()
			return runOperation(cmd, label, func(ctx context.Context) (*git.Completed, error) {
				return executor.Push(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.SetUpstream, "set-upstream", "u", false, "always set the upstream branch")
	cmd.Flags().BoolVar(&opts.ForceWithLease, "force-with-lease", false, "force push unless the remote ref changed")
	return cmd
}

func newPullCommand() *cobra.Command {
	var opts git.PullOptions

	cmd := &cobra.Command{
		Use:   "pull [remote]",
		Short: "Pull the current branch and summarize the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Remote = argOr(args, 0, appConfig.DefaultRemote)

			executor := newExecutor()
			return runOperation(cmd, "Pulling…", func(ctx context.Context) (*git.Completed, error) {
				return executor.Pull(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Rebase, "rebase", "r", false, "rebase instead of merge")
	return cmd
}

func newFetchCommand() *cobra.Command {
	var opts git.FetchOptions

	cmd := &cobra.Command{
		Use:   "fetch [remote]",
		Short: "Fetch from a remote and summarize the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.All && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with a remote name")
			}
			opts.Remote = argOr(args, 0, appConfig.DefaultRemote)

			executor := newExecutor()
			return runOperation(cmd, "Fetching…", func(ctx context.Context) (*git.Completed, error) {
				return executor.Fetch(ctx, opts)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "fetch all remotes")
	cmd.Flags().BoolVarP(&opts.Prune, "prune", "p", false, "remove remote-tracking refs that no longer exist")
	return cmd
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}
