package cmd

import (
	"context"
	"strings"
	"time"

	"streamd/internal/cli"
	"streamd/internal/client"

	"github.com/spf13/cobra"
)

var (
	startQuiet    bool
	startEndpoint string
	startRepeat   int
)

// completeStreamIDs offers the daemon's stream ids for shell completion.
// Completion must not hang when the daemon is down, hence the short timeout.
func completeStreamIDs(cmd *cobra.Command, endpoint, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	streams, err := client.New(cli.ResolveEndpoint(endpoint)).Streams(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var ids []string
	for _, s := range streams {
		if strings.HasPrefix(s.ID, toComplete) {
			ids = append(ids, s.ID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start <stream-id>",
	Short: "Start a stream",
	Long: `Starts the stream with the given id, restarting its worker when one is
already running. The repeat count applies to this run only: -1 loops the
file forever, N plays it N+1 times and then lets the worker exit.

Examples:
  streamd start big_buck_bunny
  streamd start big_buck_bunny --repeat 2`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeStreamIDs(cmd, startEndpoint, toComplete)
	},
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewExecutor(cli.ExecutorOptions{
		Endpoint: startEndpoint,
		Quiet:    startQuiet,
	})
	if err != nil {
		return err
	}

	return executor.Start(cmd.Context(), args[0], startRepeat)
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().IntVar(&startRepeat, "repeat", -1, "Extra plays after the first (-1 loops forever)")
	startCmd.Flags().BoolVarP(&startQuiet, "quiet", "q", false, "Suppress non-essential output")
	startCmd.Flags().StringVar(&startEndpoint, "endpoint", cli.ResolveEndpoint(""), "Daemon control API endpoint URL (env: STREAMD_ENDPOINT)")
}
