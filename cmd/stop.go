package cmd

import (
	"streamd/internal/cli"

	"github.com/spf13/cobra"
)

var (
	stopQuiet    bool
	stopEndpoint string
)

// stopCmd represents the stop command.
var stopCmd = &cobra.Command{
	Use:   "stop <stream-id>",
	Short: "Stop a stream",
	Long: `Stops the stream with the given id. The file stays cataloged, so the
stream can be started again later; remove the file to retire it for good.

Examples:
  streamd stop big_buck_bunny`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeStreamIDs(cmd, stopEndpoint, toComplete)
	},
	RunE: runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewExecutor(cli.ExecutorOptions{
		Endpoint: stopEndpoint,
		Quiet:    stopQuiet,
	})
	if err != nil {
		return err
	}

	return executor.Stop(cmd.Context(), args[0])
}

func init() {
	rootCmd.AddCommand(stopCmd)

	stopCmd.Flags().BoolVarP(&stopQuiet, "quiet", "q", false, "Suppress non-essential output")
	stopCmd.Flags().StringVar(&stopEndpoint, "endpoint", cli.ResolveEndpoint(""), "Daemon control API endpoint URL (env: STREAMD_ENDPOINT)")
}
