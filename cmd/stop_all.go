package cmd

import (
	"streamd/internal/cli"

	"github.com/spf13/cobra"
)

var (
	stopAllQuiet    bool
	stopAllEndpoint string
)

// stopAllCmd represents the stop-all command.
var stopAllCmd = &cobra.Command{
	Use:   "stop-all",
	Short: "Stop every running stream",
	Long: `Stops every running stream worker. The files stay cataloged, so
'streamd start-all' brings everything back.

Examples:
  streamd stop-all`,
	Args: cobra.NoArgs,
	RunE: runStopAll,
}

func runStopAll(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewExecutor(cli.ExecutorOptions{
		Endpoint: stopAllEndpoint,
		Quiet:    stopAllQuiet,
	})
	if err != nil {
		return err
	}

	return executor.StopAll(cmd.Context())
}

func init() {
	rootCmd.AddCommand(stopAllCmd)

	stopAllCmd.Flags().BoolVarP(&stopAllQuiet, "quiet", "q", false, "Suppress non-essential output")
	stopAllCmd.Flags().StringVar(&stopAllEndpoint, "endpoint", cli.ResolveEndpoint(""), "Daemon control API endpoint URL (env: STREAMD_ENDPOINT)")
}
