package cmd

import (
	"streamd/internal/cli"

	"github.com/spf13/cobra"
)

var (
	startAllQuiet    bool
	startAllEndpoint string
)

// startAllCmd represents the start-all command.
var startAllCmd = &cobra.Command{
	Use:   "start-all",
	Short: "Start every stream that is not running",
	Long: `Starts a worker for every cataloged stream that does not have one,
each with its cataloged repeat count. Streams already running are left
alone.

Examples:
  streamd start-all`,
	Args: cobra.NoArgs,
	RunE: runStartAll,
}

func runStartAll(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewExecutor(cli.ExecutorOptions{
		Endpoint: startAllEndpoint,
		Quiet:    startAllQuiet,
	})
	if err != nil {
		return err
	}

	return executor.StartAll(cmd.Context())
}

func init() {
	rootCmd.AddCommand(startAllCmd)

	startAllCmd.Flags().BoolVarP(&startAllQuiet, "quiet", "q", false, "Suppress non-essential output")
	startAllCmd.Flags().StringVar(&startAllEndpoint, "endpoint", cli.ResolveEndpoint(""), "Daemon control API endpoint URL (env: STREAMD_ENDPOINT)")
}
