package cmd

import (
	"streamd/internal/cli"

	"github.com/spf13/cobra"
)

var (
	statusOutputFormat string
	statusQuiet        bool
	statusEndpoint     string
)

// statusCmd shows the daemon's status and the full stream table.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status and all streams",
	Long: `Shows every cataloged stream (state, repeat count, worker PID, delivery
URL) followed by the daemon's own status and reconciliation counters.

Examples:
  streamd status
  streamd status -o json
  streamd status --endpoint http://media-box:8080`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	executor, err := cli.NewExecutor(cli.ExecutorOptions{
		Endpoint: statusEndpoint,
		Format:   statusOutputFormat,
		Quiet:    statusQuiet,
	})
	if err != nil {
		return err
	}

	return executor.Status(cmd.Context())
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	statusCmd.Flags().BoolVarP(&statusQuiet, "quiet", "q", false, "Suppress non-essential output")
	statusCmd.Flags().StringVar(&statusEndpoint, "endpoint", cli.ResolveEndpoint(""), "Daemon control API endpoint URL (env: STREAMD_ENDPOINT)")
}
