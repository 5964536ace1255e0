package cmd

import (
	"context"
	"fmt"

	"streamd/internal/app"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the daemon, including the
// streaming tool's own output.
var serveDebug bool

// serveConfigPath specifies a custom configuration directory. When set, the
// daemon loads config.yaml from this directory instead of the user default.
var serveConfigPath string

// serveCmd defines the serve command. This is the main command of streamd:
// it starts the daemon that supervises one streaming worker per media file.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the streamd daemon",
	Long: `Runs the streamd daemon. It waits for the co-located RTSP server to
accept connections, then keeps one streaming worker running per media file
and serves the control API and status panel.

Configuration comes from config.yaml in the configuration directory,
overridden by environment variables (CONTAINER_NAME, STREAM_MEDIA_DIR,
STREAM_TOOL, LOG_LEVEL, STREAM_API_PORT, MEDIAMTX_RTSP_PORT,
STREAM_WATCH_EVENTS). CONTAINER_NAME or a configured hostname is required;
it names this host in the delivery URLs handed to viewers.

The daemon runs until SIGINT or SIGTERM and stops every worker on the way
out.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(serveDebug, serveConfigPath)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging and streaming tool output")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Custom configuration directory path")
}
