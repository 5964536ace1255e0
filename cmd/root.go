package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the streamd application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "streamd",
	Short: "Stream every media file in a directory as its own RTSP feed",
	Long: `streamd watches a media directory and keeps one streaming worker
running per file, publishing each to the co-located RTSP server under a
name derived from the filename. Files appear, streams start; files
disappear, streams stop.

'streamd serve' runs the daemon. The other commands talk to a running
daemon over its control API.`,
	// SilenceUsage prevents Cobra from printing the usage message on
	// errors the application already reports.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. This is called from the
// main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application. It is called by
// main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "streamd version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
