// Package logging provides a structured logging system for streamd with unified
// log handling and level filtering.
//
// This package implements a logging system built on Go's standard slog package,
// providing consistent logging behavior with structured output and level filtering.
//
// # Architecture
//
// The logging system is built around these core concepts:
//
// ## Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues
//   - **Error**: Error messages for failures and exceptional conditions
//
// ## Structured Logging
// All log entries include:
//   - Timestamp
//   - Log level (Debug, Info, Warn, Error)
//   - Subsystem identifier for categorization
//   - Message content with optional formatting
//   - Optional error information
//
// # Usage Examples
//
// ## Initialization
//
//	import "streamd/pkg/logging"
//
//	// Initialize with Info level logging to stdout
//	logging.Init(logging.LevelInfo, os.Stdout)
//
//	// Log messages
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("ConfigLoader", "Loaded configuration from %s", configPath)
//	logging.Warn("Reconciler", "Media directory scan failed, skipping cycle")
//	logging.Error("Supervisor", err, "Failed to start worker %s", id)
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Bootstrap**: Application initialization and startup
//   - **App**: Daemon lifecycle, from probe wait to shutdown
//   - **ConfigLoader**: Configuration loading and validation
//   - **Supervisor**: Worker process lifecycle management
//   - **Reconciler**: Media directory reconciliation cycles
//   - **Watcher**: Filesystem event accelerator
//   - **API**: HTTP control API operations
//   - **Probe**: Readiness probing of the media server
//
// # Integration with slog
//
// The logging system integrates with Go's standard slog package:
//   - Uses slog.Handler implementations for output formatting
//   - Converts custom LogLevel to slog.Level for compatibility
//   - Provides fallback to global slog logger when needed
//
// # Thread Safety
//
// The logging system is fully thread-safe:
//   - Safe concurrent logging from multiple goroutines
//   - No data races in configuration
package logging
