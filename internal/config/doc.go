// Package config provides configuration management for streamd.
//
// This package implements a simple configuration system that loads
// configuration from a single directory. The default configuration directory
// is ~/.config/streamd, but users can specify a custom directory using the
// --config-path flag in commands.
//
// # Precedence
//
// Configuration is resolved in three layers, lowest to highest:
//   - Built-in defaults (GetDefaultConfig)
//   - config.yaml in the configuration directory, if present
//   - Environment variables
//
// The environment layer exists because streamd is normally deployed as a
// container whose contract is environment-driven; the file layer is a
// convenience for local runs.
//
// # Environment Variables
//
//   - STREAM_MEDIA_DIR: directory watched for media files
//   - STREAM_TOOL: external streaming command
//   - CONTAINER_NAME: public hostname for delivery URLs (required)
//   - LOG_LEVEL: debug, info, warn, error
//   - STREAM_API_PORT: control API listen port
//   - MEDIAMTX_RTSP_PORT: media server RTSP port
//   - STREAM_WATCH_EVENTS: enable the fsnotify reconcile accelerator
//
// # Configuration Structure
//
// The configuration file uses YAML format:
//
//	mediaDir: /app/videos      # Directory watched for media files
//	tool: stream-video.sh      # External streaming command
//	hostname: demo-box         # Public hostname for delivery URLs
//	logLevel: info             # debug, info, warn, error
//	api:
//	  host: 0.0.0.0            # Control API bind address
//	  port: 8080               # Control API listen port
//	rtsp:
//	  port: 8554               # Media server RTSP port
//	reconcile:
//	  watchEvents: false       # fsnotify accelerator (polling stays on)
//
// # Usage Examples
//
//	// Load configuration from default location
//	cfg, err := config.LoadConfig(config.GetDefaultConfigPathOrPanic())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Access API configuration
//	fmt.Printf("Control API on %s\n", cfg.ListenAddr())
package config
