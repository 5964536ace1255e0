package config

import "time"

const (
	// DefaultMediaDir is the directory scanned for media files.
	DefaultMediaDir = "/app/videos"

	// DefaultTool is the external streaming command.
	DefaultTool = "stream-video.sh"

	// DefaultAPIHost is the control API bind address.
	DefaultAPIHost = "0.0.0.0"

	// DefaultAPIPort is the control API listen port.
	DefaultAPIPort = 8080

	// DefaultRTSPPort is the media server's RTSP port.
	DefaultRTSPPort = 8554

	// DefaultPollInterval is the reconciliation cadence.
	DefaultPollInterval = 2 * time.Second

	// DefaultReapInterval is how often dead-process bookkeeping is swept.
	DefaultReapInterval = 30 * time.Second

	// DefaultStopGrace is the graceful termination window before a kill.
	DefaultStopGrace = 5 * time.Second
)

// GetDefaultConfig returns the default configuration for streamd.
func GetDefaultConfig() Config {
	return Config{
		MediaDir: DefaultMediaDir,
		Tool:     DefaultTool,
		LogLevel: "info",
		API: APIConfig{
			Host: DefaultAPIHost,
			Port: DefaultAPIPort,
		},
		RTSP: RTSPConfig{
			Port: DefaultRTSPPort,
		},
		Reconcile: ReconcileConfig{
			WatchEvents:  false,
			PollInterval: DefaultPollInterval,
			ReapInterval: DefaultReapInterval,
		},
		Supervisor: SupervisorConfig{
			StopGrace: DefaultStopGrace,
		},
	}
}
