package config

import (
	"fmt"
	"time"
)

// Config is the top-level configuration structure for streamd.
type Config struct {
	// MediaDir is the directory watched for media files. Every regular,
	// non-hidden file directly under it is eligible stream content.
	MediaDir string `yaml:"mediaDir,omitempty"`

	// Tool is the external streaming command. It is invoked with three
	// positional arguments: source path, stream id, repeat count.
	Tool string `yaml:"tool,omitempty"`

	// Hostname is the public name used to build delivery URLs. Required;
	// startup fails without it.
	Hostname string `yaml:"hostname,omitempty"`

	// LogLevel is one of debug, info, warn, error. Debug also surfaces
	// the streaming tool's own output.
	LogLevel string `yaml:"logLevel,omitempty"`

	API        APIConfig        `yaml:"api,omitempty"`
	RTSP       RTSPConfig       `yaml:"rtsp,omitempty"`
	Reconcile  ReconcileConfig  `yaml:"reconcile,omitempty"`
	Supervisor SupervisorConfig `yaml:"supervisor,omitempty"`
}

// APIConfig defines the HTTP control API listener.
type APIConfig struct {
	Host string `yaml:"host,omitempty"` // Bind address (default: 0.0.0.0)
	Port int    `yaml:"port,omitempty"` // Listen port (default: 8080)
}

// RTSPConfig describes the co-located media server the streaming tool
// publishes to.
type RTSPConfig struct {
	Port int `yaml:"port,omitempty"` // RTSP port (default: 8554)
}

// ReconcileConfig tunes the reconciliation loop. The intervals are fixed
// operational constants and are not part of the file surface; they exist on
// the struct so tests can shorten them.
type ReconcileConfig struct {
	// WatchEvents enables the fsnotify accelerator that kicks a
	// reconciliation cycle early when the media directory changes.
	// Polling remains the authoritative mechanism either way, because
	// network filesystems do not deliver change events.
	WatchEvents bool `yaml:"watchEvents,omitempty"`

	PollInterval time.Duration `yaml:"-"`
	ReapInterval time.Duration `yaml:"-"`
}

// SupervisorConfig tunes worker process termination.
type SupervisorConfig struct {
	// StopGrace is how long a worker gets to exit after a graceful
	// termination request before it is killed.
	StopGrace time.Duration `yaml:"-"`
}

// DeliveryURL returns the public URL a stream with the given id is served at.
func (c Config) DeliveryURL(id string) string {
	return fmt.Sprintf("rtsp://%s:%d/%s", c.Hostname, c.RTSP.Port, id)
}

// ProbeAddr returns the dial address used to wait for the media server.
func (c Config) ProbeAddr() string {
	return fmt.Sprintf("localhost:%d", c.RTSP.Port)
}

// ListenAddr returns the control API bind address.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// Verbose reports whether debug verbosity is enabled.
func (c Config) Verbose() bool {
	return c.LogLevel == "debug"
}
