package app

import "streamd/internal/config"

// Config holds the application bootstrap options.
type Config struct {
	// Debug forces debug logging regardless of the configured level.
	Debug bool

	// ConfigPath overrides the directory searched for config.yaml. Empty
	// means the user's default configuration directory.
	ConfigPath string

	// Streamd is the loaded daemon configuration, populated during
	// bootstrap.
	Streamd *config.Config
}

// NewConfig creates a new application configuration.
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
