package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"streamd/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/streamd"
	configFileName = "config.yaml"
)

// Environment variables recognized by streamd. They override both the
// defaults and anything loaded from config.yaml.
const (
	EnvMediaDir    = "STREAM_MEDIA_DIR"
	EnvTool        = "STREAM_TOOL"
	EnvHostname    = "CONTAINER_NAME"
	EnvLogLevel    = "LOG_LEVEL"
	EnvAPIPort     = "STREAM_API_PORT"
	EnvRTSPPort    = "MEDIAMTX_RTSP_PORT"
	EnvWatchEvents = "STREAM_WATCH_EVENTS"
)

func GetDefaultConfigPathOrPanic() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}

	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads configuration from a single specified directory.
// Precedence, lowest to highest: built-in defaults, config.yaml in the
// directory, environment variables.
func LoadConfig(configPath string) (Config, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "Error loading config.yaml from %s: %s", configFilePath, err)
			return Config{}, err
		}
		logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
	} else {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", configFilePath)
	}

	if err := applyEnv(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// applyEnv overlays recognized environment variables onto config.
func applyEnv(config *Config) error {
	if v := os.Getenv(EnvMediaDir); v != "" {
		config.MediaDir = v
	}
	if v := os.Getenv(EnvTool); v != "" {
		config.Tool = v
	}
	if v := os.Getenv(EnvHostname); v != "" {
		config.Hostname = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvAPIPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAPIPort, v, err)
		}
		config.API.Port = port
	}
	if v := os.Getenv(EnvRTSPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRTSPPort, v, err)
		}
		config.RTSP.Port = port
	}
	if v := os.Getenv(EnvWatchEvents); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWatchEvents, v, err)
		}
		config.Reconcile.WatchEvents = enabled
	}
	return nil
}
