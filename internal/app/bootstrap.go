package app

import (
	"fmt"
	"os"

	"streamd/internal/api"
	"streamd/internal/catalog"
	"streamd/internal/config"
	"streamd/internal/reconciler"
	"streamd/internal/supervisor"
	"streamd/pkg/logging"
)

// Application owns every long-lived component of the daemon.
type Application struct {
	config     *Config
	catalog    *catalog.Catalog
	supervisor *supervisor.Supervisor
	reconciler *reconciler.Reconciler
	watcher    *reconciler.Watcher
	server     *api.Server
}

// NewApplication loads the configuration and constructs the daemon. It
// returns an error when the configuration cannot be loaded or fails
// validation; a missing hostname is the canonical fatal case.
func NewApplication(cfg *Config) (*Application, error) {
	// Baseline logging so configuration loading can already report. The
	// configured level is applied right after the load.
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stdout)

	configDir := cfg.ConfigPath
	if configDir == "" {
		configDir = config.GetDefaultConfigPathOrPanic()
	}

	streamdCfg, err := config.LoadConfig(configDir)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// The --debug flag outranks both the file and the environment, and
	// also surfaces the streaming tool's own output.
	if cfg.Debug {
		streamdCfg.LogLevel = "debug"
	}
	logging.Init(logging.ParseLevel(streamdCfg.LogLevel), os.Stdout)

	if err := streamdCfg.Validate(); err != nil {
		logging.Error("Bootstrap", err, "Invalid configuration")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Streamd = &streamdCfg

	cat := catalog.New()
	sup := supervisor.New(&supervisor.ExecRunner{
		Tool:    streamdCfg.Tool,
		Verbose: streamdCfg.Verbose(),
	}, streamdCfg.Supervisor.StopGrace)
	rec := reconciler.New(reconciler.Config{
		Dir:          streamdCfg.MediaDir,
		PollInterval: streamdCfg.Reconcile.PollInterval,
		ReapInterval: streamdCfg.Reconcile.ReapInterval,
		DeliveryURL:  streamdCfg.DeliveryURL,
	}, cat, sup)

	var watcher *reconciler.Watcher
	if streamdCfg.Reconcile.WatchEvents {
		watcher = reconciler.NewWatcher(streamdCfg.MediaDir, rec.Kick)
	}

	return &Application{
		config:     cfg,
		catalog:    cat,
		supervisor: sup,
		reconciler: rec,
		watcher:    watcher,
		server:     api.NewServer(cfg.Streamd, cat, sup, rec.Metrics()),
	}, nil
}
