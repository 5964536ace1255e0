package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"streamd/internal/api"
	"streamd/internal/client"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a human-readable table.
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as raw JSON data.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML data.
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat validates that the given format string is a supported
// output format.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %q (valid: table, json, yaml)", format)
	}
}

// EndpointEnvVar is the environment variable name for setting the default
// endpoint.
const EndpointEnvVar = "STREAMD_ENDPOINT"

// DefaultEndpoint is where the daemon listens when nothing else is
// configured.
const DefaultEndpoint = "http://localhost:8080"

// ResolveEndpoint picks the daemon endpoint: the flag value wins, then the
// environment, then the default.
func ResolveEndpoint(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EndpointEnvVar); env != "" {
		return env
	}
	return DefaultEndpoint
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	// Endpoint is the daemon's control API; empty means resolve from the
	// environment or default.
	Endpoint string
	// Format is the output format for inspection commands.
	Format string
	// Quiet disables the progress spinner.
	Quiet bool
}

// Executor runs one CLI command against the daemon and renders the result.
type Executor struct {
	client *client.Client
	format OutputFormat
	quiet  bool
	out    io.Writer
}

// NewExecutor creates an executor from the command's flags.
func NewExecutor(opts ExecutorOptions) (*Executor, error) {
	format := opts.Format
	if format == "" {
		format = string(OutputFormatTable)
	}
	if err := ValidateOutputFormat(format); err != nil {
		return nil, err
	}

	return &Executor{
		client: client.New(ResolveEndpoint(opts.Endpoint)),
		format: OutputFormat(format),
		quiet:  opts.Quiet,
		out:    os.Stdout,
	}, nil
}

// statusView is the combined payload of the status command.
type statusView struct {
	Daemon  *api.DaemonStatus  `json:"daemon" yaml:"daemon"`
	Streams []api.StreamStatus `json:"streams" yaml:"streams"`
}

// Status fetches the stream inventory and daemon health and renders them in
// the configured format.
func (e *Executor) Status(ctx context.Context) error {
	spin := e.startSpinner(" Fetching status...")

	daemon, err := e.client.Status(ctx)
	if err != nil {
		e.failSpinner(spin, "Failed to reach daemon")
		return err
	}
	streams, err := e.client.Streams(ctx)
	if err != nil {
		e.failSpinner(spin, "Failed to reach daemon")
		return err
	}
	e.stopSpinner(spin)

	view := statusView{Daemon: daemon, Streams: streams}
	switch e.format {
	case OutputFormatJSON:
		return e.printJSON(view)
	case OutputFormatYAML:
		return e.printYAML(view)
	default:
		RenderStreams(e.out, streams)
		fmt.Fprintln(e.out)
		RenderDaemonStatus(e.out, daemon)
		return nil
	}
}

// Start (re)starts one stream with the given repeat count and echoes its
// delivery URL.
func (e *Executor) Start(ctx context.Context, id string, repeatCount int) error {
	spin := e.startSpinner(fmt.Sprintf(" Starting stream %s...", id))

	ok, err := e.client.Start(ctx, id, repeatCount)
	if err != nil {
		e.failSpinner(spin, "Failed to start stream")
		return err
	}
	e.stopSpinner(spin)

	if !ok {
		return fmt.Errorf("stream %s could not be started, check the daemon logs", id)
	}

	fmt.Fprintf(e.out, "%s\n", text.FgGreen.Sprintf("Started stream %s", id))
	if url := e.deliveryURL(ctx, id); url != "" {
		fmt.Fprintf(e.out, "Now playing %s\n", url)
	}
	return nil
}

// Stop stops one stream. Stopping a stream that is not running is reported
// but is not an error.
func (e *Executor) Stop(ctx context.Context, id string) error {
	spin := e.startSpinner(fmt.Sprintf(" Stopping stream %s...", id))

	ok, err := e.client.Stop(ctx, id)
	if err != nil {
		e.failSpinner(spin, "Failed to stop stream")
		return err
	}
	e.stopSpinner(spin)

	if !ok {
		fmt.Fprintf(e.out, "Stream %s was not running\n", id)
		return nil
	}
	fmt.Fprintf(e.out, "%s\n", text.FgGreen.Sprintf("Stopped stream %s", id))
	return nil
}

// StartAll starts every stopped stream.
func (e *Executor) StartAll(ctx context.Context) error {
	spin := e.startSpinner(" Starting all streams...")

	if err := e.client.StartAll(ctx); err != nil {
		e.failSpinner(spin, "Failed to start streams")
		return err
	}
	e.stopSpinner(spin)

	fmt.Fprintf(e.out, "%s\n", text.FgGreen.Sprint("Started all streams"))
	return nil
}

// StopAll stops every running stream.
func (e *Executor) StopAll(ctx context.Context) error {
	spin := e.startSpinner(" Stopping all streams...")

	if err := e.client.StopAll(ctx); err != nil {
		e.failSpinner(spin, "Failed to stop streams")
		return err
	}
	e.stopSpinner(spin)

	fmt.Fprintf(e.out, "%s\n", text.FgGreen.Sprint("Stopped all streams"))
	return nil
}

// deliveryURL looks up the delivery URL for id, best effort.
func (e *Executor) deliveryURL(ctx context.Context, id string) string {
	streams, err := e.client.Streams(ctx)
	if err != nil {
		return ""
	}
	for _, s := range streams {
		if s.ID == id {
			return s.DeliveryURL
		}
	}
	return ""
}

func (e *Executor) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format JSON output: %w", err)
	}
	fmt.Fprintln(e.out, string(data))
	return nil
}

func (e *Executor) printYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to format YAML output: %w", err)
	}
	fmt.Fprint(e.out, string(data))
	return nil
}

func (e *Executor) startSpinner(suffix string) *spinner.Spinner {
	if e.quiet {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = suffix
	s.Start()
	return s
}

func (e *Executor) stopSpinner(s *spinner.Spinner) {
	if s != nil {
		s.Stop()
	}
}

func (e *Executor) failSpinner(s *spinner.Spinner, msg string) {
	if s == nil {
		return
	}
	s.FinalMSG = text.FgRed.Sprint(msg) + "\n"
	s.Stop()
}
