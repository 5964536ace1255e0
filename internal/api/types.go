package api

import (
	"time"

	"streamd/internal/reconciler"
)

// StreamStatus is the wire form of one stream in list responses.
type StreamStatus struct {
	// ID is the canonical stream id, as it appears in the delivery URL.
	ID string `json:"id"`

	// SourcePath is the media file backing the stream.
	SourcePath string `json:"sourcePath"`

	// Running reports whether a worker process currently exists.
	Running bool `json:"running"`

	// RepeatCount is the count the stream was last started with, or will
	// be started with next. -1 repeats forever.
	RepeatCount int `json:"repeatCount"`

	// PID and StartedAt describe the worker process and are only set
	// while the stream is running.
	PID       int       `json:"pid,omitempty"`
	StartedAt time.Time `json:"startedAt,omitzero"`

	// DeliveryURL is where players can consume the stream.
	DeliveryURL string `json:"deliveryUrl"`
}

// DaemonStatus is the wire form of GET /api/status.
type DaemonStatus struct {
	Hostname   string                    `json:"hostname"`
	MediaDir   string                    `json:"mediaDir"`
	Cataloged  int                       `json:"cataloged"`
	Running    int                       `json:"running"`
	StartedAt  time.Time                 `json:"startedAt"`
	Reconciler reconciler.MetricsSummary `json:"reconciler"`
}

// ActionResponse acknowledges a start/stop request. Success is false when
// the stream was not in a state to honor it, for example stopping a stream
// that is not running.
type ActionResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of every non-200 answer.
type ErrorResponse struct {
	Error string `json:"error"`
}
