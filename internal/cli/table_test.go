package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"streamd/internal/api"
	"streamd/internal/reconciler"
)

func TestRenderStreamsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderStreams(&buf, nil)
	assert.Contains(t, buf.String(), "No streams found")
}

func TestRenderStreams(t *testing.T) {
	var buf bytes.Buffer
	RenderStreams(&buf, []api.StreamStatus{
		{
			ID:          "city",
			SourcePath:  "/app/videos/city.mp4",
			Running:     false,
			RepeatCount: 2,
			DeliveryURL: "rtsp://media-box:8554/city",
		},
		{
			ID:          "ocean",
			SourcePath:  "/app/videos/" + strings.Repeat("very-long-name-", 8) + ".mp4",
			Running:     true,
			RepeatCount: -1,
			PID:         4242,
			DeliveryURL: "rtsp://media-box:8554/ocean",
		},
	})

	out := buf.String()
	assert.Contains(t, out, "city")
	assert.Contains(t, out, "ocean")
	assert.Contains(t, out, "Running")
	assert.Contains(t, out, "Stopped")
	assert.Contains(t, out, "infinite")
	assert.Contains(t, out, "4242")
	assert.Contains(t, out, "rtsp://media-box:8554/ocean")

	// The endless source path is truncated, not printed in full.
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("very-long-name-", 8))
}

func TestRenderDaemonStatus(t *testing.T) {
	var buf bytes.Buffer
	RenderDaemonStatus(&buf, &api.DaemonStatus{
		Hostname:  "media-box",
		MediaDir:  "/app/videos",
		Cataloged: 3,
		Running:   2,
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Reconciler: reconciler.MetricsSummary{
			Cycles:     120,
			ScanErrors: 1,
			Collisions: 2,
			Reaped:     3,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "media-box")
	assert.Contains(t, out, "/app/videos")
	assert.Contains(t, out, "Reconcile cycles")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "2025-06-01 12:00:00")
}

func TestRenderRepeatCount(t *testing.T) {
	assert.Equal(t, "infinite", renderRepeatCount(-1))
	assert.Equal(t, "0", renderRepeatCount(0))
	assert.Equal(t, "9", renderRepeatCount(9))
}

func TestRenderPID(t *testing.T) {
	assert.Equal(t, "-", renderPID(0))
	assert.Equal(t, "4242", renderPID(4242))
}
