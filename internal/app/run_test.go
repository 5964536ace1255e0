package app

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"streamd/internal/config"
)

// reservePort finds a free TCP port by binding and releasing it. The port
// can in principle be taken again before the test binds it, but local test
// runs do not contend for ephemeral ports.
func reservePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestRunStopsOnContextCancel(t *testing.T) {
	clearEnv(t)

	// Fake media server so the startup probe succeeds immediately.
	rtsp, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer rtsp.Close()

	t.Setenv(config.EnvHostname, "media-box")
	t.Setenv(config.EnvMediaDir, t.TempDir())
	t.Setenv(config.EnvRTSPPort, strconv.Itoa(rtsp.Addr().(*net.TCPAddr).Port))
	t.Setenv(config.EnvAPIPort, strconv.Itoa(reservePort(t)))

	app, err := NewApplication(NewConfig(false, t.TempDir()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("daemon did not shut down after cancellation")
	}

	require.Zero(t, app.supervisor.Len())
}

func TestRunAbortsWhenProbeCancelled(t *testing.T) {
	clearEnv(t)

	// Nothing listens on the probed port, so Run stalls in the probe.
	t.Setenv(config.EnvHostname, "media-box")
	t.Setenv(config.EnvMediaDir, t.TempDir())
	t.Setenv(config.EnvRTSPPort, strconv.Itoa(reservePort(t)))
	t.Setenv(config.EnvAPIPort, strconv.Itoa(reservePort(t)))

	app, err := NewApplication(NewConfig(false, t.TempDir()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		require.Contains(t, err.Error(), "waiting for media server")
	case <-time.After(10 * time.Second):
		t.Fatal("probe did not abort after cancellation")
	}
}
