// Package probe waits for the co-located media server to accept connections.
package probe

import (
	"context"
	"net"
	"time"

	"streamd/pkg/logging"
)

const (
	// DialTimeout bounds a single connection attempt.
	DialTimeout = time.Second

	// RetryInterval is the pause between failed attempts.
	RetryInterval = time.Second
)

// WaitTCP blocks until addr accepts a TCP connection, retrying indefinitely.
// Startup is meant to stall here until the media server is up, so there is
// no attempt limit; only ctx cancellation aborts the wait.
func WaitTCP(ctx context.Context, addr string) error {
	return waitTCP(ctx, addr, DialTimeout, RetryInterval)
}

func waitTCP(ctx context.Context, addr string, dialTimeout, retry time.Duration) error {
	dialer := &net.Dialer{Timeout: dialTimeout}

	for {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logging.Debug("Probe", "Endpoint %s not ready: %v", addr, err)

		select {
		case <-time.After(retry):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
