package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"streamd/pkg/logging"
)

// watchDebounce coalesces bursts of filesystem events (a copy in progress
// emits many) into a single kick.
const watchDebounce = 500 * time.Millisecond

// Watcher kicks the reconcile loop when the media directory changes, so new
// media starts streaming without waiting out a poll interval. It is a
// latency optimization only: polling stays authoritative, and directories
// that deliver no events (NFS, some bind mounts) simply never kick.
type Watcher struct {
	dir      string
	debounce time.Duration
	kick     func()
}

// NewWatcher creates a watcher over dir that calls kick after changes
// settle.
func NewWatcher(dir string, kick func()) *Watcher {
	return &Watcher{
		dir:      dir,
		debounce: watchDebounce,
		kick:     kick,
	}
}

// Run watches the directory until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logging.Info("Watcher", "Watching %s for media changes", w.dir)

	settle := time.NewTimer(w.debounce)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only events that can change the filename set matter; writes
			// to an existing file do not.
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logging.Debug("Watcher", "Filesystem event: %s", event)
			settle.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("Watcher", "Filesystem watcher error: %v", err)

		case <-settle.C:
			w.kick()
		}
	}
}
