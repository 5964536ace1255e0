package reconciler

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"time"

	"streamd/internal/catalog"
	"streamd/internal/naming"
	"streamd/internal/supervisor"
	"streamd/pkg/logging"
)

// Config carries the fixed parameters of the reconcile loop.
type Config struct {
	// Dir is the media directory to reconcile against.
	Dir string

	// PollInterval is the cadence of directory scans.
	PollInterval time.Duration

	// ReapInterval is the cadence of dead-process sweeps.
	ReapInterval time.Duration

	// DeliveryURL renders the public playback URL for a stream id. It is
	// only used for operator-facing log lines.
	DeliveryURL func(id string) string
}

// Reconciler drives the catalog and supervisor toward the contents of the
// media directory. All state transitions happen on the loop goroutine; the
// only concurrent entry point is Kick.
type Reconciler struct {
	cfg     Config
	catalog *catalog.Catalog
	sup     *supervisor.Supervisor
	metrics *Metrics

	kick chan struct{}

	// seen is the filename snapshot from the last successful scan. It is
	// owned by the loop goroutine and deliberately unguarded.
	seen map[string]time.Time
}

// New creates a reconciler over the given catalog and supervisor.
func New(cfg Config, cat *catalog.Catalog, sup *supervisor.Supervisor) *Reconciler {
	return &Reconciler{
		cfg:     cfg,
		catalog: cat,
		sup:     sup,
		metrics: NewMetrics(),
		kick:    make(chan struct{}, 1),
		seen:    make(map[string]time.Time),
	}
}

// Run executes the reconcile loop until ctx is canceled. The first cycle
// runs immediately so media present at startup begins streaming without
// waiting out a poll interval.
func (r *Reconciler) Run(ctx context.Context) error {
	logging.Info("Reconciler", "Reconciling %s every %s, reaping every %s",
		r.cfg.Dir, r.cfg.PollInterval, r.cfg.ReapInterval)

	poll := time.NewTicker(r.cfg.PollInterval)
	defer poll.Stop()
	reap := time.NewTicker(r.cfg.ReapInterval)
	defer reap.Stop()

	r.cycle()
	logging.Info("Reconciler", "Initial sync complete: %d streams started", r.sup.Len())

	for {
		select {
		case <-ctx.Done():
			logging.Info("Reconciler", "Reconciler stopped")
			return ctx.Err()
		case <-poll.C:
			r.cycle()
		case <-r.kick:
			r.cycle()
		case <-reap.C:
			r.reapExited()
		}
	}
}

// Kick requests an immediate reconcile cycle, ahead of the next poll tick.
// It never blocks; kicks arriving while one is already pending coalesce.
func (r *Reconciler) Kick() {
	r.metrics.RecordKick()
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Metrics exposes the loop's activity counters.
func (r *Reconciler) Metrics() *Metrics {
	return r.metrics
}

// cycle scans the media directory and applies the filename diff against the
// previous snapshot. Removals are applied before additions so that a rename
// frees its stream id within the same cycle. A failed scan leaves all state
// untouched; the next cycle diffs against the last good snapshot.
func (r *Reconciler) cycle() {
	begin := time.Now()

	files, err := catalog.Scan(r.cfg.Dir)
	if err != nil {
		r.metrics.RecordScanError()
		logging.Error("Reconciler", err, "Scan failed, keeping previous state")
		return
	}

	var removed []string
	for name := range r.seen {
		if _, ok := files[name]; !ok {
			removed = append(removed, name)
		}
	}
	sort.Strings(removed)
	for _, name := range removed {
		r.applyRemoval(name)
	}

	var added []string
	for name := range files {
		if _, ok := r.seen[name]; !ok {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	for _, name := range added {
		r.applyAddition(name)
	}

	r.seen = files
	r.metrics.RecordCycle(time.Since(begin))
}

// applyRemoval stops and evicts the stream backed by the vanished file. The
// eviction is unconditional even when the stop fails: a file that no longer
// exists must not stay advertised. Launch parameters go with the entry, so a
// later re-add starts over with defaults.
func (r *Reconciler) applyRemoval(name string) {
	id := naming.Normalize(name)
	if id == "" {
		return
	}

	entry, ok := r.catalog.Get(id)
	if !ok || filepath.Base(entry.SourcePath) != name {
		// The file never owned the id (it lost a collision), so there is
		// nothing to stop.
		return
	}

	logging.Info("Reconciler", "Media file %s removed, stopping stream %s", name, id)
	if err := r.sup.Stop(id); err != nil && !errors.Is(err, supervisor.ErrNotRunning) {
		logging.Error("Reconciler", err, "Failed to stop stream %s", id)
	}
	r.catalog.Remove(id)
	r.metrics.RecordRemoval()
}

// applyAddition catalogs the new file and starts its stream. When two files
// normalize to the same id the earlier one (lexicographically, since
// additions are applied in sorted order) keeps it and the newcomer is
// skipped until it is renamed or the holder disappears.
func (r *Reconciler) applyAddition(name string) {
	id := naming.Normalize(name)
	if id == "" {
		logging.Warn("Reconciler", "Ignoring %s: name normalizes to an empty stream id", name)
		return
	}

	if entry, ok := r.catalog.Get(id); ok && filepath.Base(entry.SourcePath) != name {
		r.metrics.RecordCollision()
		logging.Error("Reconciler", nil, "Stream id %s is already backed by %s, skipping %s; rename the file to stream it",
			id, filepath.Base(entry.SourcePath), name)
		return
	}

	entry := r.catalog.Upsert(id, filepath.Join(r.cfg.Dir, name))
	r.metrics.RecordDiscovery()
	logging.Info("Reconciler", "Discovered %s, starting stream %s", name, id)

	if err := r.sup.Start(entry.ID, entry.SourcePath, entry.RepeatCount); err != nil {
		logging.Error("Reconciler", err, "Failed to start stream %s", id)
		return
	}
	logging.Info("Reconciler", "Now playing %s", r.cfg.DeliveryURL(id))
}

// reapExited sweeps the supervisor for processes that ended on their own,
// typically streams with a finite repeat count that finished playback. Their
// catalog entries survive so the streams stay listed and restartable.
func (r *Reconciler) reapExited() {
	reaped := r.sup.Reap()
	for _, id := range reaped {
		logging.Info("Reconciler", "Stream %s exited on its own", id)
	}
	if len(reaped) > 0 {
		r.metrics.RecordReaped(len(reaped))
	}
}
