// Package reconciler keeps the running streams in sync with the media
// directory.
//
// A perpetual loop snapshots the directory on a fixed cadence and diffs the
// filename set against the previous snapshot: files that appeared are
// cataloged and auto-started, files that disappeared are stopped and evicted.
// Removals are applied before additions so a rename hands its id over
// cleanly within one cycle. On a slower independent cadence the loop sweeps
// the supervisor for processes that exited on their own.
//
// Change detection is by filename only. Modification times are captured in
// the snapshot but never compared, so a file replaced in place under the
// same name is not treated as changed. Polling is the authoritative
// mechanism because network filesystems deliver no change events; the
// optional fsnotify Watcher merely kicks the loop to run a cycle early.
//
// Scan errors and per-stream failures are logged and absorbed. The loop is
// expected to run for the daemon's entire lifetime and never terminates on
// its own; only context cancellation stops it.
package reconciler
