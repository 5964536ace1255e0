package supervisor

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"streamd/pkg/logging"

	"github.com/moby/locker"
)

var (
	// ErrAlreadyRunning is returned by Start when a worker for the id
	// already exists. Callers that want restart semantics must stop first
	// or use Restart.
	ErrAlreadyRunning = errors.New("stream already running")

	// ErrNotRunning is returned by Stop when no worker exists for the id.
	ErrNotRunning = errors.New("stream not running")
)

// Record is the externally visible state of one supervised worker.
type Record struct {
	ID          string
	SourcePath  string
	RepeatCount int
	PID         int
	StartedAt   time.Time
}

// worker pairs a record with the process handle behind it.
type worker struct {
	Record
	handle Handle
}

// Supervisor owns the mapping from stream id to live worker process and
// guarantees at most one process per id. All mutating operations on the same
// id are serialized through a named lock; operations on different ids run in
// parallel.
//
// The supervisor only believes a worker dead once Stop confirmed it or Reap
// observed it; a crashed process keeps its record until the next reap sweep.
type Supervisor struct {
	runner    Runner
	stopGrace time.Duration

	locks *locker.Locker

	mu      sync.RWMutex
	workers map[string]*worker
}

// New creates a supervisor that launches workers through runner and gives
// them stopGrace to exit before killing.
func New(runner Runner, stopGrace time.Duration) *Supervisor {
	return &Supervisor{
		runner:    runner,
		stopGrace: stopGrace,
		locks:     locker.New(),
		workers:   make(map[string]*worker),
	}
}

// Start launches a worker for id unless one already exists. It returns
// ErrAlreadyRunning for a duplicate id and the spawn error when the tool
// could not be launched; in both cases no record is created.
func (s *Supervisor) Start(id, sourcePath string, repeatCount int) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	return s.startLocked(id, sourcePath, repeatCount)
}

// Stop terminates the worker for id: graceful signal, bounded grace period,
// forced kill, then blocks until the process exit is confirmed. The record
// is removed even when termination misbehaves, so a stale "running" belief
// can never outlive this call. Returns ErrNotRunning if no worker exists.
func (s *Supervisor) Stop(id string) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	return s.stopLocked(id)
}

// Restart stops the worker for id if one is running and starts it again with
// the given parameters. The whole sequence holds the id lock once, so no
// competing start can slip between the stop and the start.
func (s *Supervisor) Restart(id, sourcePath string, repeatCount int) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if err := s.stopLocked(id); err != nil && !errors.Is(err, ErrNotRunning) {
		return err
	}
	return s.startLocked(id, sourcePath, repeatCount)
}

// Reap removes the records of workers whose process exited on its own and
// returns their ids. This is the only path by which the supervisor learns of
// unsolicited death, so it must be invoked periodically.
func (s *Supervisor) Reap() []string {
	s.mu.RLock()
	candidates := make(map[string]*worker, len(s.workers))
	for id, w := range s.workers {
		if w.handle.Exited() {
			candidates[id] = w
		}
	}
	s.mu.RUnlock()

	var reaped []string
	for id, observed := range candidates {
		s.locks.Lock(id)
		s.mu.Lock()
		// A concurrent stop or restart may have replaced the worker
		// since the snapshot; only remove the one we observed dead.
		if current, exists := s.workers[id]; exists && current == observed {
			delete(s.workers, id)
			reaped = append(reaped, id)
			logging.Info("Supervisor", "Process ended: %s (pid %d)", id, observed.PID)
		}
		s.mu.Unlock()
		s.locks.Unlock(id)
	}

	sort.Strings(reaped)
	return reaped
}

// IsRunning reports whether a worker record exists for id. A crashed process
// still counts as running until a reap sweep absorbs it.
func (s *Supervisor) IsRunning(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.workers[id]
	return exists
}

// Snapshot returns the current worker records, sorted by id.
func (s *Supervisor) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.workers))
	for _, w := range s.workers {
		records = append(records, w.Record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records
}

// Len returns the number of supervised workers.
func (s *Supervisor) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.workers)
}

// StopAll stops every supervised worker and returns how many were stopped.
func (s *Supervisor) StopAll() int {
	stopped := 0
	for _, record := range s.Snapshot() {
		if err := s.Stop(record.ID); err == nil {
			stopped++
		}
	}
	return stopped
}

func (s *Supervisor) startLocked(id, sourcePath string, repeatCount int) error {
	s.mu.RLock()
	_, exists := s.workers[id]
	s.mu.RUnlock()
	if exists {
		logging.Debug("Supervisor", "Stream already running: %s", id)
		return ErrAlreadyRunning
	}

	handle, err := s.runner.Run(sourcePath, id, repeatCount)
	if err != nil {
		logging.Error("Supervisor", err, "Failed to start stream %s", id)
		return fmt.Errorf("failed to start stream %s: %w", id, err)
	}

	s.mu.Lock()
	s.workers[id] = &worker{
		Record: Record{
			ID:          id,
			SourcePath:  sourcePath,
			RepeatCount: repeatCount,
			PID:         handle.PID(),
			StartedAt:   time.Now(),
		},
		handle: handle,
	}
	s.mu.Unlock()

	logging.Info("Supervisor", "Started stream %s (pid %d, repeat %d)", id, handle.PID(), repeatCount)
	return nil
}

func (s *Supervisor) stopLocked(id string) error {
	s.mu.RLock()
	w, exists := s.workers[id]
	s.mu.RUnlock()
	if !exists {
		logging.Debug("Supervisor", "Stream not found: %s", id)
		return ErrNotRunning
	}

	// The record stays visible while the process is shutting down and is
	// removed only afterwards, whether or not termination went cleanly.
	s.terminate(w)

	s.mu.Lock()
	delete(s.workers, id)
	s.mu.Unlock()

	logging.Info("Supervisor", "Stopped stream: %s", id)
	return nil
}

// terminate drives one worker to a confirmed exit. Signal errors are logged
// rather than returned; the caller has already removed the record.
func (s *Supervisor) terminate(w *worker) {
	h := w.handle
	if h.Exited() {
		return
	}

	if err := h.Terminate(); err != nil && !h.Exited() {
		logging.Warn("Supervisor", "Failed to signal stream %s: %v", w.ID, err)
	}

	select {
	case <-h.Done():
		return
	case <-time.After(s.stopGrace):
	}

	logging.Warn("Supervisor", "Stream %s did not exit within %s, killing", w.ID, s.stopGrace)
	if err := h.Kill(); err != nil && !h.Exited() {
		logging.Error("Supervisor", err, "Failed to kill stream %s", w.ID)
	}
	<-h.Done()
}
