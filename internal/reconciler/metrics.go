package reconciler

import (
	"sync"
	"time"
)

// Metrics tracks reconcile-loop activity for the status endpoint.
//
// The counters give operators visibility into loop health: a climbing
// scanErrors means the media directory is unreadable, collisions means
// files are shadowing each other, and a stale lastCycleAt means the loop
// is wedged.
type Metrics struct {
	mu sync.Mutex

	cycles      int64
	kicks       int64
	scanErrors  int64
	discovered  int64
	removed     int64
	reaped      int64
	collisions  int64
	lastCycleAt time.Time
	lastCycle   time.Duration
}

// MetricsSummary is a point-in-time view of the reconcile counters.
type MetricsSummary struct {
	Cycles          int64     `json:"cycles"`
	Kicks           int64     `json:"kicks"`
	ScanErrors      int64     `json:"scanErrors"`
	Discovered      int64     `json:"discovered"`
	Removed         int64     `json:"removed"`
	Reaped          int64     `json:"reaped"`
	Collisions      int64     `json:"collisions"`
	LastCycleAt     time.Time `json:"lastCycleAt,omitzero"`
	LastCycleMillis int64     `json:"lastCycleMillis"`
}

// NewMetrics creates a zeroed metrics set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordCycle records a completed reconcile cycle and its duration.
func (m *Metrics) RecordCycle(took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cycles++
	m.lastCycleAt = time.Now()
	m.lastCycle = took
}

// RecordKick records an out-of-band cycle request.
func (m *Metrics) RecordKick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.kicks++
}

// RecordScanError records a failed directory scan.
func (m *Metrics) RecordScanError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanErrors++
}

// RecordDiscovery records a newly cataloged media file.
func (m *Metrics) RecordDiscovery() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.discovered++
}

// RecordRemoval records an evicted stream.
func (m *Metrics) RecordRemoval() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removed++
}

// RecordReaped records n workers collected after exiting on their own.
func (m *Metrics) RecordReaped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reaped += int64(n)
}

// RecordCollision records a file skipped because its id was taken.
func (m *Metrics) RecordCollision() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.collisions++
}

// Summary returns a consistent snapshot of all counters.
func (m *Metrics) Summary() MetricsSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	return MetricsSummary{
		Cycles:          m.cycles,
		Kicks:           m.kicks,
		ScanErrors:      m.scanErrors,
		Discovered:      m.discovered,
		Removed:         m.removed,
		Reaped:          m.reaped,
		Collisions:      m.collisions,
		LastCycleAt:     m.lastCycleAt,
		LastCycleMillis: m.lastCycle.Milliseconds(),
	}
}
