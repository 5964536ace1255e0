package catalog

import (
	"sort"
	"sync"
)

// InfiniteRepeat is the repeat count sentinel for streams that play forever.
const InfiniteRepeat = -1

// Entry describes one piece of available media: the canonical stream id, the
// file backing it, and the repeat count last used to play it. RepeatCount
// survives stop/start of the same id but is discarded with the entry when the
// backing file disappears.
type Entry struct {
	ID          string
	SourcePath  string
	RepeatCount int
}

// Catalog is the desired-state table: every id that currently has a backing
// file, with its launch parameters. It says nothing about whether a stream is
// actually running; that belongs to the supervisor.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]Entry),
	}
}

// Upsert inserts an entry for id or refreshes its source path. The repeat
// count of an existing entry is preserved; a new entry starts at
// InfiniteRepeat. Returns the resulting entry.
func (c *Catalog) Upsert(id, sourcePath string) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[id]
	if !exists {
		entry = Entry{ID: id, RepeatCount: InfiniteRepeat}
	}
	entry.SourcePath = sourcePath
	c.entries[id] = entry
	return entry
}

// SetRepeatCount records the repeat count last chosen for id. Returns false
// if the id is not cataloged.
func (c *Catalog) SetRepeatCount(id string, repeatCount int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[id]
	if !exists {
		return false
	}
	entry.RepeatCount = repeatCount
	c.entries[id] = entry
	return true
}

// Remove evicts the entry for id unconditionally. Evicting an absent id is a
// no-op.
func (c *Catalog) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
}

// Get returns the entry for id.
func (c *Catalog) Get(id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[id]
	return entry, exists
}

// All returns a snapshot of every entry, sorted by id. Mutating the returned
// slice does not affect the catalog.
func (c *Catalog) All() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// Len returns the number of cataloged entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
