// Package catalog tracks the media available for streaming.
//
// The catalog is the single point of truth for "which streams exist and what
// should each be run with". It is populated by directory scans and holds one
// entry per canonical stream id: the backing file and the repeat count last
// used for it. Whether a stream is actually running is tracked elsewhere, by
// the supervisor.
//
// Entries live exactly as long as their backing file: discovery inserts,
// file removal evicts, and eviction discards the remembered repeat count so a
// re-added file starts from the default again.
package catalog
