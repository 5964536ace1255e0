// Package app wires the streamd daemon together.
//
// Bootstrap happens in two phases. NewApplication loads and validates the
// configuration and constructs every component: the stream catalog, the
// worker supervisor, the reconciliation loop, the optional filesystem
// watcher, and the control API server. Run then blocks until the media
// server accepts connections, starts the long-running loops, and keeps them
// up until a shutdown signal arrives, stopping every stream worker on the
// way out.
package app
