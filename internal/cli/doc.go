// Package cli implements the user-facing behavior of the control
// subcommands: endpoint resolution, output formatting, and progress
// feedback.
//
// The cmd package parses flags and delegates here; this package talks to
// the daemon through the client package and renders the result as a table
// (default), JSON, or YAML. A spinner signals in-flight requests unless
// quiet mode is on.
package cli
