// Package client is the Go client for the daemon's control API.
//
// It is consumed by the CLI subcommands and is deliberately thin: every
// method maps to exactly one endpoint, reuses the wire types from the api
// package, and reports non-200 answers as *APIError so callers can
// distinguish "the daemon said no" from "the daemon is unreachable".
package client
