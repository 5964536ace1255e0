// Package api serves the HTTP control surface of the daemon.
//
// It exposes the stream inventory and manual start/stop controls as a small
// JSON API, plus an embedded single-page control panel for browsers:
//
//	GET  /                            control panel
//	GET  /api/streams                 list all streams with their state
//	GET  /api/status                  daemon and reconcile-loop health
//	POST /api/streams/{id}/start      (re)start one stream, ?repeat=N
//	POST /api/streams/{id}/stop       stop one stream
//	POST /api/streams/start-all       start every stopped stream
//	POST /api/streams/stop-all        stop every running stream
//
// Every JSON response carries a permissive CORS header so the panel can be
// served from elsewhere during development. Action endpoints report business
// outcomes in the body ("success": false means the stream was not in a state
// to honor the request) and reserve non-200 statuses for requests that are
// themselves invalid.
//
// The API mutates only through the catalog and supervisor, never behind
// their backs, so manual actions and the reconcile loop cannot corrupt each
// other.
package api
