// Package supervisor manages the external streaming tool processes.
//
// The supervisor is the single point of truth for "which streams are actually
// running". It keeps one record per live worker process and enforces the
// core invariant: at most one process per stream id, under any interleaving
// of concurrent callers. Same-id operations are serialized through named
// locks; different ids proceed in parallel.
//
// Process death is observed, never pushed. A worker that exits on its own
// (crash, or a finite repeat count running out) keeps its record until the
// next Reap sweep collects it. Stop is the only synchronous path: graceful
// signal, bounded grace, forced kill, confirmed exit, in that order.
//
// The actual launch is behind the Runner interface so tests can substitute
// fake processes; production uses ExecRunner, which execs the configured
// streaming tool with the source path, id, and repeat count.
package supervisor
