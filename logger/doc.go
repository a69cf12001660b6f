// Package logger implements the process-wide logging service of a
// virtualization host.
//
// A Logger owns the active sink, the severity threshold, and the
// level/origin display toggles. Configuration is published as an
// immutable snapshot behind an atomic pointer: every emit reads one
// consistent snapshot, and Configure replaces the snapshot wholesale
// rather than mutating fields in place.
//
// Before Configure succeeds, lines go to stderr. Configure opens a
// pre-existing file or named pipe; when the open fails the previous
// configuration stays in effect and the error is returned to the
// caller. Emit-time write failures are never surfaced to callers:
// logging is best-effort and must not destabilize the workload. Such
// failures are only counted, in Stats and in the Prometheus counters
// of the metrics package.
//
// An optional bounded queue decouples producers from a slow sink
// (typically a pipe with a lagging reader). When the queue is full
// new records are dropped rather than blocking the producer.
package logger
