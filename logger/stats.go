package logger

import "sync/atomic"

// Stats tracks emission counters. Emit-time failures are swallowed by
// policy, so these counters are the only in-process trace of them.
type Stats struct {
	emitted       atomic.Uint64
	queueDropped  atomic.Uint64
	writeFailures atomic.Uint64
}

// Snapshot is a consistent-enough copy of the counters.
type Snapshot struct {
	// Emitted counts lines successfully written to the sink.
	Emitted uint64
	// QueueDropped counts records dropped because the async queue was full.
	QueueDropped uint64
	// WriteFailures counts sink writes that failed after configuration.
	WriteFailures uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Emitted:       s.emitted.Load(),
		QueueDropped:  s.queueDropped.Load(),
		WriteFailures: s.writeFailures.Load(),
	}
}
