// Package core defines the shared types used across the hostlog module.
//
// It provides the Severity type for threshold filtering, the Record type
// that represents a single log event, and the Origin type describing the
// call site a record was produced from.
//
// Record objects are pooled via sync.Pool to keep the hot path
// allocation-free. Callers get a Record with GetRecord and must
// return it with PutRecord once the sink has consumed it.
//
// Severity ranks run most-severe-first: Error is rank 0 and Trace is
// rank 4. A record passes a threshold when its rank is less than or
// equal to the threshold's rank, so Error always passes and Trace only
// passes when the threshold is explicitly Trace.
package core
