package core

import (
	"fmt"
	"strings"
)

// Severity represents the severity of a log record. Ranks run
// most-severe-first: smaller rank means more severe.
type Severity int8

const (
	// ErrorSeverity for failures that need operator attention.
	ErrorSeverity Severity = iota
	// WarnSeverity for unexpected but recoverable conditions.
	WarnSeverity
	// InfoSeverity for general informational messages (default threshold).
	InfoSeverity
	// DebugSeverity for detailed debugging information.
	DebugSeverity
	// TraceSeverity for very fine-grained tracing.
	TraceSeverity
)

// String returns the upper-case name of the severity as it appears in
// rendered log lines.
func (s Severity) String() string {
	switch s {
	case ErrorSeverity:
		return "ERROR"
	case WarnSeverity:
		return "WARN"
	case InfoSeverity:
		return "INFO"
	case DebugSeverity:
		return "DEBUG"
	case TraceSeverity:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Enabled reports whether a record of this severity passes the given
// threshold. Comparison is by rank only: Enabled is true iff the
// severity is at least as severe as the threshold.
func (s Severity) Enabled(threshold Severity) bool {
	return s <= threshold
}

// Valid reports whether s is one of the five known severities.
func (s Severity) Valid() bool {
	return s >= ErrorSeverity && s <= TraceSeverity
}

// ParseSeverity converts a string to a Severity. Matching is
// case-insensitive and accepts "Warning" as an alias for Warn.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(s) {
	case "ERROR":
		return ErrorSeverity, nil
	case "WARN", "WARNING":
		return WarnSeverity, nil
	case "INFO":
		return InfoSeverity, nil
	case "DEBUG":
		return DebugSeverity, nil
	case "TRACE":
		return TraceSeverity, nil
	default:
		return InfoSeverity, fmt.Errorf("unknown severity %q", s)
	}
}

// SeverityFromName maps a rendered level name (upper-case, as produced
// by String) back to its Severity. The second return is false for
// anything that is not one of the five known names; unlike
// ParseSeverity it does not accept aliases or mixed case, since
// rendered lines only ever carry the canonical names.
func SeverityFromName(name string) (Severity, bool) {
	switch name {
	case "ERROR":
		return ErrorSeverity, true
	case "WARN":
		return WarnSeverity, true
	case "INFO":
		return InfoSeverity, true
	case "DEBUG":
		return DebugSeverity, true
	case "TRACE":
		return TraceSeverity, true
	}
	return 0, false
}
