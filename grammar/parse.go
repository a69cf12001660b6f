package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vhostd/hostlog/core"
)

// FormatError reports a line that does not conform to the grammar.
type FormatError struct {
	Line   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed log line: %s", e.Reason)
}

func formatErr(line, format string, args ...interface{}) error {
	return &FormatError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// Parse is the inverse of Render. The caller must pass the same
// Options the line was rendered with; the tag's arity is positional
// and nothing in the line marks which optional fields are present.
//
// Parse fails with a *FormatError when the timestamp does not match
// the fixed digit widths, when the tag is missing a bracket or a
// mandatory field, when a present level is not one of the five known
// names, when a present line number is not purely numeric, when a
// date or time component is out of range, or when the timestamp lies
// in the future at the moment of observation.
func Parse(line string, opts Options) (*core.Record, error) {
	ts, rest, found := strings.Cut(line, " ")
	if !found {
		return nil, formatErr(line, "missing tag after timestamp")
	}

	when, err := parseTimestamp(line, ts)
	if err != nil {
		return nil, err
	}
	if when.After(time.Now()) {
		return nil, formatErr(line, "timestamp %s lies in the future", ts)
	}

	tag, msg, found := strings.Cut(rest, " ")
	if !found {
		msg = ""
	}
	if len(tag) < 2 || tag[0] != '[' || tag[len(tag)-1] != ']' {
		return nil, formatErr(line, "tag %q is not bracketed", tag)
	}

	rec := &core.Record{Time: when, Message: msg}
	fields := strings.Split(tag[1:len(tag)-1], ":")
	if len(fields) < 2 {
		return nil, formatErr(line, "tag has %d fields, need at least instance and thread", len(fields))
	}
	rec.InstanceID = fields[0]
	rec.ThreadName = fields[1]
	fields = fields[2:]

	if opts.ShowLevel {
		if len(fields) == 0 {
			return nil, formatErr(line, "tag is missing the level field")
		}
		sev, ok := core.SeverityFromName(fields[0])
		if !ok {
			return nil, formatErr(line, "unknown level %q", fields[0])
		}
		rec.Severity = sev
		fields = fields[1:]
	}

	if opts.ShowOrigin {
		if len(fields) < 2 {
			return nil, formatErr(line, "tag is missing the origin fields")
		}
		// File paths may themselves contain colons; the line number is
		// always the final field.
		lineField := fields[len(fields)-1]
		n, err := parseLineNumber(lineField)
		if err != nil {
			return nil, formatErr(line, "origin line %q is not numeric", lineField)
		}
		rec.Origin = core.Origin{
			File:    strings.Join(fields[:len(fields)-1], ":"),
			Line:    n,
			Defined: true,
		}
		fields = nil
	}

	if len(fields) != 0 {
		return nil, formatErr(line, "tag has %d unexpected trailing fields", len(fields))
	}
	return rec, nil
}

// parseTimestamp validates the exact digit widths of the timestamp
// grammar and converts it to a UTC instant. The year is variable
// width; every other component is fixed.
func parseTimestamp(line, ts string) (time.Time, error) {
	date, clock, found := strings.Cut(ts, "T")
	if !found {
		return time.Time{}, formatErr(line, "timestamp %q has no date/time separator", ts)
	}

	dateParts := strings.Split(date, "-")
	if len(dateParts) != 3 {
		return time.Time{}, formatErr(line, "timestamp date %q is not year-month-day", date)
	}
	if len(dateParts[0]) == 0 || len(dateParts[1]) != 2 || len(dateParts[2]) != 2 {
		return time.Time{}, formatErr(line, "timestamp date %q has wrong field widths", date)
	}

	clockParts := strings.Split(clock, ":")
	if len(clockParts) != 3 {
		return time.Time{}, formatErr(line, "timestamp time %q is not hour:minute:second", clock)
	}
	sec, nanos, found := strings.Cut(clockParts[2], ".")
	if !found {
		return time.Time{}, formatErr(line, "timestamp %q has no fractional seconds", ts)
	}
	if len(clockParts[0]) != 2 || len(clockParts[1]) != 2 || len(sec) != 2 || len(nanos) != 9 {
		return time.Time{}, formatErr(line, "timestamp time %q has wrong field widths", clock)
	}

	nums := make([]int, 0, 7)
	for _, part := range []string{dateParts[0], dateParts[1], dateParts[2], clockParts[0], clockParts[1], sec, nanos} {
		n, err := parseDigits(part)
		if err != nil {
			return time.Time{}, formatErr(line, "timestamp %q contains a non-digit", ts)
		}
		nums = append(nums, n)
	}

	// time.Date normalizes out-of-range components instead of failing,
	// so month 00 or second 61 would silently shift the instant. A
	// round trip through the accessors detects any normalization.
	when := time.Date(nums[0], time.Month(nums[1]), nums[2], nums[3], nums[4], nums[5], nums[6], time.UTC)
	if when.Year() != nums[0] || int(when.Month()) != nums[1] || when.Day() != nums[2] ||
		when.Hour() != nums[3] || when.Minute() != nums[4] || when.Second() != nums[5] {
		return time.Time{}, formatErr(line, "timestamp %q has an out-of-range component", ts)
	}
	return when, nil
}

// parseDigits is a strict base-10 conversion: every byte must be a
// digit. strconv.Atoi is too permissive here (it accepts signs).
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// parseLineNumber accepts unsigned decimal with no leading zeros, the
// only form Render produces.
func parseLineNumber(s string) (int, error) {
	if len(s) > 1 && s[0] == '0' {
		return 0, strconv.ErrSyntax
	}
	return parseDigits(s)
}
