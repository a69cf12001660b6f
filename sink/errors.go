package sink

import (
	"errors"
	"fmt"
	"syscall"
	"unicode"
	"unicode/utf8"
)

// OpenError reports that a sink path could not be opened. Its message
// embeds the OS error in the form "<Description> (os error <errno>)";
// external callers match on that substring, so the shape is part of
// the contract.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open the log sink %q: %s", e.Path, OSMessage(e.Err))
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// OSMessage renders err with its errno preserved, e.g.
// "No such file or directory (os error 2)". Errors that do not wrap a
// syscall errno fall back to their ordinary message.
func OSMessage(err error) string {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return err.Error()
	}
	return fmt.Sprintf("%s (os error %d)", capitalize(errno.Error()), int(errno))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
