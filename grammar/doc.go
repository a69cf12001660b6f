// Package grammar implements the wire format of a hostlog line.
//
// A rendered line consists of a fixed-width timestamp, a bracketed
// colon-separated tag, and the free-form message:
//
//	<timestamp> [<instance>:<thread>[:<LEVEL>][:<file>:<line>]] <message>
//
// The LEVEL and file:line fields are independently toggled by Options,
// so the tag carries 2, 3 or 4 logical fields. The format is not
// self-describing: Parse must be given the same Options the producer
// rendered with, since nothing in the line itself marks which optional
// fields are present.
//
// The message is the final, unbounded field and is never escaped; it
// may itself contain colons and brackets.
package grammar
