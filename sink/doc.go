// Package sink provides the append-only destinations rendered log
// lines are written to.
//
// A path sink is a pre-existing regular file or named pipe opened for
// append-write; the package never creates the target. Named pipes are
// opened non-blocking so that configuration cannot hang on a pipe with
// no reader attached.
//
// Open failures preserve the OS error code in their message, e.g.
// "No such file or directory (os error 2)", because downstream
// consumers match on that exact text.
package sink
