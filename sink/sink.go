package sink

import (
	"bufio"
	"io"
	"os"
	"sync"
	"syscall"
)

// Sink is an append target for rendered log lines. WriteLine appends
// the line plus a terminator and flushes, so a concurrent reader of
// the underlying target observes the line before WriteLine returns.
// Implementations serialize WriteLine internally; concurrent calls
// never interleave partial lines.
type Sink interface {
	WriteLine(line []byte) error
	Close() error
}

// FileSink writes to a pre-existing regular file or named pipe.
type FileSink struct {
	mu   sync.Mutex
	path string
	file *os.File
	buf  *bufio.Writer
	pipe bool
}

// Open opens path for append-write. The path must already exist; Open
// never creates it. Named pipes are opened with O_NONBLOCK so an
// absent reader fails fast instead of blocking the caller.
func Open(path string) (*FileSink, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	flags := os.O_WRONLY | os.O_APPEND
	pipe := info.Mode()&os.ModeNamedPipe != 0
	if pipe {
		flags |= syscall.O_NONBLOCK
	}
	file, err := os.OpenFile(path, flags, 0)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	return &FileSink{
		path: path,
		file: file,
		buf:  bufio.NewWriterSize(file, 4096),
		pipe: pipe,
	}, nil
}

// Path returns the path this sink was opened from.
func (s *FileSink) Path() string {
	return s.path
}

// WriteLine appends line plus a newline and flushes. Buffering the
// line first keeps the flush down to a single write syscall, which for
// pipes keeps lines atomic with respect to other writers.
func (s *FileSink) WriteLine(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.buf.Write(line); err != nil {
		return err
	}
	if err := s.buf.WriteByte('\n'); err != nil {
		return err
	}
	return s.buf.Flush()
}

// Close flushes and closes the underlying file. Regular files are
// synced to stable storage first.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	flushErr := s.buf.Flush()
	if !s.pipe {
		if err := s.file.Sync(); err != nil && flushErr == nil {
			flushErr = err
		}
	}
	closeErr := s.file.Close()
	s.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// WriterSink adapts an arbitrary io.Writer. It backs the
// pre-configuration default (stderr) and test captures.
type WriterSink struct {
	mu      sync.Mutex
	w       io.Writer
	scratch []byte
}

// NewWriterSink wraps w. The writer is handed the line and its
// terminator in a single Write call.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes line plus a newline in one call to the underlying
// writer.
func (s *WriterSink) WriteLine(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scratch = append(s.scratch[:0], line...)
	s.scratch = append(s.scratch, '\n')
	_, err := s.w.Write(s.scratch)
	return err
}

// Close is a no-op; the WriterSink does not own its writer.
func (s *WriterSink) Close() error {
	return nil
}
