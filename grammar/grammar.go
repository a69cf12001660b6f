package grammar

import (
	"bytes"
	"strconv"
	"sync"

	"github.com/vhostd/hostlog/core"
)

// timestampLayout renders wall-clock instants with exactly nine
// fractional digits and no timezone suffix. Timestamps are rendered in
// UTC so that lines compare consistently regardless of host timezone.
const timestampLayout = "2006-01-02T15:04:05.000000000"

// Options selects which optional tag fields are rendered. The thread
// name is never optional.
type Options struct {
	// ShowLevel renders the upper-case severity name after the thread name.
	ShowLevel bool
	// ShowOrigin renders the call-site file and line after the level.
	ShowOrigin bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// Render returns the textual form of a record under the given options,
// without a trailing newline.
func Render(rec *core.Record, opts Options) string {
	buf := getBuffer()
	defer putBuffer(buf)
	AppendRecord(buf, rec, opts)
	return buf.String()
}

// AppendRecord writes the rendered record into buf without a trailing
// newline. This is the zero-copy path used by the sink writer.
func AppendRecord(buf *bytes.Buffer, rec *core.Record, opts Options) {
	buf.Write(rec.Time.UTC().AppendFormat(buf.AvailableBuffer(), timestampLayout))

	buf.WriteString(" [")
	buf.WriteString(rec.InstanceID)
	buf.WriteByte(':')
	buf.WriteString(rec.ThreadName)
	if opts.ShowLevel {
		buf.WriteByte(':')
		buf.WriteString(rec.Severity.String())
	}
	if opts.ShowOrigin {
		buf.WriteByte(':')
		buf.WriteString(rec.Origin.File)
		buf.WriteByte(':')
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(rec.Origin.Line), 10))
	}
	buf.WriteString("] ")
	buf.WriteString(rec.Message)
}
