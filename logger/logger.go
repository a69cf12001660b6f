package logger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vhostd/hostlog/core"
	"github.com/vhostd/hostlog/grammar"
	"github.com/vhostd/hostlog/metrics"
	"github.com/vhostd/hostlog/sink"
)

// Config carries the externally supplied logger configuration.
type Config struct {
	// LogPath is the sink path; it must already exist as a file or
	// named pipe.
	LogPath string
	// Threshold is the least severe rank that will be emitted.
	Threshold core.Severity
	// ShowLevel renders the level field in the tag.
	ShowLevel bool
	// ShowOrigin renders the call-site file and line in the tag.
	ShowOrigin bool
}

// snapshot is the immutable per-configuration state read by every
// emit. It is replaced wholesale on Configure.
type snapshot struct {
	sink      sink.Sink
	ownsSink  bool
	threshold core.Severity
	opts      grammar.Options
}

// state is shared between a Logger and every derived emitter.
type state struct {
	instanceID string
	cfg        atomic.Pointer[snapshot]
	configMu   sync.Mutex

	queue        chan *core.Record
	closed       chan struct{}
	closeOnce    sync.Once
	wg           sync.WaitGroup
	drainTimeout time.Duration

	stats Stats
}

// Logger emits log records against the shared process-wide state.
// Derived emitters from Named share the sink, threshold and toggles
// and differ only in thread name.
type Logger struct {
	state      *state
	threadName string
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	instanceID   string
	threadName   string
	threshold    core.Severity
	showLevel    bool
	showOrigin   bool
	initial      sink.Sink
	queueSize    int
	drainTimeout time.Duration
}

// NewBuilder creates a new logger builder with the documented
// defaults: Info threshold, both toggles on, stderr output.
func NewBuilder() *Builder {
	return &Builder{
		instanceID:   "anonymous-instance",
		threadName:   "main",
		threshold:    core.InfoSeverity,
		showLevel:    true,
		showOrigin:   true,
		drainTimeout: 5 * time.Second,
	}
}

// WithInstanceID sets the identifier of the owning process instance.
// It is fixed for the lifetime of the logger.
func (b *Builder) WithInstanceID(id string) *Builder {
	b.instanceID = id
	return b
}

// WithThreadName sets the thread name of the root emitter.
func (b *Builder) WithThreadName(name string) *Builder {
	b.threadName = name
	return b
}

// WithThreshold sets the initial severity threshold.
func (b *Builder) WithThreshold(threshold core.Severity) *Builder {
	b.threshold = threshold
	return b
}

// WithShowLevel toggles the level field of the tag.
func (b *Builder) WithShowLevel(enabled bool) *Builder {
	b.showLevel = enabled
	return b
}

// WithShowOrigin toggles the origin fields of the tag.
func (b *Builder) WithShowOrigin(enabled bool) *Builder {
	b.showOrigin = enabled
	return b
}

// WithSink sets the pre-configuration sink. The logger does not take
// ownership; the sink survives a later Configure. Defaults to stderr.
func (b *Builder) WithSink(s sink.Sink) *Builder {
	b.initial = s
	return b
}

// WithQueueSize enables asynchronous emission through a bounded queue
// of the given capacity. Zero keeps emission synchronous.
func (b *Builder) WithQueueSize(n int) *Builder {
	b.queueSize = n
	return b
}

// WithDrainTimeout bounds how long Close waits for the async queue to
// drain.
func (b *Builder) WithDrainTimeout(d time.Duration) *Builder {
	b.drainTimeout = d
	return b
}

// Build creates the Logger instance.
func (b *Builder) Build() *Logger {
	initial := b.initial
	if initial == nil {
		initial = stderrSink
	}
	st := &state{
		instanceID:   b.instanceID,
		closed:       make(chan struct{}),
		drainTimeout: b.drainTimeout,
	}
	st.cfg.Store(&snapshot{
		sink:      initial,
		ownsSink:  false,
		threshold: b.threshold,
		opts:      grammar.Options{ShowLevel: b.showLevel, ShowOrigin: b.showOrigin},
	})
	if b.queueSize > 0 {
		st.queue = make(chan *core.Record, b.queueSize)
		st.wg.Add(1)
		go st.process()
	}
	return &Logger{state: st, threadName: b.threadName}
}

// Configure opens the sink at cfg.LogPath and atomically publishes the
// new configuration. On failure the previous configuration stays in
// effect untouched and the error carries the OS error description.
// Calling Configure again is allowed: threshold and toggle updates are
// re-applied and re-opening the same path is fine.
func (l *Logger) Configure(cfg Config) error {
	if !cfg.Threshold.Valid() {
		return fmt.Errorf("invalid severity threshold %d", cfg.Threshold)
	}

	st := l.state
	st.configMu.Lock()
	defer st.configMu.Unlock()

	s, err := sink.Open(cfg.LogPath)
	if err != nil {
		return err
	}

	old := st.cfg.Swap(&snapshot{
		sink:      s,
		ownsSink:  true,
		threshold: cfg.Threshold,
		opts:      grammar.Options{ShowLevel: cfg.ShowLevel, ShowOrigin: cfg.ShowOrigin},
	})
	if old.ownsSink {
		// An emit that loaded the old snapshot may still be writing;
		// its write fails against the closed file and is counted like
		// any other write failure.
		_ = old.sink.Close()
	}
	return nil
}

// InstanceID returns the fixed identifier of this process instance.
func (l *Logger) InstanceID() string {
	return l.state.instanceID
}

// Named returns a derived emitter with the given thread name, sharing
// every other piece of state with l.
func (l *Logger) Named(thread string) *Logger {
	return &Logger{state: l.state, threadName: thread}
}

// Emit writes one record with the given severity, origin and message.
// Records below the configured threshold are dropped without error.
// Failures past the threshold check are swallowed.
func (l *Logger) Emit(severity core.Severity, origin core.Origin, msg string) {
	snap := l.state.cfg.Load()
	if !severity.Enabled(snap.threshold) {
		return
	}
	rec := core.GetRecord()
	rec.InstanceID = l.state.instanceID
	rec.ThreadName = l.threadName
	rec.Severity = severity
	rec.Origin = origin
	rec.Message = msg
	l.state.dispatch(rec)
}

// log is the internal path of the level helpers. The origin skip is
// tuned so the captured call site is the helper's caller; every
// helper, including the package-level ones, must sit exactly one
// frame above.
func (l *Logger) log(severity core.Severity, msg string) {
	rec := core.GetRecord()
	rec.InstanceID = l.state.instanceID
	rec.ThreadName = l.threadName
	rec.Severity = severity
	rec.Origin = core.CaptureOrigin(3)
	rec.Message = msg
	l.state.dispatch(rec)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	if !core.ErrorSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.ErrorSeverity, msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	if !core.WarnSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.WarnSeverity, msg)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	if !core.InfoSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.InfoSeverity, msg)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	if !core.DebugSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.DebugSeverity, msg)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string) {
	if !core.TraceSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.TraceSeverity, msg)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !core.ErrorSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.ErrorSeverity, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	if !core.WarnSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.WarnSeverity, fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	if !core.InfoSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.InfoSeverity, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !core.DebugSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.DebugSeverity, fmt.Sprintf(format, args...))
}

// Tracef logs a formatted trace message
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !core.TraceSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.TraceSeverity, fmt.Sprintf(format, args...))
}

// Stats returns a snapshot of the emission counters.
func (l *Logger) Stats() Snapshot {
	return l.state.stats.GetSnapshot()
}

// Close stops the async writer, drains queued records with the drain
// timeout, and closes the configured sink. Safe to call more than
// once.
func (l *Logger) Close() error {
	st := l.state
	st.closeOnce.Do(func() {
		close(st.closed)
	})
	st.wg.Wait()

	st.configMu.Lock()
	defer st.configMu.Unlock()
	snap := st.cfg.Load()
	if snap.ownsSink {
		st.cfg.Store(&snapshot{
			sink:      stderrSink,
			ownsSink:  false,
			threshold: snap.threshold,
			opts:      snap.opts,
		})
		return snap.sink.Close()
	}
	return nil
}

// dispatch hands a record to the async queue when one is configured,
// otherwise writes it synchronously. The caller must already have
// passed the threshold check.
func (st *state) dispatch(rec *core.Record) {
	if st.queue == nil {
		st.write(rec)
		return
	}
	select {
	case st.queue <- rec:
	default:
		// Queue full: drop the newest record, never block the producer.
		st.stats.queueDropped.Add(1)
		metrics.LinesDropped.WithLabelValues(metrics.ReasonQueueFull).Inc()
		core.PutRecord(rec)
	}
}

// write renders rec under the current snapshot and appends it to the
// sink. Write failures are counted and swallowed.
func (st *state) write(rec *core.Record) {
	snap := st.cfg.Load()

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	grammar.AppendRecord(buf, rec, snap.opts)
	err := snap.sink.WriteLine(buf.Bytes())
	bufPool.Put(buf)

	if err != nil {
		st.stats.writeFailures.Add(1)
		metrics.SinkWriteFailures.Inc()
		metrics.LinesDropped.WithLabelValues(metrics.ReasonWriteError).Inc()
	} else {
		st.stats.emitted.Add(1)
		metrics.LinesEmitted.WithLabelValues(rec.Severity.String()).Inc()
	}
	core.PutRecord(rec)
}

// process is the dedicated writer goroutine of the async mode.
func (st *state) process() {
	defer st.wg.Done()
	for {
		select {
		case rec := <-st.queue:
			st.write(rec)
		case <-st.closed:
			deadline := time.After(st.drainTimeout)
			for {
				select {
				case rec := <-st.queue:
					st.write(rec)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

var bufPool = sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

var stderrSink = sink.NewWriterSink(os.Stderr)
