package logger

import (
	"fmt"
	"sync"

	"github.com/vhostd/hostlog/core"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	// Until the process configures a sink, the default logger writes
	// to stderr.
	defaultLogger = NewBuilder().Build()
}

// Default returns the default logger
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Configure configures the default logger's sink and policy
func Configure(cfg Config) error {
	return Default().Configure(cfg)
}

// Emit writes one record through the default logger
func Emit(severity core.Severity, origin core.Origin, msg string) {
	Default().Emit(severity, origin, msg)
}

// Error logs an error message using the default logger
func Error(msg string) {
	l := Default()
	if !core.ErrorSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.ErrorSeverity, msg)
}

// Warn logs a warning message using the default logger
func Warn(msg string) {
	l := Default()
	if !core.WarnSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.WarnSeverity, msg)
}

// Info logs an info message using the default logger
func Info(msg string) {
	l := Default()
	if !core.InfoSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.InfoSeverity, msg)
}

// Debug logs a debug message using the default logger
func Debug(msg string) {
	l := Default()
	if !core.DebugSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.DebugSeverity, msg)
}

// Trace logs a trace message using the default logger
func Trace(msg string) {
	l := Default()
	if !core.TraceSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.TraceSeverity, msg)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	l := Default()
	if !core.ErrorSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.ErrorSeverity, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	l := Default()
	if !core.WarnSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.WarnSeverity, fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	l := Default()
	if !core.InfoSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.InfoSeverity, fmt.Sprintf(format, args...))
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	l := Default()
	if !core.DebugSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.DebugSeverity, fmt.Sprintf(format, args...))
}

// Tracef logs a formatted trace message using the default logger
func Tracef(format string, args ...interface{}) {
	l := Default()
	if !core.TraceSeverity.Enabled(l.state.cfg.Load().threshold) {
		return
	}
	l.log(core.TraceSeverity, fmt.Sprintf(format, args...))
}
