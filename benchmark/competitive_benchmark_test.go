package benchmark

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vhostd/hostlog/core"
	"github.com/vhostd/hostlog/logger"
	"github.com/vhostd/hostlog/sink"
)

// ---------------------------------------------------------------------------
// Helpers – identical sink for every framework (io.Discard)
// ---------------------------------------------------------------------------

// newHostlogLogger returns a hostlog logger writing to io.Discard.
func newHostlogLogger() *logger.Logger {
	return logger.NewBuilder().
		WithSink(sink.NewWriterSink(io.Discard)).
		WithThreshold(core.TraceSeverity).
		Build()
}

// newZapLogger returns a zap.Logger that writes to io.Discard.
func newZapLogger() *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
	zc := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.DebugLevel)
	return zap.New(zc, zap.AddCaller())
}

// newSlogLogger returns an slog.Logger that writes to io.Discard.
func newSlogLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
}

// newLogrusLogger returns a logrus.Logger that writes to io.Discard.
func newLogrusLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{})
	l.SetLevel(logrus.DebugLevel)
	l.SetReportCaller(true)
	return l
}

// newZerologLogger returns a zerolog.Logger that writes to io.Discard.
func newZerologLogger() zerolog.Logger {
	return zerolog.New(io.Discard).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
}

// ---------------------------------------------------------------------------
// Scenario 1 – Info message with caller capture
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Info(b *testing.B) {
	b.Run("hostlog", func(b *testing.B) {
		l := newHostlogLogger()
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		defer l.Sync()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info("info message")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Info().Msg("info message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 2 – message filtered out by the threshold
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Filtered(b *testing.B) {
	b.Run("hostlog", func(b *testing.B) {
		l := logger.NewBuilder().
			WithSink(sink.NewWriterSink(io.Discard)).
			WithThreshold(core.ErrorSeverity).
			Build()
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("filtered message")
		}
	})

	b.Run("zap", func(b *testing.B) {
		enc := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
		zc := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zap.ErrorLevel)
		l := zap.New(zc)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("filtered message")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := zerolog.New(io.Discard).Level(zerolog.ErrorLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug().Msg("filtered message")
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := logrus.New()
		l.SetOutput(io.Discard)
		l.SetLevel(logrus.ErrorLevel)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			l.Debug("filtered message")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 3 – parallel emitters into one sink
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Parallel(b *testing.B) {
	b.Run("hostlog", func(b *testing.B) {
		l := newHostlogLogger()
		defer l.Close()
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel message")
			}
		})
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger()
		defer l.Sync()
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info("parallel message")
			}
		})
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger()
		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l.Info().Msg("parallel message")
			}
		})
	})
}
