// Package logger provides a global, sugared Zap logger that writes JSON to
// stdout. When an OpenTelemetry LoggerProvider has been configured via the
// telemetry package, an OTEL bridge core is added so log records are also
// forwarded to the telemetry backend.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/solrelay/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// baseLogger is the global SugaredLogger instance, set once by Init.
	baseLogger *zap.SugaredLogger

	// initBaseLoggerOnce guards the one-time setup performed by Init.
	initBaseLoggerOnce sync.Once
)

// Init configures the global logger with the given minimum level
// ("debug", "info", "warn", "error", "panic" or "fatal"). Calling Init more
// than once has no effect after the first successful initialization.
//
// Returns an error if the level string cannot be parsed.
func Init(level string) error {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				parsedLevel,
			),
		}

		if lp := telemetry.LoggerProvider(); lp != nil {
			cores = append(cores, otelzap.NewCore("", otelzap.WithLoggerProvider(lp)))
		}

		baseLogger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// Sync flushes any buffered log entries. Call it on application shutdown.
func Sync() error {
	return baseLogger.Sync()
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	baseLogger.Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	baseLogger.Infow(msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	baseLogger.Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	baseLogger.Errorw(msg, keysAndValues...)
}

// Panic logs a panic-level message (and then panics).
func Panic(ctx context.Context, msg string, keysAndValues ...any) {
	baseLogger.Panicw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message (and then exits).
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	baseLogger.Fatalw(msg, keysAndValues...)
}
