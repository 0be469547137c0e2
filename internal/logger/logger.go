package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Initialize sets up the global logger with the specified level and format.
// Logs go to stderr so command output on stdout stays parseable.
func Initialize(level, format string) {
	InitializeWriter(os.Stderr, level, format)
}

// InitializeWriter is Initialize with an explicit destination. Unknown levels
// fall back to info; any format other than "json" is text.
func InitializeWriter(w io.Writer, level, format string) {
	logLevel, ok := levels[strings.ToLower(level)]
	if !ok {
		logLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the console logger, set up at info/text on first use
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any) { Get().Info(msg, args...) }
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// WarnContext and ErrorContext carry the request context of a console page
func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// EnterMethod, ExitMethod and ExitMethodWithError trace a CLI command at
// debug level; a failed exit is raised to warn.
func EnterMethod(methodName string, args ...any) {
	Get().Debug("→ Method entered", append([]any{"method", methodName, "event", "enter"}, args...)...)
}

func ExitMethod(methodName string, args ...any) {
	Get().Debug("← Method exited", append([]any{"method", methodName, "event", "exit"}, args...)...)
}

func ExitMethodWithError(methodName string, err error, args ...any) {
	Get().Warn("← Method exited with error", append([]any{"method", methodName, "event", "exit", "error", err}, args...)...)
}

// ExternalServiceCall and ExternalServiceResult bracket one request to the
// rental service.
func ExternalServiceCall(service, operation string, args ...any) {
	Get().Debug("→ External service call", append([]any{"service", service, "operation", operation}, args...)...)
}

func ExternalServiceResult(service, operation string, err error, args ...any) {
	attrs := append([]any{"service", service, "operation", operation}, args...)
	if err != nil {
		Get().Warn("← External service call failed", append(attrs, "error", err)...)
		return
	}
	Get().Debug("← External service call succeeded", attrs...)
}
