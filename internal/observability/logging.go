// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// WithRequestID returns a logger annotated with the request id.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("request_id", requestID))}
}

// WithUserID returns a logger annotated with the acting user id.
func (l *Logger) WithUserID(userID uint) *Logger {
	return &Logger{Logger: l.Logger.With(slog.Uint64("user_id", uint64(userID)))}
}

// SubscriptionError logs a failure on a long-lived subscription. These are
// never surfaced to users; alerting on every listener hiccup would be spam.
func (l *Logger) SubscriptionError(ctx context.Context, channel string, err error) {
	l.ErrorContext(ctx, "subscription error",
		slog.String("channel", channel),
		slog.String("error", err.Error()),
	)
}
