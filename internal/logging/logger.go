package logging

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

// New builds the process logger. Production uses JSON output, everything else
// the console encoder.
func New(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}

// WithRequestID stores a request ID for FromContext.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID extracts the request ID from a standard context.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides request-scoped logging for services
type Logger struct {
	s *zap.SugaredLogger
}

// FromContext returns a logger tagged with the request ID carried by ctx, if any.
func FromContext(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{s: zap.L().Sugar().With("request_id", requestID)}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.s.Errorw("operation failed", "operation", operation, "error", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.s.With("operation", operation).Errorf(format, args...)
}

// LogInfo logs an info message with context
func (l *Logger) LogInfo(operation string, message string) {
	l.s.Infow(message, "operation", operation)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.s.With("operation", operation).Infof(format, args...)
}

// LogWarn logs a warning with context
func (l *Logger) LogWarn(operation string, message string) {
	l.s.Warnw(message, "operation", operation)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.s.With("operation", operation).Warnf(format, args...)
}
