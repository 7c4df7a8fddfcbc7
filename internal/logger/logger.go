package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

type ctxKey struct{}

type implLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// Options configures NewWithOptions.
type Options struct {
	Level  string
	Format string // "text" or "json"
	// File enables a daily rotated log file next to stdout.
	File   string
	MaxAge time.Duration
	Output io.Writer
}

// New creates a text Logger writing to stdout.
func New(level string) Logger {
	l, _, _ := NewWithOptions(Options{Level: level})
	return l
}

// NewWithOptions creates a Logger and returns a closer for the rotated file, if any.
func NewWithOptions(opts Options) (Logger, io.Closer, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		maxAge := opts.MaxAge
		if maxAge <= 0 {
			maxAge = 7 * 24 * time.Hour
		}
		ext := filepath.Ext(opts.File)
		pattern := strings.TrimSuffix(opts.File, ext) + ".%Y%m%d" + ext
		rl, err := rotatelogs.New(pattern,
			rotatelogs.WithLinkName(opts.File),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(maxAge),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(out, rl)
		closer = rl
	}

	level := parseLevel(opts.Level)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return &implLogger{
		logger: slog.New(handler),
		level:  level,
	}, closer, nil
}

// WithRequestID returns a context whose log lines carry the given request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored by WithRequestID.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo // default to info
	}
}

func (l *implLogger) shouldLog(level slog.Level) bool {
	return level >= l.level
}

func (l *implLogger) log(ctx context.Context, level slog.Level, msg string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if id := RequestID(ctx); id != "" {
		l.logger.Log(ctx, level, msg, "request_id", id)
		return
	}
	l.logger.Log(ctx, level, msg)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelInfo, msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, slog.LevelError, msg, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
