package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// LoggerOpts configures NewLogger
type LoggerOpts struct {
	// Level is one of debug, info, warn or error. Defaults to info.
	Level string
	// Console switches to human-readable output instead of JSON.
	Console bool
	// Sentry forwards error records to the current Sentry hub.
	Sentry bool
	// Writer defaults to os.Stdout.
	Writer io.Writer
}

// NewLogger builds the service logger: zerolog output behind slog,
// optionally fanned out to Sentry for errors.
func NewLogger(opts LoggerOpts) *slog.Logger {
	w := opts.Writer

	if w == nil {
		w = os.Stdout
	}

	if opts.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}

	zl := zerolog.New(w)
	level := ParseLevel(opts.Level)

	var baseHandler slog.Handler = slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler()

	if opts.Sentry {
		baseHandler = slogmulti.Fanout(
			baseHandler,
			slogsentry.Option{Level: slog.LevelError, AddSource: true}.NewSentryHandler(),
		)
	}

	return slog.New(&loggerHandler{handler: baseHandler})
}

// ParseLevel maps a level name to slog.Level, falling back to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type loggerHandler struct {
	handler slog.Handler
}

func (h *loggerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *loggerHandler) Handle(ctx context.Context, r slog.Record) error {
	// Convert the time to UTC and truncate microseconds
	r.Time = r.Time.UTC().Truncate(time.Second)
	return h.handler.Handle(ctx, r)
}

func (h *loggerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &loggerHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *loggerHandler) WithGroup(name string) slog.Handler {
	return &loggerHandler{handler: h.handler.WithGroup(name)}
}
