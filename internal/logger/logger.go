package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

const (
	// LoggerKey is the context key for the logger instance
	LoggerKey ContextKey = "logger"
)

// Service is attached to every console line.
const Service = "student-dashboard"

// New creates a console logger for local development. Colours are turned
// off when stdout is not a terminal.
func New() zerolog.Logger {
	return NewConsole(os.Stdout, !isatty.IsTerminal(os.Stdout.Fd()))
}

// NewConsole writes human-readable lines to w with upper-case, fixed-width
// levels, e.g. "15:04:05 WARN  cache invalidation failed service=...".
func NewConsole(w io.Writer, noColor bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:         w,
		NoColor:     noColor,
		TimeFormat:  time.TimeOnly,
		FormatLevel: formatLevel,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
	}
	return zerolog.New(output).With().Timestamp().Str("service", Service).Logger()
}

func formatLevel(i any) string {
	lvl, ok := i.(string)
	if !ok || lvl == "" {
		return "???  "
	}
	return fmt.Sprintf("%-5s", strings.ToUpper(lvl))
}

// NewWithWriter creates a new structured logger with a custom writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Setup builds the process logger from LOG_FORMAT and LOG_LEVEL values.
// Unknown levels fall back to info.
func Setup(format, level string) zerolog.Logger {
	var log zerolog.Logger
	if strings.EqualFold(format, "json") {
		log = NewWithWriter(os.Stdout)
	} else {
		log = New()
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return log.Level(lvl)
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a default logger
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}

// Middleware stores log in each request context and logs one line per request.
func Middleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), log))

		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
