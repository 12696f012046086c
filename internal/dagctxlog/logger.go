// Package dagctxlog provides the structured logger used across the
// engine and its interface boundaries: one adapter over
// charmbracelet/log, context-aware so a request id attached to a
// context.Context is automatically attached to every log line emitted
// while handling that request.
package dagctxlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	cblog "github.com/charmbracelet/log"
)

type correlationIDKey struct{}

// WithRequestID derives a context carrying a request id for log
// correlation; internal/httpapi and cmd/dagctl attach one per invocation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, requestID)
}

// RequestID extracts the request id attached by WithRequestID, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// Options configures a Logger at construction.
type Options struct {
	Writer     io.Writer
	Level      string
	Component  string
	JSONFormat bool
}

// Logger wraps a charmbracelet/log.Logger with a fixed set of persistent
// fields and context-aware request-id correlation.
type Logger struct {
	base   *cblog.Logger
	fields []any
}

// New builds a Logger from Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := cblog.InfoLevel
	if opts.Level != "" {
		parsed, err := cblog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("dagctxlog: parse log level: %w", err)
		}
		level = parsed
	}

	logOpts := cblog.Options{
		Level:           level,
		ReportTimestamp: true,
	}
	if opts.JSONFormat {
		logOpts.Formatter = cblog.JSONFormatter
	}

	base := cblog.NewWithOptions(writer, logOpts)

	var fields []any
	if opts.Component != "" {
		fields = []any{"component", opts.Component}
	}

	return &Logger{base: base, fields: fields}, nil
}

// With derives a logger that always includes the given key/value pairs.
func (l *Logger) With(kv ...any) *Logger {
	if l == nil {
		return nil
	}
	next := make([]any, 0, len(l.fields)+len(kv))
	next = append(next, l.fields...)
	next = append(next, kv...)
	return &Logger{base: l.base, fields: next}
}

func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, cblog.DebugLevel, msg, kv)
}
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, cblog.InfoLevel, msg, kv)
}
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, cblog.WarnLevel, msg, kv)
}
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.log(ctx, cblog.ErrorLevel, msg, kv)
}

func (l *Logger) log(ctx context.Context, level cblog.Level, msg string, kv []any) {
	if l == nil || l.base == nil {
		return
	}

	payload := make([]any, 0, len(l.fields)+len(kv)+2)
	payload = append(payload, l.fields...)
	payload = append(payload, kv...)
	if id := RequestID(ctx); id != "" {
		payload = append(payload, "request_id", id)
	}

	switch level {
	case cblog.DebugLevel:
		l.base.Debug(msg, payload...)
	case cblog.WarnLevel:
		l.base.Warn(msg, payload...)
	case cblog.ErrorLevel:
		l.base.Error(msg, payload...)
	default:
		l.base.Info(msg, payload...)
	}
}

// sortedKeys is used by callers constructing a fields map (instead of a
// flat kv list) who want deterministic key order before flattening.
func sortedKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FlattenFields converts a fields map into a deterministically ordered
// flat kv slice suitable for With/log calls.
func FlattenFields(fields map[string]any) []any {
	keys := sortedKeys(fields)
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
