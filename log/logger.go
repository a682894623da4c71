package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
)

const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
	LevelCrit  slog.Level = 12
)

var levelNames = []struct {
	level slog.Level
	name  string
}{
	{LevelTrace, "trace"},
	{LevelDebug, "debug"},
	{LevelInfo, "info"},
	{LevelWarn, "warn"},
	{LevelError, "error"},
	{LevelCrit, "crit"},
}

// exit is replaced in tests.
var exit = os.Exit

func LevelString(l slog.Level) string {
	for _, n := range levelNames {
		if n.level == l {
			return n.name
		}
	}
	return "unknown"
}

// Logger emits module-tagged records. Crit exits the process after logging.
type Logger interface {
	With(ctx ...interface{}) Logger
	Enabled(ctx context.Context, level slog.Level) bool

	Trace(module string, msg string, ctx ...interface{})
	Debug(module string, msg string, ctx ...interface{})
	Info(module string, msg string, ctx ...interface{})
	Warn(module string, msg string, ctx ...interface{})
	Error(module string, msg string, ctx ...interface{})
	Crit(module string, msg string, ctx ...interface{})

	emit(level slog.Level, module, msg string, ctx []interface{})
}

type logger struct {
	inner *slog.Logger
}

func NewLogger(h slog.Handler) Logger {
	return &logger{inner: slog.New(h)}
}

// NewTerminalHandler writes logfmt records at or above lvl, with the level
// spelled the way ParseLevel accepts it.
func NewTerminalHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			if l, ok := a.Value.Any().(slog.Level); ok {
				a.Value = slog.StringValue(LevelString(l))
			}
			return a
		},
	})
}

func DiscardHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelCrit + 1})
}

// emit skips its own frame and the package-level wrapper so the record's
// source points at the caller.
func (l *logger) emit(level slog.Level, module, msg string, ctx []interface{}) {
	bg := context.Background()
	if !l.inner.Enabled(bg, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	if module != "" {
		r.AddAttrs(slog.String("module", module))
	}
	r.Add(ctx...)
	_ = l.inner.Handler().Handle(bg, r)
}

func (l *logger) With(ctx ...interface{}) Logger { return &logger{l.inner.With(ctx...)} }

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.inner.Enabled(ctx, level)
}

func (l *logger) Trace(module string, msg string, ctx ...interface{}) {
	l.emit(LevelTrace, module, msg, ctx)
}

func (l *logger) Debug(module string, msg string, ctx ...interface{}) {
	l.emit(LevelDebug, module, msg, ctx)
}

func (l *logger) Info(module string, msg string, ctx ...interface{}) {
	l.emit(LevelInfo, module, msg, ctx)
}

func (l *logger) Warn(module string, msg string, ctx ...interface{}) {
	l.emit(LevelWarn, module, msg, ctx)
}

func (l *logger) Error(module string, msg string, ctx ...interface{}) {
	l.emit(LevelError, module, msg, ctx)
}

func (l *logger) Crit(module string, msg string, ctx ...interface{}) {
	l.emit(LevelCrit, module, msg, ctx)
	exit(1)
}
