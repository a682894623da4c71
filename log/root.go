// Package log is a module-keyed logger on log/slog. Debug and Trace records
// are dropped unless their module has been enabled.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	GenMonitoring     = "gen"     // code generator
	BenchMonitoring   = "bench"   // measurement runner
	JitMonitoring     = "jit"     // executable memory and native calls
	CounterMonitoring = "counter" // cycle counter
	CatalogMonitoring = "catalog" // instruction catalog
	SinkMonitoring    = "sink"    // result log and reports
	CLIMonitoring     = "cli"     // command line
)

// Modules lists every module name used by the harness.
var Modules = []string{GenMonitoring, BenchMonitoring, JitMonitoring,
	CounterMonitoring, CatalogMonitoring, SinkMonitoring, CLIMonitoring}

var root atomic.Pointer[Logger]

func init() {
	SetDefault(NewLogger(DiscardHandler()))
}

// ParseLevel accepts the names LevelString produces, in any case, plus
// "warning" and "critical".
func ParseLevel(lvl string) (slog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(lvl))
	switch name {
	case "warning":
		name = "warn"
	case "critical":
		name = "crit"
	}
	for _, n := range levelNames {
		if n.name == name {
			return n.level, nil
		}
	}
	return 0, fmt.Errorf("invalid level: %s", lvl)
}

// InitLogger installs a stderr logger at the given level.
func InitLogger(logLevel string) {
	lvl, err := ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		exit(1)
	}
	SetDefault(NewLogger(NewTerminalHandler(os.Stderr, lvl)))
}

func SetDefault(l Logger) {
	root.Store(&l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

func Root() Logger { return *root.Load() }

var enabled struct {
	sync.RWMutex
	m map[string]bool
}

func setModule(module string, on bool) {
	enabled.Lock()
	defer enabled.Unlock()
	if enabled.m == nil {
		enabled.m = make(map[string]bool)
	}
	enabled.m[module] = on
}

func EnableModule(module string)  { setModule(module, true) }
func DisableModule(module string) { setModule(module, false) }

// EnableModules takes a comma-separated list; "all" enables every module.
func EnableModules(list string) {
	for _, m := range strings.Split(list, ",") {
		switch m = strings.TrimSpace(m); m {
		case "":
		case "all":
			for _, known := range Modules {
				EnableModule(known)
			}
		default:
			EnableModule(m)
		}
	}
}

func isModuleEnabled(module string) bool {
	enabled.RLock()
	defer enabled.RUnlock()
	return enabled.m[module]
}

func Trace(module string, msg string, ctx ...interface{}) {
	if isModuleEnabled(module) {
		Root().emit(LevelTrace, module, msg, ctx)
	}
}

func Debug(module string, msg string, ctx ...interface{}) {
	if isModuleEnabled(module) {
		Root().emit(LevelDebug, module, msg, ctx)
	}
}

// Info and the levels above it are never filtered by module.
func Info(module string, msg string, ctx ...interface{}) {
	Root().emit(LevelInfo, module, msg, ctx)
}

func Warn(module string, msg string, ctx ...interface{}) {
	Root().emit(LevelWarn, module, msg, ctx)
}

func Error(module string, msg string, ctx ...interface{}) {
	Root().emit(LevelError, module, msg, ctx)
}

func Crit(module string, msg string, ctx ...interface{}) {
	Root().emit(LevelCrit, module, msg, ctx)
	exit(1)
}

func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
