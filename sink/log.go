package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/log"
)

// Log is the per-host result file under <dir>/logs/<os>/.
type Log struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

func osDir(goos string) string {
	switch goos {
	case "windows":
		return "w32"
	default:
		return goos
	}
}

// LogPath is where OpenLog puts the log for brand.
func LogPath(dir, brand string) string {
	name := strings.Join(strings.Fields(brand), "")
	if name == "" {
		name = "unknown"
	}
	return filepath.Join(dir, "logs", osDir(runtime.GOOS), name+".csv")
}

// OpenLog truncates or creates the result log for brand and writes the header.
func OpenLog(dir, brand string) (*Log, error) {
	path := LogPath(dir, brand)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	l := &Log{path: path, f: f, w: bufio.NewWriter(f)}
	if _, err := fmt.Fprintln(l.w, Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write log header: %w", err)
	}
	log.Debug(log.SinkMonitoring, "result log opened", "path", path)
	return l, nil
}

func (l *Log) Path() string { return l.path }

func (l *Log) Write(s bench.TimingSample) error {
	if _, err := fmt.Fprintln(l.w, Record(s)); err != nil {
		return fmt.Errorf("write %s: %w", l.path, err)
	}
	return nil
}

func (l *Log) Close() error {
	if l.f == nil {
		return nil
	}
	ferr := l.w.Flush()
	cerr := l.f.Close()
	l.f = nil
	if ferr != nil {
		return fmt.Errorf("flush %s: %w", l.path, ferr)
	}
	return cerr
}
