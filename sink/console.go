package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/common"
	"golang.org/x/term"
)

// Console prints samples for a human, or as log records when csv is set.
type Console struct {
	w     io.Writer
	csv   bool
	color bool
}

func NewConsole(w io.Writer, csv bool) *Console {
	c := &Console{w: w, csv: csv}
	if f, ok := w.(*os.File); ok && !csv {
		c.color = term.IsTerminal(int(f.Fd()))
	}
	return c
}

// Start prints the brand line, then the table header unless rows are CSV.
func (c *Console) Start(brand string) error {
	if _, err := fmt.Fprintln(c.w, brand); err != nil {
		return err
	}
	if c.csv {
		return nil
	}
	_, err := fmt.Fprintln(c.w, "== latency/throughput ==")
	return err
}

func (c *Console) Write(s bench.TimingSample) error {
	if c.csv {
		_, err := fmt.Fprintln(c.w, Record(s))
		return err
	}
	line := fmt.Sprintf("%8s:%40s:%10s: CPI=%8.2f, IPC=%8.2f", s.Class, s.Inst, s.Mode, s.CPI, s.IPC)
	line = common.Colorize(c.color, rowColor(s), line)
	_, err := fmt.Fprintln(c.w, line)
	return err
}

func rowColor(s bench.TimingSample) string {
	switch {
	case s.Cycles <= 0:
		return common.ColorRed
	case s.Mode == bench.Latency.Label():
		return common.ColorCyan
	default:
		return common.ColorGreen
	}
}

func (c *Console) Close() error { return nil }
