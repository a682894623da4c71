package sink

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/stage"
	"github.com/olekukonko/tablewriter"
)

type key struct{ class, inst string }

// Pair lines up the samples of two result logs for one (class, inst). A side
// missing from its log is nil.
type Pair struct {
	Class string
	Inst  string
	A, B  *bench.TimingSample
}

// rel is a/b - 1, formatted as a percentage.
func rel(a, b float64) string {
	return fmt.Sprintf("%.1f%%", (a/b-1)*100)
}

func index(samples []bench.TimingSample, mode string, keys map[key]bool) map[key]*bench.TimingSample {
	m := make(map[key]*bench.TimingSample)
	for i := range samples {
		s := &samples[i]
		if s.Mode != mode {
			continue
		}
		k := key{s.Class, s.Inst}
		m[k] = s
		keys[k] = true
	}
	return m
}

// Pairs joins a and b on (class, inst) for the given mode label, sorted by key.
func Pairs(a, b []bench.TimingSample, mode string) []Pair {
	keys := make(map[key]bool)
	ia := index(a, mode, keys)
	ib := index(b, mode, keys)

	sorted := make([]key, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].class != sorted[j].class {
			return sorted[i].class < sorted[j].class
		}
		return sorted[i].inst < sorted[j].inst
	})

	out := make([]Pair, len(sorted))
	for i, k := range sorted {
		out[i] = Pair{Class: k.class, Inst: k.inst, A: ia[k], B: ib[k]}
	}
	return out
}

func (p Pair) row() []string {
	na := "N/A"
	r := []string{p.Class, p.Inst, na, na, na, na, na, na}
	if p.A != nil {
		r[2], r[5] = fmt.Sprintf("%.2f", p.A.IPC), fmt.Sprintf("%.2f", p.A.CPI)
	}
	if p.B != nil {
		r[3], r[6] = fmt.Sprintf("%.2f", p.B.IPC), fmt.Sprintf("%.2f", p.B.CPI)
	}
	if p.A != nil && p.B != nil {
		r[4], r[7] = rel(p.A.IPC, p.B.IPC), rel(p.A.CPI, p.B.CPI)
	}
	return r
}

// Compare renders a LATENCY and a THROUGHPUT table of a against b.
func Compare(w io.Writer, a, b []bench.TimingSample) error {
	for _, m := range []bench.Mode{bench.Latency, bench.Throughput} {
		label := m.Label()
		pairs := Pairs(a, b, label)
		if _, err := fmt.Fprintf(w, "== %s ==\n", strings.ToUpper(label)); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"class", "instruction", "IPC a", "IPC b", "rel", "CPI a", "CPI b", "rel"})
		table.SetAutoFormatHeaders(false)
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		})
		for _, p := range pairs {
			table.Append(p.row())
		}
		table.Render()
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// StageTable renders harness phase timings.
func StageTable(w io.Writer, rows []stage.Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"phase", "count", "total", "mean", "p50", "p95", "max"})
	table.SetAutoFormatHeaders(false)
	for _, r := range rows {
		table.Append([]string{r.Name, strconv.Itoa(r.Count), r.Total.String(), r.Mean.String(),
			r.P50.String(), r.P95.String(), r.Max.String()})
	}
	table.Render()
}
