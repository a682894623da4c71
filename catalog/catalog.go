// Package catalog lists the instructions ltbench measures, gated on the
// features of the processor they will run on.
package catalog

import (
	"fmt"
	"strings"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/log"
	"github.com/colorfulnotion/ltbench/x86"
	"github.com/xlab/treeprint"
)

type op = bench.Operation

// Registers the generated frame fixes for every entry.
var (
	rdx = bench.BaseReg
	rdi = bench.CarryReg
)

type builder struct {
	info    *cpu.Info
	entries []bench.Entry
	skipped int
}

// has reports whether the features are present and counts the group as
// skipped when they are not.
func (b *builder) has(features ...cpu.Feature) bool {
	if b.info.Has(features...) {
		return true
	}
	b.skipped++
	log.Debug(log.CatalogMonitoring, "skipping group", "missing", features)
	return false
}

func (b *builder) add(e bench.Entry) {
	b.entries = append(b.entries, e)
}

// gen measures f in both modes.
func (b *builder) gen(class bench.ClassID, name string, f op, killDep bool, ot bench.OperandType) {
	b.add(bench.Entry{Name: name, Class: class, Type: ot, Throughput: f, KillDep: killDep})
}

// genLatency measures with a separate closure for the latency chain.
func (b *builder) genLatency(class bench.ClassID, name string, tput, lat op, killDep bool, ot bench.OperandType) {
	b.add(bench.Entry{Name: name, Class: class, Type: ot, Throughput: tput, Latency: lat, KillDep: killDep})
}

func (b *builder) latencyOnly(class bench.ClassID, name string, lat op, reserveRCX bool, ot bench.OperandType) {
	b.add(bench.Entry{Name: name, Class: class, Type: ot, Latency: lat,
		ReserveRCX: reserveRCX, Measure: bench.MeasureLatency})
}

func (b *builder) throughputOnly(class bench.ClassID, name string, tput op, reserveRCX bool, ot bench.OperandType) {
	b.add(bench.Entry{Name: name, Class: class, Type: ot, Throughput: tput,
		ReserveRCX: reserveRCX, Measure: bench.MeasureThroughput})
}

// Build returns every entry info supports, in run order.
func Build(info *cpu.Info) []bench.Entry {
	b := &builder{info: info}
	b.generic()
	b.sse()
	b.avx()
	b.avx512()
	b.extensions()
	log.Info(log.CatalogMonitoring, "catalog built", "entries", len(b.entries), "skippedGroups", b.skipped)
	return b.entries
}

// Filter keeps entries whose class is in classes (all when empty) and whose
// name contains match.
func Filter(entries []bench.Entry, classes []bench.ClassID, match string) []bench.Entry {
	var out []bench.Entry
	for _, e := range entries {
		if len(classes) > 0 && !containsClass(classes, e.Class) {
			continue
		}
		if match != "" && !strings.Contains(e.Name, match) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsClass(classes []bench.ClassID, c bench.ClassID) bool {
	for _, x := range classes {
		if x == c {
			return true
		}
	}
	return false
}

// Tree groups entries by register class for display.
func Tree(title string, entries []bench.Entry) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(title)
	branches := map[bench.ClassID]treeprint.Tree{}
	for _, c := range bench.Classes {
		n := 0
		for _, e := range entries {
			if e.Class == c {
				n++
			}
		}
		if n > 0 {
			branches[c] = tree.AddBranch(fmt.Sprintf("%s (%d)", c, n))
		}
	}
	for _, e := range entries {
		labels := make([]string, 0, 2)
		for _, m := range e.Modes() {
			labels = append(labels, m.String())
		}
		if e.ReserveRCX {
			labels = append(labels, "rcx")
		}
		branches[e.Class].AddMetaNode(strings.Join(labels, ","), e.Name)
	}
	return tree
}

func mem(disp int32) x86.Mem         { return x86.PtrDisp(rdx, disp) }
func memCarry(disp int32) x86.Mem    { return x86.PtrIndex(rdx, rdi, disp) }
func memIndex(index x86.Reg) x86.Mem { return x86.PtrIndex(rdx, index, 0) }
func memSrc(src x86.Reg) x86.Mem     { return x86.PtrIndex(src, rdx, 0) }
