package bench

import (
	"fmt"

	"github.com/colorfulnotion/ltbench/x86"
)

// Operation emits one instance of the instruction under test. dst and src
// belong to the entry's register class; in generated blocks they are the
// same register.
type Operation func(a *x86.Assembler, dst, src x86.Reg)

// Mode is the shape of the generated loop body.
type Mode int

const (
	Latency Mode = iota
	Throughput
	ThroughputKillDep
)

// Label is the l/t column value.
func (m Mode) Label() string {
	if m == Latency {
		return "latency"
	}
	return "throughput"
}

func (m Mode) String() string {
	switch m {
	case Latency:
		return "latency"
	case Throughput:
		return "throughput"
	case ThroughputKillDep:
		return "throughput-killdep"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Measure selects which modes an entry is timed in.
type Measure int

const (
	MeasureBoth Measure = iota
	MeasureLatency
	MeasureThroughput
)

// Entry is one catalog item.
type Entry struct {
	Name       string
	Class      ClassID
	Type       OperandType
	Throughput Operation
	Latency    Operation // nil means Throughput is used for both
	KillDep    bool      // break the group after every iteration
	ReserveRCX bool      // instruction consumes rcx; counter moves to rdx
	Measure    Measure
}

// Modes returns the modes Run measures, latency first.
func (e Entry) Modes() []Mode {
	tput := Throughput
	if e.KillDep {
		tput = ThroughputKillDep
	}
	switch e.Measure {
	case MeasureLatency:
		return []Mode{Latency}
	case MeasureThroughput:
		return []Mode{tput}
	}
	return []Mode{Latency, tput}
}

// Operation returns the closure used for mode m.
func (e Entry) Operation(m Mode) Operation {
	if m == Latency && e.Latency != nil {
		return e.Latency
	}
	if e.Throughput == nil {
		return e.Latency
	}
	return e.Throughput
}

func (e Entry) String() string {
	return fmt.Sprintf("%s/%s", e.Class, e.Name)
}
