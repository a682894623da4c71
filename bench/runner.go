package bench

import (
	"fmt"
	"os"

	"github.com/colorfulnotion/ltbench/counter"
	"github.com/colorfulnotion/ltbench/jit"
	"github.com/colorfulnotion/ltbench/log"
	"github.com/colorfulnotion/ltbench/stage"
)

// TimingSample is the outcome of one (entry, mode) measurement.
type TimingSample struct {
	Class  string
	Inst   string
	Mode   string // "latency" or "throughput"
	CPI    float64
	IPC    float64
	Cycles int64
}

// newSample derives CPI and IPC from a raw cycle delta. A non-positive delta
// is kept as-is and only reported.
func newSample(class, inst string, mode Mode, cycles int64, total float64) TimingSample {
	if cycles <= 0 {
		log.Warn(log.BenchMonitoring, "degenerate cycle delta", "class", class, "inst", inst,
			"mode", mode.Label(), "cycles", cycles)
	}
	c := float64(cycles)
	return TimingSample{
		Class:  class,
		Inst:   inst,
		Mode:   mode.Label(),
		CPI:    c / total,
		IPC:    total / c,
		Cycles: cycles,
	}
}

// Runner owns the scratch regions and times generated blocks. All calls must
// come from the OS thread that opened its counter.
type Runner struct {
	cfg     Config
	counter counter.Counter
	zero    *jit.Region
	data    *jit.Region
	stages  *stage.Recorder
}

func NewRunner(cfg Config, c counter.Counter) (*Runner, error) {
	if c == nil {
		return nil, fmt.Errorf("bench: nil counter")
	}
	zero, err := jit.NewRegion(cfg.RegionSize, cfg.RegionAlign)
	if err != nil {
		return nil, fmt.Errorf("zero region: %w", err)
	}
	data, err := jit.NewRegion(cfg.RegionSize, cfg.RegionAlign)
	if err != nil {
		zero.Close()
		return nil, fmt.Errorf("data region: %w", err)
	}
	log.Debug(log.BenchMonitoring, "runner ready", "counter", c.Name(),
		"zero", fmt.Sprintf("%#x", zero.Addr()), "data", fmt.Sprintf("%#x", data.Addr()))
	return &Runner{cfg: cfg, counter: c, zero: zero, data: data}, nil
}

// SetStages makes the runner time its phases into rec.
func (r *Runner) SetStages(rec *stage.Recorder) { r.stages = rec }

// ZeroAddr is the address generated blocks receive in BaseReg.
func (r *Runner) ZeroAddr() uintptr { return r.zero.Addr() }

// DataAddr is the address of the 0xFF-filled region.
func (r *Runner) DataAddr() uintptr { return r.data.Addr() }

// Run measures e in each of its modes, latency first.
func (r *Runner) Run(e Entry) ([]TimingSample, error) {
	modes := e.Modes()
	out := make([]TimingSample, 0, len(modes))
	for _, m := range modes {
		s, err := r.measure(e, m)
		if err != nil {
			return out, fmt.Errorf("%s %s: %w", e, m.Label(), err)
		}
		out = append(out, s)
	}
	return out, nil
}

// RunAll runs entries in order and passes every sample to emit as soon as it
// is measured.
func (r *Runner) RunAll(entries []Entry, emit func(TimingSample) error) error {
	for _, e := range entries {
		samples, err := r.Run(e)
		if err != nil {
			return err
		}
		for _, s := range samples {
			if err := emit(s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) measure(e Entry, m Mode) (TimingSample, error) {
	rc := NewRegisterClass(e.Class)
	stop := r.stages.Start("generate")
	blk, err := Generate(e.Operation(m), rc, r.cfg.LoopCount, r.cfg.Instructions(rc), m, e.Type,
		Env{Base: r.zero.Addr(), ReserveRCX: e.ReserveRCX})
	stop()
	if err != nil {
		return TimingSample{}, err
	}
	if r.cfg.SideFile != "" {
		if err := os.WriteFile(r.cfg.SideFile, blk.Code, 0o644); err != nil {
			return TimingSample{}, fmt.Errorf("side file: %w", err)
		}
	}

	stop = r.stages.Start("map")
	exe, err := jit.NewExecutable(blk.Code)
	stop()
	if err != nil {
		return TimingSample{}, err
	}
	defer exe.Close()

	stop = r.stages.Start("fill")
	r.zero.Fill(0x00)
	r.data.Fill(0xFF)
	stop()

	stop = r.stages.Start("warmup")
	err = exe.Call()
	stop()
	if err != nil {
		return TimingSample{}, err
	}
	stop = r.stages.Start("timed")
	begin, err := r.counter.Read()
	if err != nil {
		return TimingSample{}, err
	}
	if err := exe.Call(); err != nil {
		return TimingSample{}, err
	}
	end, err := r.counter.Read()
	stop()
	if err != nil {
		return TimingSample{}, err
	}

	s := newSample(rc.Name(), e.Name, m, int64(end-begin), blk.Total())
	log.Debug(log.BenchMonitoring, "measured", "entry", e.String(), "mode", m, "cycles", s.Cycles, "cpi", s.CPI)
	return s, nil
}

// Close releases the scratch regions. The counter stays with the caller.
func (r *Runner) Close() error {
	err := r.zero.Close()
	if derr := r.data.Close(); err == nil {
		err = derr
	}
	return err
}
