// Package stage records wall-clock time spent in each phase of the harness
// (code generation, mapping, warm-up, timed call). A nil *Recorder is valid
// and records nothing.
package stage

import (
	"sort"
	"sync"
	"time"
)

type Recorder struct {
	mu   sync.Mutex
	data map[string][]time.Duration
}

func New() *Recorder { return &Recorder{data: make(map[string][]time.Duration)} }

func (r *Recorder) Add(name string, d time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.data[name] = append(r.data[name], d)
	r.mu.Unlock()
}

// Start begins timing name; the returned func stops it.
func (r *Recorder) Start(name string) func() {
	if r == nil {
		return func() {}
	}
	start := time.Now()
	return func() { r.Add(name, time.Since(start)) }
}

type Row struct {
	Name     string
	Count    int
	Total    time.Duration
	Mean     time.Duration
	P50, P95 time.Duration
	Max      time.Duration
}

// Snapshot summarizes every phase, largest total first.
func (r *Recorder) Snapshot() []Row {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Row, 0, len(r.data))
	for name, list := range r.data {
		if len(list) == 0 {
			continue
		}
		s := append([]time.Duration(nil), list...)
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
		var total time.Duration
		for _, d := range s {
			total += d
		}
		p95 := int(float64(len(s))*0.95) - 1
		if p95 < 0 {
			p95 = 0
		}
		out = append(out, Row{
			Name:  name,
			Count: len(s),
			Total: total,
			Mean:  total / time.Duration(len(s)),
			P50:   s[len(s)/2],
			P95:   s[p95],
			Max:   s[len(s)-1],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}
