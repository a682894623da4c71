//go:build amd64 && !linux && cgo

package counter

/*
#include <x86intrin.h>

static unsigned long long ltbench_rdtsc(void) {
	return __rdtsc();
}
*/
import "C"

type tscCounter struct{}

// Open returns the processor timestamp counter. It needs no setup.
func Open() (Counter, error) { return tscCounter{}, nil }

func (tscCounter) Read() (uint64, error) { return uint64(C.ltbench_rdtsc()), nil }

func (tscCounter) Close() error { return nil }

func (tscCounter) Name() string { return "rdtsc" }
