//go:build unicorn

package bench

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/colorfulnotion/ltbench/jit"
	"github.com/colorfulnotion/ltbench/x86"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The emulator has no AVX, so these cover the reg64 and m128 classes.

const sandboxRegion = 0x10000000

var pattern = []byte{
	0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11,
	0x01, 0x80, 0xF0, 0x7F, 0xFF, 0xFF, 0xC0, 0xFF,
}

func newSandbox(t *testing.T) *jit.Sandbox {
	t.Helper()
	s, err := jit.NewSandbox()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	region := make([]byte, 1<<16)
	copy(region, pattern)
	copy(region[32:], bytes.Repeat([]byte{0xA5}, 16))
	require.NoError(t, s.MapRegion(sandboxRegion, region))
	return s
}

// framed wraps body in a 64-byte aligned frame with rdx pointing at the
// region and r pre-loaded with the pattern, then stores r to [rdx+64].
func framed(rc *RegisterClass, r x86.Reg, body func(a *x86.Assembler)) []byte {
	a := x86.NewAssembler()
	a.Push(x86.RBP)
	a.Mov(x86.RBP, x86.RSP)
	a.AndImm(x86.RSP, -SlotSize)
	a.SubImm(x86.RSP, 2*SlotSize)
	a.MovImm(x86.RDX, sandboxRegion)
	if rc.IsVector() {
		a.Movdqu(r, x86.Ptr(x86.RDX))
	} else {
		a.Mov(r, x86.Ptr(x86.RDX))
	}
	body(a)
	if rc.IsVector() {
		a.Movdqu(x86.PtrDisp(x86.RDX, 64), r)
	} else {
		a.Mov(x86.PtrDisp(x86.RDX, 64), r)
	}
	a.Mov(x86.RSP, x86.RBP)
	a.Pop(x86.RBP)
	a.Ret()
	return a.Bytes()
}

func readBack(t *testing.T, s *jit.Sandbox, rc *RegisterClass) []byte {
	n := uint64(8)
	if rc.IsVector() {
		n = 16
	}
	out, err := s.MemRead(sandboxRegion+64, n)
	require.NoError(t, err)
	return out
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	for _, id := range []ClassID{Reg64, M128} {
		rc := NewRegisterClass(id)
		for _, ot := range []OperandType{Int, FP32, FP64} {
			for _, r := range rc.ScratchRegisters() {
				t.Run(fmt.Sprintf("%s/%s/%s", rc.Name(), ot, r.Name), func(t *testing.T) {
					s := newSandbox(t)
					code := framed(rc, r, func(a *x86.Assembler) {
						rc.Save(a, r, SlotSize, ot)
						if rc.IsVector() {
							a.Movdqu(r, x86.PtrDisp(x86.RDX, 32))
						} else {
							a.Mov(r, x86.PtrDisp(x86.RDX, 32))
						}
						rc.Restore(a, r, SlotSize, ot)
					})
					require.NoError(t, s.Call(code))
					out := readBack(t, s, rc)
					assert.Equal(t, pattern[:len(out)], out)
				})
			}
		}
	}
}

func TestBreakDependencyZeroes(t *testing.T) {
	for _, id := range []ClassID{Reg64, M128} {
		rc := NewRegisterClass(id)
		for _, ot := range []OperandType{Int, FP32, FP64} {
			for _, r := range rc.ScratchRegisters() {
				t.Run(fmt.Sprintf("%s/%s/%s", rc.Name(), ot, r.Name), func(t *testing.T) {
					s := newSandbox(t)
					code := framed(rc, r, func(a *x86.Assembler) { rc.BreakDependency(a, r, ot) })
					require.NoError(t, s.Call(code))
					out := readBack(t, s, rc)
					assert.Equal(t, make([]byte, len(out)), out)
				})
			}
		}
	}
}

func TestGeneratedBlockPreservesCallerRegisters(t *testing.T) {
	ops := map[ClassID]Operation{
		Reg64: addOp,
		M128:  func(a *x86.Assembler, dst, src x86.Reg) { a.Paddd(dst, src) },
	}
	for id, op := range ops {
		rc := NewRegisterClass(id)
		for _, mode := range []Mode{Latency, Throughput, ThroughputKillDep} {
			t.Run(fmt.Sprintf("%s/%s", rc.Name(), mode), func(t *testing.T) {
				s := newSandbox(t)
				blk, err := Generate(op, rc, 3, 24, mode, Int, Env{Base: sandboxRegion})
				require.NoError(t, err)

				want := map[x86.Reg]uint64{x86.RDI: 0xD1D1, x86.RBP: 0xB0B0, x86.RBX: 0xB1B1, x86.RSI: 0x5151}
				for i := 8; i < 16; i++ {
					want[x86.GP(i)] = uint64(0x1000 + i)
				}
				for r, v := range want {
					require.NoError(t, s.SetReg(r, v))
				}
				require.NoError(t, s.Call(blk.Code))
				for r, v := range want {
					got, err := s.Reg(r)
					require.NoError(t, err)
					assert.Equal(t, v, got, r.Name)
				}
				counter, err := s.Reg(CounterReg)
				require.NoError(t, err)
				assert.Zero(t, counter)
			})
		}
	}
}
