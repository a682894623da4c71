//go:build linux && amd64 && cgo

package bench

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/jit"
	"github.com/colorfulnotion/ltbench/x86"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	slotPattern = 0
	slotBroken  = 128
	slotRestore = 192
)

// saveBreakRestore loads the pattern from [rdx] into r, saves it to the
// frame, zeroes r and stores it to [rdx+slotBroken], then restores r from the
// frame and stores it to [rdx+slotRestore].
func saveBreakRestore(rc *RegisterClass, r x86.Reg, ot OperandType, base uintptr) []byte {
	move := rc.spec.moves[ot]
	a := x86.NewAssembler()
	a.Push(x86.RBP)
	a.Mov(x86.RBP, x86.RSP)
	a.AndImm(x86.RSP, -SlotSize)
	a.SubImm(x86.RSP, 2*SlotSize)
	a.MovImm(x86.RDX, int64(base))

	move(a, r, x86.PtrDisp(x86.RDX, slotPattern))
	rc.Save(a, r, SlotSize, ot)
	rc.BreakDependency(a, r, ot)
	move(a, x86.PtrDisp(x86.RDX, slotBroken), r)
	rc.Restore(a, r, SlotSize, ot)
	move(a, x86.PtrDisp(x86.RDX, slotRestore), r)

	a.Mov(x86.RSP, x86.RBP)
	a.Pop(x86.RBP)
	a.Ret()
	return a.Bytes()
}

func TestVectorSaveRestoreNative(t *testing.T) {
	info := cpu.Detect()
	cases := []struct {
		id    ClassID
		width int
		need  cpu.Feature
	}{
		{M128, 16, cpu.SSE2},
		{M256, 32, cpu.AVX},
		{M512, 64, cpu.AVX512F},
	}

	region, err := jit.NewRegion(1<<16, SlotSize)
	if err != nil {
		t.Skip(err)
	}
	defer region.Close()

	pattern := make([]byte, 64)
	for i := range pattern {
		pattern[i] = byte(i*37 + 0x5B)
	}

	for _, c := range cases {
		rc := NewRegisterClass(c.id)
		for _, ot := range []OperandType{Int, FP32, FP64} {
			for _, r := range rc.ScratchRegisters() {
				t.Run(fmt.Sprintf("%s/%s/%s", rc.Name(), ot, r.Name), func(t *testing.T) {
					if !info.Has(c.need) {
						t.Skipf("host lacks %s", c.need)
					}
					buf := region.Bytes()
					region.Fill(0xA5)
					copy(buf[slotPattern:], pattern)

					exe, err := jit.NewExecutable(saveBreakRestore(rc, r, ot, region.Addr()))
					require.NoError(t, err)
					defer exe.Close()
					require.NoError(t, exe.Call())

					assert.Equal(t, make([]byte, c.width), buf[slotBroken:slotBroken+c.width], "break leaves zero")
					assert.True(t, bytes.Equal(pattern[:c.width], buf[slotRestore:slotRestore+c.width]),
						"restore returns the saved bits: % x", buf[slotRestore:slotRestore+c.width])
				})
			}
		}
	}
}
