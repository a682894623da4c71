package bench

import (
	"testing"

	"github.com/colorfulnotion/ltbench/x86"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterClassTable(t *testing.T) {
	tests := []struct {
		id      ClassID
		name    string
		vector  bool
		scratch int
		group   int
		first   string
		latency string
	}{
		{Reg64, "reg64", false, 8, 8, "r8", "r8"},
		{M128, "m128", true, 12, 12, "xmm4", "xmm8"},
		{M256, "m256", true, 12, 12, "ymm4", "ymm8"},
		{M512, "m512", true, 28, 12, "zmm4", "zmm8"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rc := NewRegisterClass(tc.id)
			assert.Equal(t, tc.name, rc.Name())
			assert.Equal(t, tc.name, tc.id.String())
			assert.Equal(t, tc.vector, rc.IsVector())
			assert.Len(t, rc.ScratchRegisters(), tc.scratch)
			assert.Equal(t, tc.group, rc.GroupSize())
			assert.Len(t, rc.Group(), tc.group)
			assert.Equal(t, tc.first, rc.ScratchRegisters()[0].Name)
			assert.Equal(t, tc.latency, rc.LatencyReg().Name)
			assert.Contains(t, rc.Group(), rc.LatencyReg())

			parsed, err := ParseClass(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.id, parsed)
		})
	}
	_, err := ParseClass("m1024")
	assert.Error(t, err)
}

func TestScratchExcludesReservedRegisters(t *testing.T) {
	reserved := []x86.Reg{x86.RSP, x86.RBP, x86.RCX, x86.RDX, x86.RDI, x86.RAX}
	for _, id := range Classes {
		rc := NewRegisterClass(id)
		seen := map[string]bool{}
		for _, r := range rc.ScratchRegisters() {
			assert.NotContains(t, reserved, r, "%s", id)
			assert.False(t, seen[r.Name], "duplicate %s", r.Name)
			seen[r.Name] = true
		}
	}
}

func TestLowRegisters(t *testing.T) {
	assert.Empty(t, NewRegisterClass(Reg64).Low())
	low := NewRegisterClass(M256).Low()
	require.Len(t, low, 4)
	assert.Equal(t, x86.YMM(0), low[0])
	assert.Equal(t, x86.YMM(3), low[3])
}

func TestSaveRestoreBreakEncoding(t *testing.T) {
	emit := func(f func(a *x86.Assembler)) []byte {
		a := x86.NewAssembler()
		f(a)
		return a.Bytes()
	}
	tests := []struct {
		name string
		got  func(a *x86.Assembler)
		want []byte
	}{
		{"reg64 save", func(a *x86.Assembler) {
			NewRegisterClass(Reg64).Save(a, x86.R8, 64, Int)
		}, []byte{0x4C, 0x89, 0x44, 0x24, 0x40}},
		{"reg64 restore", func(a *x86.Assembler) {
			NewRegisterClass(Reg64).Restore(a, x86.R15, 64, FP64)
		}, []byte{0x4C, 0x8B, 0x7C, 0x24, 0x40}},
		{"reg64 break", func(a *x86.Assembler) {
			NewRegisterClass(Reg64).BreakDependency(a, x86.R9, Int)
		}, []byte{0x4D, 0x31, 0xC9}},
		{"m128 save fp32", func(a *x86.Assembler) {
			NewRegisterClass(M128).Save(a, x86.XMM(4), 64, FP32)
		}, []byte{0x0F, 0x29, 0x64, 0x24, 0x40}},
		{"m128 restore int", func(a *x86.Assembler) {
			NewRegisterClass(M128).Restore(a, x86.XMM(4), 64, Int)
		}, []byte{0x66, 0x0F, 0x6F, 0x64, 0x24, 0x40}},
		{"m128 break fp64", func(a *x86.Assembler) {
			NewRegisterClass(M128).BreakDependency(a, x86.XMM(9), FP64)
		}, []byte{0x66, 0x45, 0x0F, 0x57, 0xC9}},
		{"m256 break int uses vex.128", func(a *x86.Assembler) {
			NewRegisterClass(M256).BreakDependency(a, x86.YMM(4), Int)
		}, []byte{0xC5, 0xD9, 0xEF, 0xE4}},
		{"m256 break fp32", func(a *x86.Assembler) {
			NewRegisterClass(M256).BreakDependency(a, x86.YMM(4), FP32)
		}, emit(func(a *x86.Assembler) { a.Vxorps(x86.YMM(4), x86.YMM(4), x86.YMM(4)) })},
		{"m512 save int", func(a *x86.Assembler) {
			NewRegisterClass(M512).Save(a, x86.ZMM(4), 64, Int)
		}, []byte{0x62, 0xF1, 0xFD, 0x48, 0x7F, 0x64, 0x24, 0x01}},
		{"m512 break fp64", func(a *x86.Assembler) {
			NewRegisterClass(M512).BreakDependency(a, x86.ZMM(20), FP64)
		}, []byte{0x62, 0xA1, 0xDD, 0x40, 0xEF, 0xE4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, emit(tc.got))
		})
	}
}

func TestNewRegisterClassPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { NewRegisterClass(ClassID(9)) })
}
