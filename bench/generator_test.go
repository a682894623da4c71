package bench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/colorfulnotion/ltbench/x86"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = 0x10000000

func addOp(a *x86.Assembler, dst, src x86.Reg) { a.Add(dst, src) }

func count(lines []string, want string) int {
	n := 0
	for _, l := range lines {
		if l == want {
			n++
		}
	}
	return n
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}

func TestGenerateLatencyGP(t *testing.T) {
	rc := NewRegisterClass(Reg64)
	blk, err := Generate(addOp, rc, 100, 16, Latency, Int, Env{Base: testBase})
	require.NoError(t, err)
	assert.Equal(t, 16, blk.Instructions)
	assert.Equal(t, 100, blk.Loops)
	assert.Equal(t, float64(1600), blk.Total())
	assert.Equal(t, "reg64", blk.Class)

	ops := x86.Mnemonics(blk.Code)
	require.NotContains(t, ops, "db")
	assert.Equal(t, "push rbp", ops[0])
	assert.Equal(t, "mov rbp, rsp", ops[1])
	assert.Equal(t, 16, count(ops, "add r8, r8"))
	assert.Zero(t, count(ops, "add r9, r9"))
	assert.Equal(t, 1, count(ops, "dec rcx"))
	assert.Equal(t, 1, count(ops, "xor rdi, rdi"))
	assert.Equal(t, 1, count(ops, "xor r15, r15"))
	assert.Equal(t, []string{"mov rsp, rbp", "pop rbp", "ret"}, ops[len(ops)-3:])

	// saves precede breaks, breaks precede the loop
	assert.Less(t, indexOf(ops, "xor r15, r15"), indexOf(ops, "add r8, r8"))
	assert.Less(t, indexOf(ops, "add r8, r8"), indexOf(ops, "dec rcx"))
}

func TestGenerateLoopIsAligned(t *testing.T) {
	rc := NewRegisterClass(Reg64)
	blk, err := Generate(addOp, rc, 1, 8, Latency, Int, Env{Base: testBase})
	require.NoError(t, err)

	a := x86.NewAssembler()
	a.Add(x86.R8, x86.R8)
	first := bytes.Index(blk.Code, bytes.Repeat(a.Bytes(), 8))
	require.Positive(t, first)
	assert.Zero(t, first%16)
}

func TestGenerateThroughputGP(t *testing.T) {
	rc := NewRegisterClass(Reg64)
	blk, err := Generate(addOp, rc, 10, 64, Throughput, Int, Env{Base: testBase})
	require.NoError(t, err)
	assert.Equal(t, 64, blk.Instructions)

	ops := x86.Mnemonics(blk.Code)
	for _, r := range rc.Group() {
		assert.Equal(t, 8, count(ops, "add "+r.Name+", "+r.Name), r.Name)
		assert.Equal(t, 1, count(ops, "xor "+r.Name+", "+r.Name), r.Name)
	}
}

func TestGenerateThroughputKillDep(t *testing.T) {
	rc := NewRegisterClass(Reg64)
	blk, err := Generate(addOp, rc, 10, 64, ThroughputKillDep, Int, Env{Base: testBase})
	require.NoError(t, err)

	ops := x86.Mnemonics(blk.Code)
	loop := indexOf(ops, "add r8, r8")
	end := indexOf(ops, "dec rcx")
	require.Positive(t, loop)
	for _, r := range rc.Group() {
		xor := "xor " + r.Name + ", " + r.Name
		assert.Equal(t, 2, count(ops, xor), r.Name)
		inLoop := count(ops[loop:end], xor)
		assert.Equal(t, 1, inLoop, "%s broken once per iteration", r.Name)
	}
	// the break follows the last round
	assert.Equal(t, "xor r15, r15", ops[end-1])
}

func TestGenerateReserveRCX(t *testing.T) {
	rc := NewRegisterClass(Reg64)
	shl := func(a *x86.Assembler, dst, _ x86.Reg) { a.ShlCL(dst) }
	blk, err := Generate(shl, rc, 10, 64, Latency, Int, Env{Base: testBase, ReserveRCX: true})
	require.NoError(t, err)

	ops := x86.Mnemonics(blk.Code)
	assert.Equal(t, 1, count(ops, "dec rdx"))
	assert.Zero(t, count(ops, "dec rcx"))
	assert.Contains(t, ops, "mov rcx, 0x10")
	assert.Contains(t, ops, "mov rax, 0x10")
	assert.Equal(t, 64, count(ops, "shl r8, cl"))
}

func TestGenerateVectorFrame(t *testing.T) {
	rc := NewRegisterClass(M512)
	op := func(a *x86.Assembler, dst, src x86.Reg) { a.Vfmadd132ps(dst, src, src) }
	blk, err := Generate(op, rc, 10, 36, Throughput, FP32, Env{Base: testBase})
	require.NoError(t, err)
	assert.Equal(t, 36, blk.Instructions)

	snippet := func(f func(a *x86.Assembler)) []byte {
		a := x86.NewAssembler()
		f(a)
		return a.Bytes()
	}
	last := len(rc.ScratchRegisters()) - 1
	zmm31 := rc.ScratchRegisters()[last]
	assert.Equal(t, "zmm31", zmm31.Name)
	off := int32(SlotSize * (last + 1))
	assert.True(t, bytes.Contains(blk.Code, snippet(func(a *x86.Assembler) { a.Vmovaps(x86.PtrDisp(x86.RSP, off), zmm31) })))
	assert.True(t, bytes.Contains(blk.Code, snippet(func(a *x86.Assembler) { a.Vmovaps(zmm31, x86.PtrDisp(x86.RSP, off)) })))
	assert.True(t, bytes.Contains(blk.Code, snippet(func(a *x86.Assembler) { a.Vpxorq(x86.ZMM(0), x86.ZMM(0), x86.ZMM(0)) })))
	fma := snippet(func(a *x86.Assembler) { a.Vfmadd132ps(x86.ZMM(15), x86.ZMM(15), x86.ZMM(15)) })
	assert.Equal(t, 3, bytes.Count(blk.Code, fma))
	// frame covers the carry slot plus 28 scratch slots
	assert.True(t, bytes.Contains(blk.Code, snippet(func(a *x86.Assembler) { a.SubImm(x86.RSP, 29*SlotSize) })))
}

func TestGenerateThroughputRounding(t *testing.T) {
	blk, err := Generate(addOp, NewRegisterClass(M128), 1, 40, Throughput, Int, Env{})
	require.NoError(t, err)
	assert.Equal(t, 36, blk.Instructions)

	_, err = Generate(addOp, NewRegisterClass(Reg64), 1, 5, Throughput, Int, Env{})
	assert.Error(t, err)

	blk, err = Generate(addOp, NewRegisterClass(Reg64), 1, 5, Latency, Int, Env{})
	require.NoError(t, err)
	assert.Equal(t, 5, blk.Instructions)
}

func TestGenerateRejectsBadArguments(t *testing.T) {
	rc := NewRegisterClass(Reg64)
	_, err := Generate(nil, rc, 1, 8, Latency, Int, Env{})
	assert.Error(t, err)
	_, err = Generate(addOp, rc, 0, 8, Latency, Int, Env{})
	assert.Error(t, err)
	_, err = Generate(addOp, rc, 1, 0, Latency, Int, Env{})
	assert.Error(t, err)
	_, err = Generate(addOp, rc, 1, 8, Mode(7), Int, Env{})
	assert.Error(t, err)
	_, err = Generate(addOp, rc, 1, 8, Latency, OperandType(5), Env{})
	assert.Error(t, err)
}

func TestGenerateRecoversEncoderPanic(t *testing.T) {
	// vpxor has no EVEX form, so it cannot address zmm registers
	op := func(a *x86.Assembler, dst, src x86.Reg) { a.Vpxor(dst, dst, src) }
	_, err := Generate(op, NewRegisterClass(M512), 1, 36, Latency, Int, Env{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "m512"))
}

func TestNewSample(t *testing.T) {
	s := newSample("reg64", "add", Latency, 128, 64)
	assert.Equal(t, TimingSample{Class: "reg64", Inst: "add", Mode: "latency", CPI: 2, IPC: 0.5, Cycles: 128}, s)

	s = newSample("reg64", "add", ThroughputKillDep, 0, 64)
	assert.Equal(t, "throughput", s.Mode)
	assert.Zero(t, s.CPI)
	assert.True(t, s.IPC > 1e308)

	s = newSample("reg64", "add", Throughput, -64, 64)
	assert.Equal(t, -1.0, s.CPI)
	assert.Equal(t, -1.0, s.IPC)
}

func TestEntryModes(t *testing.T) {
	tput := Operation(addOp)
	lat := Operation(func(a *x86.Assembler, dst, src x86.Reg) { a.Xor(dst, src) })

	e := Entry{Name: "add", Throughput: tput}
	assert.Equal(t, []Mode{Latency, Throughput}, e.Modes())
	e.KillDep = true
	assert.Equal(t, []Mode{Latency, ThroughputKillDep}, e.Modes())
	e.Measure = MeasureLatency
	assert.Equal(t, []Mode{Latency}, e.Modes())
	e.Measure = MeasureThroughput
	assert.Equal(t, []Mode{ThroughputKillDep}, e.Modes())

	pick := func(op Operation) []byte {
		a := x86.NewAssembler()
		op(a, x86.R8, x86.R8)
		return a.Bytes()
	}
	e = Entry{Throughput: tput, Latency: lat}
	assert.Equal(t, pick(lat), pick(e.Operation(Latency)))
	assert.Equal(t, pick(tput), pick(e.Operation(Throughput)))
	e = Entry{Latency: lat, Measure: MeasureLatency}
	assert.Equal(t, pick(lat), pick(e.Operation(Latency)))
}

func TestConfigInstructions(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 131072, cfg.LoopCount)
	assert.Equal(t, 64, cfg.Instructions(NewRegisterClass(Reg64)))
	assert.Equal(t, 36, cfg.Instructions(NewRegisterClass(M256)))
}
