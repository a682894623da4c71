package bench

import (
	"fmt"

	"github.com/colorfulnotion/ltbench/x86"
)

// ClassID names a register family.
type ClassID int

const (
	Reg64 ClassID = iota
	M128
	M256
	M512
	numClasses
)

// Classes lists every family in catalog order.
var Classes = []ClassID{Reg64, M128, M256, M512}

func (c ClassID) String() string {
	if c < 0 || c >= numClasses {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classTable[c].name
}

// ParseClass maps a class name such as "m256" back to its ID.
func ParseClass(name string) (ClassID, error) {
	for id := ClassID(0); id < numClasses; id++ {
		if classTable[id].name == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown register class %q", name)
}

// OperandType selects the save/restore/break variant matching how a vector
// register's content is interpreted.
type OperandType int

const (
	Int OperandType = iota
	FP32
	FP64
)

func (t OperandType) String() string {
	switch t {
	case Int:
		return "int"
	case FP32:
		return "fp32"
	case FP64:
		return "fp64"
	}
	return fmt.Sprintf("operand(%d)", int(t))
}

// SlotSize is the stack bytes reserved per saved register.
const SlotSize = 64

type (
	moveFn  func(a *x86.Assembler, dst, src x86.Operand)
	breakFn func(a *x86.Assembler, r x86.Reg)
)

type classSpec struct {
	name         string
	kind         x86.Kind
	first, count int // scratch registers first .. first+count-1
	group        int // throughput fan-out, starting at first
	moves        [3]moveFn
	breaks       [3]breakFn
}

func gpMove(a *x86.Assembler, dst, src x86.Operand) { a.Mov(dst, src) }
func gpBreak(a *x86.Assembler, r x86.Reg)           { a.Xor(r, r) }

// classTable is indexed by ClassID and OperandType.
var classTable = [numClasses]classSpec{
	Reg64: {
		name: "reg64", kind: x86.KindGP64, first: 8, count: 8, group: 8,
		moves:  [3]moveFn{gpMove, gpMove, gpMove},
		breaks: [3]breakFn{gpBreak, gpBreak, gpBreak},
	},
	M128: {
		name: "m128", kind: x86.KindXMM, first: 4, count: 12, group: 12,
		moves: [3]moveFn{
			(*x86.Assembler).Movdqa,
			(*x86.Assembler).Movaps,
			(*x86.Assembler).Movapd,
		},
		breaks: [3]breakFn{
			func(a *x86.Assembler, r x86.Reg) { a.Pxor(r, r) },
			func(a *x86.Assembler, r x86.Reg) { a.Xorps(r, r) },
			func(a *x86.Assembler, r x86.Reg) { a.Xorpd(r, r) },
		},
	},
	M256: {
		name: "m256", kind: x86.KindYMM, first: 4, count: 12, group: 12,
		moves: [3]moveFn{
			(*x86.Assembler).Vmovdqa,
			(*x86.Assembler).Vmovaps,
			(*x86.Assembler).Vmovapd,
		},
		breaks: [3]breakFn{
			// VEX.128 vpxor clears the upper lane and needs only AVX.
			func(a *x86.Assembler, r x86.Reg) { x := r.AsXMM(); a.Vpxor(x, x, x) },
			func(a *x86.Assembler, r x86.Reg) { a.Vxorps(r, r, r) },
			func(a *x86.Assembler, r x86.Reg) { a.Vxorpd(r, r, r) },
		},
	},
	M512: {
		name: "m512", kind: x86.KindZMM, first: 4, count: 28, group: 12,
		moves: [3]moveFn{
			(*x86.Assembler).Vmovdqa64,
			(*x86.Assembler).Vmovaps,
			(*x86.Assembler).Vmovapd,
		},
		breaks: [3]breakFn{
			func(a *x86.Assembler, r x86.Reg) { a.Vpxorq(r, r, r) },
			func(a *x86.Assembler, r x86.Reg) { a.Vpxorq(r, r, r) },
			func(a *x86.Assembler, r x86.Reg) { a.Vpxorq(r, r, r) },
		},
	},
}

// RegisterClass describes one register family: its scratch registers and how
// to save, restore and zero them.
type RegisterClass struct {
	id      ClassID
	spec    *classSpec
	scratch []x86.Reg
}

// NewRegisterClass panics on an unknown id.
func NewRegisterClass(id ClassID) *RegisterClass {
	if id < 0 || id >= numClasses {
		panic(fmt.Sprintf("bench: unknown register class %d", int(id)))
	}
	spec := &classTable[id]
	rc := &RegisterClass{id: id, spec: spec, scratch: make([]x86.Reg, spec.count)}
	for i := range rc.scratch {
		rc.scratch[i] = rc.reg(spec.first + i)
	}
	return rc
}

func (rc *RegisterClass) reg(i int) x86.Reg {
	if rc.spec.kind == x86.KindGP64 {
		return x86.GP(i)
	}
	return x86.Vector(rc.spec.kind, i)
}

func (rc *RegisterClass) ID() ClassID         { return rc.id }
func (rc *RegisterClass) Name() string        { return rc.spec.name }
func (rc *RegisterClass) Kind() x86.Kind      { return rc.spec.kind }
func (rc *RegisterClass) IsVector() bool      { return rc.spec.kind != x86.KindGP64 }
func (rc *RegisterClass) GroupSize() int      { return rc.spec.group }
func (rc *RegisterClass) LatencyReg() x86.Reg { return rc.reg(8) }

// ScratchRegisters returns every register the generated code spills. The
// counter, base, carry and frame registers are never among them.
func (rc *RegisterClass) ScratchRegisters() []x86.Reg {
	return append([]x86.Reg(nil), rc.scratch...)
}

// Group returns the throughput fan-out registers.
func (rc *RegisterClass) Group() []x86.Reg {
	return rc.scratch[:rc.spec.group]
}

// Low returns the vector registers below the scratch set (v0..v3), which
// the generated code zeroes but does not preserve.
func (rc *RegisterClass) Low() []x86.Reg {
	if !rc.IsVector() {
		return nil
	}
	out := make([]x86.Reg, rc.spec.first)
	for i := range out {
		out[i] = rc.reg(i)
	}
	return out
}

// Save stores r to [rsp+off].
func (rc *RegisterClass) Save(a *x86.Assembler, r x86.Reg, off int32, ot OperandType) {
	rc.spec.moves[ot](a, x86.PtrDisp(x86.RSP, off), r)
}

// Restore loads r from [rsp+off].
func (rc *RegisterClass) Restore(a *x86.Assembler, r x86.Reg, off int32, ot OperandType) {
	rc.spec.moves[ot](a, r, x86.PtrDisp(x86.RSP, off))
}

// BreakDependency zeroes r with a self-referential xor.
func (rc *RegisterClass) BreakDependency(a *x86.Assembler, r x86.Reg, ot OperandType) {
	rc.spec.breaks[ot](a, r)
}

func (rc *RegisterClass) String() string { return rc.spec.name }
