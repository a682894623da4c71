package bench

import (
	"fmt"

	"github.com/colorfulnotion/ltbench/log"
	"github.com/colorfulnotion/ltbench/x86"
)

// Fixed registers of the generated frame.
var (
	BaseReg    = x86.RDX // zero region, unless rcx is reserved
	CarryReg   = x86.RDI // carried across iterations, starts at zero
	CounterReg = x86.RCX
)

// Env is what a block needs from its runner.
type Env struct {
	Base       uintptr // loaded into BaseReg
	ReserveRCX bool
}

// Block is one generated, immutable benchmark routine.
type Block struct {
	Code         []byte
	Loops        int
	Instructions int // operation instances per iteration
	Class        string
	Mode         Mode
}

// Total is the number of operation instances one call executes.
func (b *Block) Total() float64 {
	return float64(b.Loops) * float64(b.Instructions)
}

// Generate emits a callable block that runs op loopCount times per call,
// insnPerIter instances per iteration, shaped by mode.
//
// Frame: rbp is pushed and rsp aligned down to 64 bytes. [rsp] preserves
// CarryReg and [rsp+64*(i+1)] preserves scratch register i.
func Generate(op Operation, rc *RegisterClass, loopCount, insnPerIter int, mode Mode, ot OperandType, env Env) (blk *Block, err error) {
	if op == nil {
		return nil, fmt.Errorf("bench: nil operation")
	}
	if loopCount <= 0 || insnPerIter <= 0 {
		return nil, fmt.Errorf("bench: invalid loop count %d or instruction count %d", loopCount, insnPerIter)
	}
	if ot < Int || ot > FP64 {
		return nil, fmt.Errorf("bench: invalid operand type %d", int(ot))
	}
	emitted := insnPerIter
	if mode != Latency {
		emitted = insnPerIter / rc.GroupSize() * rc.GroupSize()
		if emitted == 0 {
			return nil, fmt.Errorf("bench: %d instructions per iteration is less than the %s group of %d",
				insnPerIter, rc.Name(), rc.GroupSize())
		}
	}

	defer func() {
		if r := recover(); r != nil {
			blk, err = nil, fmt.Errorf("bench: emitting %s %s block: %v", rc.Name(), mode, r)
		}
	}()

	a := x86.NewAssembler()
	scratch := rc.ScratchRegisters()
	slot := func(i int) int32 { return int32(SlotSize * (i + 1)) }

	a.Push(x86.RBP)
	a.Mov(x86.RBP, x86.RSP)
	a.AndImm(x86.RSP, -SlotSize)
	a.SubImm(x86.RSP, int32(SlotSize*(len(scratch)+1)))

	for i, r := range scratch {
		rc.Save(a, r, slot(i), ot)
	}
	for _, r := range scratch {
		rc.BreakDependency(a, r, ot)
	}
	for _, r := range rc.Low() {
		rc.BreakDependency(a, r, ot)
	}

	counter := CounterReg
	if env.ReserveRCX {
		counter = x86.RDX
		a.MovImm(x86.RCX, 16)
		a.MovImm(x86.RAX, 16)
	} else {
		a.MovImm(BaseReg, int64(env.Base))
	}
	a.MovImm(counter, int64(loopCount))
	a.Mov(x86.Ptr(x86.RSP), CarryReg)
	a.Xor(CarryReg, CarryReg)

	a.Align(16)
	top := a.Label()

	switch mode {
	case Latency:
		r := rc.LatencyReg()
		for i := 0; i < insnPerIter; i++ {
			op(a, r, r)
		}
	case Throughput, ThroughputKillDep:
		group := rc.Group()
		for round := 0; round < emitted/len(group); round++ {
			for _, r := range group {
				op(a, r, r)
			}
		}
		if mode == ThroughputKillDep {
			for _, r := range group {
				rc.BreakDependency(a, r, ot)
			}
		}
	default:
		return nil, fmt.Errorf("bench: unknown mode %d", int(mode))
	}

	a.Dec(counter)
	a.JnzBack(top)

	a.Mov(CarryReg, x86.Ptr(x86.RSP))
	for i, r := range scratch {
		rc.Restore(a, r, slot(i), ot)
	}
	a.Mov(x86.RSP, x86.RBP)
	a.Pop(x86.RBP)
	a.Ret()

	log.Trace(log.GenMonitoring, "generated block", "class", rc.Name(), "mode", mode,
		"type", ot, "bytes", a.Len(), "loops", loopCount, "insn", emitted)
	return &Block{
		Code:         a.Bytes(),
		Loops:        loopCount,
		Instructions: emitted,
		Class:        rc.Name(),
		Mode:         mode,
	}, nil
}
