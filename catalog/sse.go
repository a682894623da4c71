package catalog

import (
	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/x86"
)

// loadChain is the latency form of a vector load: the next address depends
// on the loaded value through rdi.
func loadChain(load func(a *x86.Assembler, dst x86.Reg, m x86.Mem), disp int32) op {
	return func(a *x86.Assembler, dst, _ x86.Reg) {
		load(a, dst, memCarry(disp))
		a.Movq(rdi, dst.AsXMM())
	}
}

func loadPlain(load func(a *x86.Assembler, dst x86.Reg, m x86.Mem), disp int32) op {
	return func(a *x86.Assembler, dst, _ x86.Reg) { load(a, dst, mem(disp)) }
}

func movaps(a *x86.Assembler, dst x86.Reg, m x86.Mem)  { a.Movaps(dst, m) }
func movdqu(a *x86.Assembler, dst x86.Reg, m x86.Mem)  { a.Movdqu(dst, m) }
func vmovaps(a *x86.Assembler, dst x86.Reg, m x86.Mem) { a.Vmovaps(dst, m) }
func vmovdqu(a *x86.Assembler, dst x86.Reg, m x86.Mem) { a.Vmovdqu(dst, m) }

// unaligned loads at 1, across a cache line and across a 2 MiB page
var loadOffsets = []struct {
	suffix string
	disp   int32
}{
	{" [mem+1]", 1},
	{" [mem+63] (cross cache)", 63},
	{" [mem+2MB-1] (cross page)", 2048*1024 - 1},
}

func (b *builder) sse() {
	const xmm = bench.M128

	b.throughputOnly(xmm, "loadps", loadPlain(movaps, 0), false, bench.Int)
	b.latencyOnly(xmm, "loadps->movq", loadChain(movaps, 0), false, bench.Int)
	b.gen(xmm, "movq->movq", func(a *x86.Assembler, dst, src x86.Reg) {
		a.Movq(rdi, src)
		a.Movq(dst, rdi)
	}, false, bench.Int)

	b.gen(xmm, "xorps", func(a *x86.Assembler, dst, src x86.Reg) { a.Xorps(dst, src) }, false, bench.FP32)
	b.gen(xmm, "addps", func(a *x86.Assembler, dst, src x86.Reg) { a.Addps(dst, src) }, false, bench.FP32)
	b.gen(xmm, "mulps", func(a *x86.Assembler, dst, src x86.Reg) { a.Mulps(dst, src) }, false, bench.FP32)
	b.gen(xmm, "divps", func(a *x86.Assembler, dst, src x86.Reg) { a.Divps(dst, src) }, false, bench.FP32)
	b.gen(xmm, "divpd", func(a *x86.Assembler, dst, src x86.Reg) { a.Divpd(dst, src) }, false, bench.FP64)
	b.gen(xmm, "sqrtps", func(a *x86.Assembler, dst, _ x86.Reg) { a.Sqrtps(dst, dst) }, false, bench.FP32)
	b.gen(xmm, "rsqrtps", func(a *x86.Assembler, dst, _ x86.Reg) { a.Rsqrtps(dst, dst) }, false, bench.FP32)
	b.gen(xmm, "rcpps", func(a *x86.Assembler, dst, _ x86.Reg) { a.Rcpps(dst, dst) }, false, bench.FP32)
	b.gen(xmm, "shufps", func(a *x86.Assembler, dst, src x86.Reg) { a.Shufps(dst, src, 0) }, false, bench.FP32)
	b.gen(xmm, "pmullw", func(a *x86.Assembler, dst, src x86.Reg) { a.Pmullw(dst, src) }, false, bench.Int)
	b.gen(xmm, "cvtps2dq", func(a *x86.Assembler, dst, src x86.Reg) { a.Cvtps2dq(dst, src) }, false, bench.FP32)

	if b.has(cpu.SSE3) {
		b.gen(xmm, "haddps", func(a *x86.Assembler, dst, src x86.Reg) { a.Haddps(dst, src) }, false, bench.FP32)
	}
	if b.has(cpu.SSSE3) {
		b.gen(xmm, "pshufb", func(a *x86.Assembler, dst, src x86.Reg) { a.Pshufb(dst, src) }, false, bench.Int)
		b.gen(xmm, "phaddd", func(a *x86.Assembler, dst, src x86.Reg) { a.Phaddd(dst, src) }, false, bench.Int)
	}
	if b.has(cpu.SSE41) {
		b.gen(xmm, "blendps", func(a *x86.Assembler, dst, src x86.Reg) { a.Blendps(dst, src, 0) }, false, bench.FP32)
		// blendvps reads xmm0 implicitly; the throughput form clears dst so
		// rounds do not chain through it
		b.genLatency(xmm, "blendvps",
			func(a *x86.Assembler, dst, src x86.Reg) {
				a.Blendvps(dst, src)
				a.Xorps(dst, dst)
			},
			func(a *x86.Assembler, dst, src x86.Reg) { a.Blendvps(dst, src) },
			false, bench.FP32)
		b.gen(xmm, "pinsrb", func(a *x86.Assembler, dst, _ x86.Reg) { a.Pinsrb(dst, x86.EDX, 0) }, false, bench.Int)
		b.latencyOnly(xmm, "pinsrb->pextrd", func(a *x86.Assembler, dst, _ x86.Reg) {
			a.Pinsrb(dst, x86.EDX, 0)
			a.Pextrd(x86.EDX, dst, 0)
		}, false, bench.Int)
		b.gen(xmm, "dpps", func(a *x86.Assembler, dst, src x86.Reg) { a.Dpps(dst, src, 0xFF) }, false, bench.FP32)
	}

	b.genLatency(xmm, "movaps [mem]", loadPlain(movaps, 0), loadChain(movaps, 0), false, bench.FP32)
	for _, o := range loadOffsets {
		b.genLatency(xmm, "movdqu"+o.suffix, loadPlain(movdqu, o.disp), loadChain(movdqu, o.disp), false, bench.FP32)
	}
}
