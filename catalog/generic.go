package catalog

import (
	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/x86"
)

func (b *builder) generic() {
	b.gen(bench.Reg64, "add", func(a *x86.Assembler, dst, src x86.Reg) { a.Add(dst, src) }, false, bench.Int)
	b.gen(bench.Reg64, "lea", func(a *x86.Assembler, dst, src x86.Reg) { a.Lea(dst, x86.Ptr(src)) }, false, bench.Int)
	b.gen(bench.Reg64, "xor dst,dst", func(a *x86.Assembler, dst, _ x86.Reg) { a.Xor(dst, dst) }, false, bench.Int)
	b.gen(bench.Reg64, "xor", func(a *x86.Assembler, dst, src x86.Reg) { a.Xor(dst, src) }, false, bench.Int)
	b.gen(bench.Reg64, "imul", func(a *x86.Assembler, dst, src x86.Reg) { a.Imul(dst, src) }, false, bench.Int)
	b.gen(bench.Reg64, "load", func(a *x86.Assembler, dst, src x86.Reg) { a.Mov(dst, memSrc(src)) }, false, bench.Int)
	if b.has(cpu.SSE42) {
		b.gen(bench.Reg64, "crc32", func(a *x86.Assembler, dst, src x86.Reg) { a.Crc32(dst, src) }, false, bench.Int)
	}

	// store forwarding: the load reads back what the previous store wrote
	b.gen(bench.Reg64, "store [mem+0]->load[mem+0]", func(a *x86.Assembler, dst, src x86.Reg) {
		a.Mov(memSrc(src), rdi)
		a.Mov(dst, mem(0))
	}, false, bench.Int)
	b.gen(bench.Reg64, "store [mem+0]->load[mem+1]", func(a *x86.Assembler, dst, src x86.Reg) {
		a.Mov(memSrc(src), rdi)
		a.Mov(dst, mem(1))
	}, false, bench.Int)

	// shift counts live in cl
	b.latencyOnly(bench.Reg64, "shl reg,cl", func(a *x86.Assembler, dst, _ x86.Reg) { a.ShlCL(dst) }, true, bench.Int)
	b.throughputOnly(bench.Reg64, "shld reg,reg,cl", func(a *x86.Assembler, dst, src x86.Reg) { a.ShldCL(dst, src) }, true, bench.Int)

	b.gen(bench.M128, "pxor", func(a *x86.Assembler, dst, src x86.Reg) { a.Pxor(dst, src) }, false, bench.Int)
	b.gen(bench.M128, "padd", func(a *x86.Assembler, dst, src x86.Reg) { a.Paddd(dst, src) }, false, bench.Int)
	if b.has(cpu.SSE41) {
		b.gen(bench.M128, "pmuldq", func(a *x86.Assembler, dst, src x86.Reg) { a.Pmuldq(dst, src) }, false, bench.Int)
	}
}
