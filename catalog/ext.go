package catalog

import (
	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/x86"
)

func (b *builder) extensions() {
	if b.has(cpu.POPCNT) {
		b.gen(bench.Reg64, "popcnt", func(a *x86.Assembler, dst, src x86.Reg) { a.Popcnt(dst, src) }, false, bench.Int)
	}

	if b.has(cpu.AES) {
		b.gen(bench.M128, "aesenc", func(a *x86.Assembler, dst, src x86.Reg) { a.Aesenc(dst, src) }, false, bench.Int)
		b.gen(bench.M128, "aesenclast", func(a *x86.Assembler, dst, src x86.Reg) { a.Aesenclast(dst, src) }, false, bench.Int)
		b.gen(bench.M128, "aesdec", func(a *x86.Assembler, dst, src x86.Reg) { a.Aesdec(dst, src) }, false, bench.Int)
		b.gen(bench.M128, "aesdeclast", func(a *x86.Assembler, dst, src x86.Reg) { a.Aesdeclast(dst, src) }, false, bench.Int)
	}

	if b.has(cpu.PCLMULQDQ) {
		b.gen(bench.M128, "pclmulqdq", func(a *x86.Assembler, dst, src x86.Reg) { a.Pclmulqdq(dst, src, 0) }, false, bench.Int)
	}
}
