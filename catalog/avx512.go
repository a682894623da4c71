package catalog

import (
	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/x86"
)

func (b *builder) avx512() {
	const zmm = bench.M512

	if b.has(cpu.AVX512F) {
		b.gen(zmm, "vfmaps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vfmadd132ps(dst, src, src) }, false, bench.FP32)
		b.gen(zmm, "vfmapd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vfmadd132pd(dst, src, src) }, false, bench.FP64)
		b.gen(zmm, "vfmaps reg, reg, [mem]", func(a *x86.Assembler, dst, src x86.Reg) { a.Vfmadd132ps(dst, src, mem(0)) }, false, bench.FP32)
		b.gen(zmm, "vpexpandd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpexpandd(dst, src) }, false, bench.FP32)
		b.gen(zmm, "vpermt2d", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpermt2d(dst, src, src) }, false, bench.FP32)
		b.gen(zmm, "vshufps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vshufps(dst, src, src, 0) }, false, bench.FP32)
		b.gen(zmm, "vrcp14pd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vrcp14pd(dst, src) }, false, bench.FP32)
		b.gen(zmm, "vpternlogd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpternlogd(dst, src, src, 0) }, false, bench.FP32)
	}

	if b.has(cpu.AVX512CD) {
		b.gen(zmm, "vplzcntq", func(a *x86.Assembler, dst, src x86.Reg) { a.Vplzcntq(dst, src) }, false, bench.FP32)
		b.gen(zmm, "vpconflictd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpconflictd(dst, src) }, false, bench.FP32)
	}

	if b.has(cpu.AVX512ER) {
		b.gen(zmm, "vrcp28pd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vrcp28pd(dst, src) }, false, bench.FP32)
	}

	if b.has(cpu.AVX512VNNI) {
		// the 256-bit forms are EVEX encoded and need VL
		classes := []bench.ClassID{zmm}
		if b.info.Has(cpu.AVX512VL) {
			classes = []bench.ClassID{bench.M256, zmm}
		}
		for _, class := range classes {
			b.gen(class, "vpdpwssds", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpdpwssds(dst, src, src) }, false, bench.FP32)
			b.gen(class, "vpdpwssd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpdpwssd(dst, src, src) }, false, bench.FP32)
		}
	}
}
