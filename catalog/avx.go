package catalog

import (
	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/x86"
)

var (
	xmm0, xmm2, xmm3 = x86.XMM(0), x86.XMM(2), x86.XMM(3)
	ymm0, ymm1, ymm2 = x86.YMM(0), x86.YMM(1), x86.YMM(2)
	ymm3             = x86.YMM(3)
)

// gather32 assembles eight dwords with scalar loads and inserts, the
// pre-AVX2 replacement for vpgatherdd. at addresses the loads.
func gather32(at func(disp int32) x86.Mem, chain bool) op {
	return func(a *x86.Assembler, _, _ x86.Reg) {
		a.Vmovd(xmm2, at(0))
		a.Vmovd(xmm3, at(0))
		for _, d := range []int32{4, 8, 12} {
			a.Vpinsrd(xmm2, xmm2, at(d), 0)
			a.Vpinsrd(xmm3, xmm3, at(d), 0)
		}
		a.Vperm2i128(ymm2, ymm2, ymm3, 0)
		if chain {
			a.Vmovd(x86.EDI, xmm2)
		}
	}
}

// gather64 is the qword variant of gather32.
func gather64(at func(disp int32) x86.Mem, chain bool) op {
	return func(a *x86.Assembler, _, _ x86.Reg) {
		a.Vmovq(xmm2, at(0))
		a.Vmovq(xmm3, at(0))
		a.Vpinsrq(xmm2, xmm2, mem(8), 1)
		a.Vpinsrd(xmm3, xmm3, mem(8), 1)
		a.Vperm2i128(ymm2, ymm2, ymm3, 0)
		if chain {
			a.Vmovd(x86.EDI, xmm2)
		}
	}
}

func (b *builder) avx() {
	const ymm = bench.M256

	if b.has(cpu.AVX) {
		b.genLatency(ymm, "movaps [mem]", loadPlain(vmovaps, 0), loadChain(vmovaps, 0), false, bench.FP32)
		for _, o := range loadOffsets {
			b.genLatency(ymm, "vmovdqu"+o.suffix, loadPlain(vmovdqu, o.disp), loadChain(vmovdqu, o.disp), false, bench.FP32)
		}

		b.gen(ymm, "vxorps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vxorps(dst, dst, src) }, false, bench.FP32)
		b.gen(ymm, "vmulps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vmulps(dst, dst, src) }, false, bench.FP32)
		b.gen(ymm, "vaddps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vaddps(dst, dst, src) }, false, bench.FP32)
		b.gen(ymm, "vdivps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vdivps(dst, dst, src) }, false, bench.FP32)
		b.gen(ymm, "vdivpd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vdivpd(dst, dst, src) }, false, bench.FP64)
		b.gen(ymm, "vrsqrtps", func(a *x86.Assembler, dst, _ x86.Reg) { a.Vrsqrtps(dst, dst) }, false, bench.FP32)
		b.gen(ymm, "vrcpps", func(a *x86.Assembler, dst, _ x86.Reg) { a.Vrcpps(dst, dst) }, false, bench.FP32)
		b.gen(ymm, "vsqrtps", func(a *x86.Assembler, dst, _ x86.Reg) { a.Vsqrtps(dst, dst) }, false, bench.FP32)
		b.gen(ymm, "vperm2f128", func(a *x86.Assembler, dst, src x86.Reg) { a.Vperm2f128(dst, dst, src, 0) }, false, bench.FP32)
	}

	if b.has(cpu.AVX2) {
		b.gen(ymm, "vpxor", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpxor(dst, dst, src) }, false, bench.Int)
		b.gen(ymm, "vpaddd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpaddd(dst, dst, src) }, false, bench.Int)
		b.gen(ymm, "vpermps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpermps(dst, dst, src) }, false, bench.FP32)
		b.gen(ymm, "vpermpd", func(a *x86.Assembler, dst, _ x86.Reg) { a.Vpermpd(dst, dst, 0) }, false, bench.FP64)
		b.gen(ymm, "vpblendvb", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpblendvb(dst, src, src, src) }, false, bench.Int)
		b.throughputOnly(ymm, "vpmovmskb", func(a *x86.Assembler, _, _ x86.Reg) { a.Vpmovmskb(x86.EDX, ymm0) }, false, bench.Int)

		b.genLatency(ymm, "vpmovsxwd",
			func(a *x86.Assembler, _, _ x86.Reg) { a.Vpmovsxwd(ymm1, xmm0) },
			func(a *x86.Assembler, _, _ x86.Reg) { a.Vpmovsxwd(ymm0, xmm0) },
			false, bench.Int)

		// the index vector is ymm0/xmm0, the mask ymm1
		b.genLatency(ymm, "vpgatherdd",
			func(a *x86.Assembler, _, _ x86.Reg) { a.Vpgatherdd(ymm2, memIndex(ymm0), ymm1) },
			func(a *x86.Assembler, _, _ x86.Reg) {
				a.Vpgatherdd(ymm2, memIndex(ymm0), ymm1)
				a.Vmovdqa(ymm0, ymm2)
			},
			false, bench.Int)
		b.genLatency(ymm, "gather32(<ld+ins>x8 + perm)", gather32(mem, false), gather32(memCarry, true), false, bench.FP32)

		b.genLatency(ymm, "vgatherdpd",
			func(a *x86.Assembler, _, _ x86.Reg) { a.Vgatherdpd(ymm2, memIndex(xmm0), ymm1) },
			func(a *x86.Assembler, _, _ x86.Reg) {
				a.Vgatherdpd(ymm2, memIndex(xmm0), ymm1)
				a.Vmovdqa(ymm0, ymm2)
			},
			false, bench.Int)
		b.genLatency(ymm, "gather64(<ld+ins>x4 + perm)", gather64(mem, false), gather64(memCarry, true), false, bench.FP32)

		b.gen(ymm, "vpshufb", func(a *x86.Assembler, dst, src x86.Reg) { a.Vpshufb(dst, src, src) }, false, bench.Int)
	}

	if b.has(cpu.FMA) {
		for _, class := range []bench.ClassID{ymm, bench.M128} {
			b.gen(class, "vfmaps", func(a *x86.Assembler, dst, src x86.Reg) { a.Vfmadd132ps(dst, src, src) }, false, bench.FP32)
			b.gen(class, "vfmapd", func(a *x86.Assembler, dst, src x86.Reg) { a.Vfmadd132pd(dst, src, src) }, false, bench.FP64)
		}
	}
}
