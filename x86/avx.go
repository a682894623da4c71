package x86

import "fmt"

const (
	formVEX = 1 << iota
	formEVEX
)

// vecOp is an AVX instruction with its VEX and/or EVEX encoding. n overrides
// the EVEX disp8 compression factor (0 means the full vector width).
type vecOp struct {
	pp, mm, op  byte
	vexW, evexW byte
	forms       byte
	n           int32
}

var (
	avxVmovapsLoad    = vecOp{PP_NONE, MAP_0F, 0x28, 0, 0, formVEX | formEVEX, 0}
	avxVmovapsStore   = vecOp{PP_NONE, MAP_0F, 0x29, 0, 0, formVEX | formEVEX, 0}
	avxVmovapdLoad    = vecOp{PP_66, MAP_0F, 0x28, 0, 1, formVEX | formEVEX, 0}
	avxVmovapdStore   = vecOp{PP_66, MAP_0F, 0x29, 0, 1, formVEX | formEVEX, 0}
	avxVmovdqaLoad    = vecOp{PP_66, MAP_0F, 0x6F, 0, 0, formVEX, 0}
	avxVmovdqaStore   = vecOp{PP_66, MAP_0F, 0x7F, 0, 0, formVEX, 0}
	avxVmovdqa64Load  = vecOp{PP_66, MAP_0F, 0x6F, 0, 1, formEVEX, 0}
	avxVmovdqa64Store = vecOp{PP_66, MAP_0F, 0x7F, 0, 1, formEVEX, 0}
	avxVmovdquLoad    = vecOp{PP_F3, MAP_0F, 0x6F, 0, 0, formVEX, 0}
	avxVmovdquStore   = vecOp{PP_F3, MAP_0F, 0x7F, 0, 0, formVEX, 0}

	avxVxorps   = vecOp{PP_NONE, MAP_0F, 0x57, 0, 0, formVEX, 0}
	avxVxorpd   = vecOp{PP_66, MAP_0F, 0x57, 0, 0, formVEX, 0}
	avxVpxor    = vecOp{PP_66, MAP_0F, 0xEF, 0, 0, formVEX, 0}
	avxVpxord   = vecOp{PP_66, MAP_0F, 0xEF, 0, 0, formEVEX, 0}
	avxVpxorq   = vecOp{PP_66, MAP_0F, 0xEF, 0, 1, formEVEX, 0}
	avxVaddps   = vecOp{PP_NONE, MAP_0F, 0x58, 0, 0, formVEX | formEVEX, 0}
	avxVmulps   = vecOp{PP_NONE, MAP_0F, 0x59, 0, 0, formVEX | formEVEX, 0}
	avxVdivps   = vecOp{PP_NONE, MAP_0F, 0x5E, 0, 0, formVEX | formEVEX, 0}
	avxVdivpd   = vecOp{PP_66, MAP_0F, 0x5E, 0, 1, formVEX | formEVEX, 0}
	avxVsqrtps  = vecOp{PP_NONE, MAP_0F, 0x51, 0, 0, formVEX | formEVEX, 0}
	avxVrsqrtps = vecOp{PP_NONE, MAP_0F, 0x52, 0, 0, formVEX, 0}
	avxVrcpps   = vecOp{PP_NONE, MAP_0F, 0x53, 0, 0, formVEX, 0}
	avxVpaddd   = vecOp{PP_66, MAP_0F, 0xFE, 0, 0, formVEX | formEVEX, 0}
	avxVpshufb  = vecOp{PP_66, MAP_0F38, 0x00, 0, 0, formVEX, 0}
	avxVshufps  = vecOp{PP_NONE, MAP_0F, 0xC6, 0, 0, formVEX | formEVEX, 0}

	avxVpermps    = vecOp{PP_66, MAP_0F38, 0x16, 0, 0, formVEX | formEVEX, 0}
	avxVpermpd    = vecOp{PP_66, MAP_0F3A, 0x01, 1, 1, formVEX, 0}
	avxVperm2f128 = vecOp{PP_66, MAP_0F3A, 0x06, 0, 0, formVEX, 0}
	avxVperm2i128 = vecOp{PP_66, MAP_0F3A, 0x46, 0, 0, formVEX, 0}
	avxVpblendvb  = vecOp{PP_66, MAP_0F3A, 0x4C, 0, 0, formVEX, 0}
	avxVpmovmskb  = vecOp{PP_66, MAP_0F, 0xD7, 0, 0, formVEX, 0}
	avxVpmovsxwd  = vecOp{PP_66, MAP_0F38, 0x23, 0, 0, formVEX, 0}
	avxVpgatherdd = vecOp{PP_66, MAP_0F38, 0x90, 0, 0, formVEX, 0}
	avxVgatherdpd = vecOp{PP_66, MAP_0F38, 0x92, 1, 1, formVEX, 0}
	avxVmovdLoad  = vecOp{PP_66, MAP_0F, 0x6E, 0, 0, formVEX, 0}
	avxVmovdStore = vecOp{PP_66, MAP_0F, 0x7E, 0, 0, formVEX, 0}
	avxVmovqLoad  = vecOp{PP_F3, MAP_0F, 0x7E, 0, 0, formVEX, 0}
	avxVpinsrd    = vecOp{PP_66, MAP_0F3A, 0x22, 0, 0, formVEX, 0}
	avxVpinsrq    = vecOp{PP_66, MAP_0F3A, 0x22, 1, 1, formVEX, 0}

	fmaVfmadd132ps = vecOp{PP_66, MAP_0F38, 0x98, 0, 0, formVEX | formEVEX, 0}
	fmaVfmadd132pd = vecOp{PP_66, MAP_0F38, 0x98, 1, 1, formVEX | formEVEX, 0}

	avx512Vpexpandd   = vecOp{PP_66, MAP_0F38, 0x89, 0, 0, formEVEX, 4}
	avx512Vplzcntq    = vecOp{PP_66, MAP_0F38, 0x44, 0, 1, formEVEX, 0}
	avx512Vpconflictd = vecOp{PP_66, MAP_0F38, 0xC4, 0, 0, formEVEX, 0}
	avx512Vpermt2d    = vecOp{PP_66, MAP_0F38, 0x7E, 0, 0, formEVEX, 0}
	avx512Vrcp14pd    = vecOp{PP_66, MAP_0F38, 0x4C, 0, 1, formEVEX, 0}
	avx512Vrcp28pd    = vecOp{PP_66, MAP_0F38, 0xCA, 0, 1, formEVEX, 0}
	avx512Vpternlogd  = vecOp{PP_66, MAP_0F3A, 0x25, 0, 0, formEVEX, 0}
	avx512Vpdpwssd    = vecOp{PP_66, MAP_0F38, 0x52, 0, 0, formEVEX, 0}
	avx512Vpdpwssds   = vecOp{PP_66, MAP_0F38, 0x53, 0, 0, formEVEX, 0}
)

func highOperand(o Operand) bool {
	switch v := o.(type) {
	case Reg:
		return v.IsVector() && v.Index >= 16
	case Mem:
		return v.Index.IsVector() && v.Index.Index >= 16
	}
	return false
}

// vec emits op with vector length vl. reg is the ModRM.reg operand, v the
// VEX.vvvv operand (zero Reg when unused) and rm the ModRM.rm operand. The
// EVEX form is chosen for 512-bit length, registers 16-31 or EVEX-only ops.
func (a *Assembler) vec(op vecOp, vl Kind, reg, v Reg, rm Operand, imm ...byte) {
	useEVEX := op.forms&formVEX == 0 || vl == KindZMM ||
		(reg.IsVector() && reg.Index >= 16) || (v.IsVector() && v.Index >= 16) || highOperand(rm)
	var vvvv byte
	if v.IsValid() {
		vvvv = v.Index
	}
	if useEVEX {
		if op.forms&formEVEX == 0 {
			panic(fmt.Sprintf("x86: opcode %#02x has no EVEX form", op.op))
		}
		ll := byte(VL128)
		n := int32(16)
		switch vl {
		case KindYMM:
			ll, n = VL256, 32
		case KindZMM:
			ll, n = VL512, 64
		}
		if op.n != 0 {
			n = op.n
		}
		a.evex(op.pp, op.mm, op.evexW, ll, op.op, reg.Index, vvvv, rm, n, imm...)
		return
	}
	l := byte(VL128)
	if vl == KindYMM {
		l = VL256
	}
	a.vex(op.pp, op.mm, op.vexW, l, op.op, reg.Index, vvvv, rm, imm...)
}

// vecMove picks the load or store form depending on which side is memory.
func (a *Assembler) vecMove(load, store vecOp, dst, src Operand) {
	if m, ok := dst.(Mem); ok {
		s := src.(Reg)
		a.vec(store, s.Kind, s, Reg{}, m)
		return
	}
	d := dst.(Reg)
	a.vec(load, d.Kind, d, Reg{}, src)
}

func (a *Assembler) Vmovaps(dst, src Operand) { a.vecMove(avxVmovapsLoad, avxVmovapsStore, dst, src) }
func (a *Assembler) Vmovapd(dst, src Operand) { a.vecMove(avxVmovapdLoad, avxVmovapdStore, dst, src) }
func (a *Assembler) Vmovdqa(dst, src Operand) { a.vecMove(avxVmovdqaLoad, avxVmovdqaStore, dst, src) }
func (a *Assembler) Vmovdqu(dst, src Operand) { a.vecMove(avxVmovdquLoad, avxVmovdquStore, dst, src) }

func (a *Assembler) Vmovdqa64(dst, src Operand) {
	a.vecMove(avxVmovdqa64Load, avxVmovdqa64Store, dst, src)
}

// three-operand dst = src1 op src2
func (a *Assembler) Vxorps(dst, src1 Reg, src2 Operand) { a.vec(avxVxorps, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vxorpd(dst, src1 Reg, src2 Operand) { a.vec(avxVxorpd, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vpxor(dst, src1 Reg, src2 Operand)  { a.vec(avxVpxor, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vpxord(dst, src1 Reg, src2 Operand) { a.vec(avxVpxord, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vpxorq(dst, src1 Reg, src2 Operand) { a.vec(avxVpxorq, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vaddps(dst, src1 Reg, src2 Operand) { a.vec(avxVaddps, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vmulps(dst, src1 Reg, src2 Operand) { a.vec(avxVmulps, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vdivps(dst, src1 Reg, src2 Operand) { a.vec(avxVdivps, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vdivpd(dst, src1 Reg, src2 Operand) { a.vec(avxVdivpd, dst.Kind, dst, src1, src2) }
func (a *Assembler) Vpaddd(dst, src1 Reg, src2 Operand) { a.vec(avxVpaddd, dst.Kind, dst, src1, src2) }

func (a *Assembler) Vpshufb(dst, src1 Reg, src2 Operand) {
	a.vec(avxVpshufb, dst.Kind, dst, src1, src2)
}

// Vpermps permutes src2 by the indices in src1.
func (a *Assembler) Vpermps(dst, src1 Reg, src2 Operand) {
	a.vec(avxVpermps, dst.Kind, dst, src1, src2)
}

func (a *Assembler) Vfmadd132ps(dst, src1 Reg, src2 Operand) {
	a.vec(fmaVfmadd132ps, dst.Kind, dst, src1, src2)
}

func (a *Assembler) Vfmadd132pd(dst, src1 Reg, src2 Operand) {
	a.vec(fmaVfmadd132pd, dst.Kind, dst, src1, src2)
}

// unary dst = op src
func (a *Assembler) Vsqrtps(dst Reg, src Operand)  { a.vec(avxVsqrtps, dst.Kind, dst, Reg{}, src) }
func (a *Assembler) Vrsqrtps(dst Reg, src Operand) { a.vec(avxVrsqrtps, dst.Kind, dst, Reg{}, src) }
func (a *Assembler) Vrcpps(dst Reg, src Operand)   { a.vec(avxVrcpps, dst.Kind, dst, Reg{}, src) }

// Vpmovsxwd sign-extends eight words of src into dst.
func (a *Assembler) Vpmovsxwd(dst Reg, src Operand) {
	a.vec(avxVpmovsxwd, dst.Kind, dst, Reg{}, src)
}

func (a *Assembler) Vpermpd(dst Reg, src Operand, imm byte) {
	a.vec(avxVpermpd, dst.Kind, dst, Reg{}, src, imm)
}

func (a *Assembler) Vperm2f128(dst, src1 Reg, src2 Operand, imm byte) {
	a.vec(avxVperm2f128, KindYMM, dst, src1, src2, imm)
}

func (a *Assembler) Vperm2i128(dst, src1 Reg, src2 Operand, imm byte) {
	a.vec(avxVperm2i128, KindYMM, dst, src1, src2, imm)
}

func (a *Assembler) Vshufps(dst, src1 Reg, src2 Operand, imm byte) {
	a.vec(avxVshufps, dst.Kind, dst, src1, src2, imm)
}

// Vpblendvb selects bytes of src2 over src1 by the sign bits of mask.
func (a *Assembler) Vpblendvb(dst, src1 Reg, src2 Operand, mask Reg) {
	a.vec(avxVpblendvb, dst.Kind, dst, src1, src2, mask.Index<<4)
}

// Vpmovmskb gathers byte sign bits of src into a 32-bit register.
func (a *Assembler) Vpmovmskb(dst, src Reg) {
	a.vec(avxVpmovmskb, src.Kind, dst, Reg{}, src)
}

// Vpgatherdd gathers dwords from a VSIB address under mask.
func (a *Assembler) Vpgatherdd(dst Reg, m Mem, mask Reg) {
	a.vec(avxVpgatherdd, dst.Kind, dst, mask, m)
}

// Vgatherdpd gathers doubles through dword indices under mask.
func (a *Assembler) Vgatherdpd(dst Reg, m Mem, mask Reg) {
	a.vec(avxVgatherdpd, dst.Kind, dst, mask, m)
}

// Vmovd moves 32 bits between xmm and a 32-bit register or memory.
func (a *Assembler) Vmovd(dst, src Operand) {
	if d, ok := dst.(Reg); ok && d.IsVector() {
		a.vec(avxVmovdLoad, KindXMM, d, Reg{}, src)
		return
	}
	s := src.(Reg)
	a.vec(avxVmovdStore, KindXMM, s, Reg{}, dst)
}

// Vmovq loads 64 bits into the low quadword of dst.
func (a *Assembler) Vmovq(dst Reg, src Operand) {
	a.vec(avxVmovqLoad, KindXMM, dst, Reg{}, src)
}

func (a *Assembler) Vpinsrd(dst, src1 Reg, src2 Operand, imm byte) {
	a.vec(avxVpinsrd, KindXMM, dst, src1, src2, imm)
}

func (a *Assembler) Vpinsrq(dst, src1 Reg, src2 Operand, imm byte) {
	a.vec(avxVpinsrq, KindXMM, dst, src1, src2, imm)
}
