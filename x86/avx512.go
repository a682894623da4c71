package x86

func (a *Assembler) Vpexpandd(dst Reg, src Operand) {
	a.vec(avx512Vpexpandd, dst.Kind, dst, Reg{}, src)
}

func (a *Assembler) Vplzcntq(dst Reg, src Operand) {
	a.vec(avx512Vplzcntq, dst.Kind, dst, Reg{}, src)
}

func (a *Assembler) Vpconflictd(dst Reg, src Operand) {
	a.vec(avx512Vpconflictd, dst.Kind, dst, Reg{}, src)
}

// Vpermt2d overwrites the table operand dst with dwords selected by src1.
func (a *Assembler) Vpermt2d(dst, src1 Reg, src2 Operand) {
	a.vec(avx512Vpermt2d, dst.Kind, dst, src1, src2)
}

func (a *Assembler) Vrcp14pd(dst Reg, src Operand) {
	a.vec(avx512Vrcp14pd, dst.Kind, dst, Reg{}, src)
}

// Vrcp28pd requires AVX512ER.
func (a *Assembler) Vrcp28pd(dst Reg, src Operand) {
	a.vec(avx512Vrcp28pd, dst.Kind, dst, Reg{}, src)
}

func (a *Assembler) Vpternlogd(dst, src1 Reg, src2 Operand, imm byte) {
	a.vec(avx512Vpternlogd, dst.Kind, dst, src1, src2, imm)
}

// Vpdpwssd and Vpdpwssds require AVX512_VNNI (and AVX512VL below 512 bits).
func (a *Assembler) Vpdpwssd(dst, src1 Reg, src2 Operand) {
	a.vec(avx512Vpdpwssd, dst.Kind, dst, src1, src2)
}

func (a *Assembler) Vpdpwssds(dst, src1 Reg, src2 Operand) {
	a.vec(avx512Vpdpwssds, dst.Kind, dst, src1, src2)
}
