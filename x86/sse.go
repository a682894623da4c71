package x86

// sseOp is a legacy-encoded SSE instruction: mandatory prefix and opcode
// bytes after it (0F, 0F 38 or 0F 3A escape included).
type sseOp struct {
	prefix byte
	opcode []byte
}

var (
	sseMovapsLoad  = sseOp{PREFIX_NONE, []byte{0x0F, 0x28}}
	sseMovapsStore = sseOp{PREFIX_NONE, []byte{0x0F, 0x29}}
	sseMovapdLoad  = sseOp{PREFIX_66, []byte{0x0F, 0x28}}
	sseMovapdStore = sseOp{PREFIX_66, []byte{0x0F, 0x29}}
	sseMovdqaLoad  = sseOp{PREFIX_66, []byte{0x0F, 0x6F}}
	sseMovdqaStore = sseOp{PREFIX_66, []byte{0x0F, 0x7F}}
	sseMovdquLoad  = sseOp{PREFIX_F3, []byte{0x0F, 0x6F}}
	sseMovdquStore = sseOp{PREFIX_F3, []byte{0x0F, 0x7F}}

	ssePxor     = sseOp{PREFIX_66, []byte{0x0F, 0xEF}}
	sseXorps    = sseOp{PREFIX_NONE, []byte{0x0F, 0x57}}
	sseXorpd    = sseOp{PREFIX_66, []byte{0x0F, 0x57}}
	ssePaddd    = sseOp{PREFIX_66, []byte{0x0F, 0xFE}}
	ssePmullw   = sseOp{PREFIX_66, []byte{0x0F, 0xD5}}
	ssePmuldq   = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0x28}}
	ssePshufb   = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0x00}}
	ssePhaddd   = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0x02}}
	sseHaddps   = sseOp{PREFIX_F2, []byte{0x0F, 0x7C}}
	sseAddps    = sseOp{PREFIX_NONE, []byte{0x0F, 0x58}}
	sseMulps    = sseOp{PREFIX_NONE, []byte{0x0F, 0x59}}
	sseDivps    = sseOp{PREFIX_NONE, []byte{0x0F, 0x5E}}
	sseDivpd    = sseOp{PREFIX_66, []byte{0x0F, 0x5E}}
	sseSqrtps   = sseOp{PREFIX_NONE, []byte{0x0F, 0x51}}
	sseRsqrtps  = sseOp{PREFIX_NONE, []byte{0x0F, 0x52}}
	sseRcpps    = sseOp{PREFIX_NONE, []byte{0x0F, 0x53}}
	sseCvtps2dq = sseOp{PREFIX_66, []byte{0x0F, 0x5B}}
	sseBlendps  = sseOp{PREFIX_66, []byte{0x0F, 0x3A, 0x0C}}
	sseBlendvps = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0x14}}
	sseShufps   = sseOp{PREFIX_NONE, []byte{0x0F, 0xC6}}
	sseDpps     = sseOp{PREFIX_66, []byte{0x0F, 0x3A, 0x40}}

	sseAesenc     = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0xDC}}
	sseAesenclast = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0xDD}}
	sseAesdec     = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0xDE}}
	sseAesdeclast = sseOp{PREFIX_66, []byte{0x0F, 0x38, 0xDF}}
	ssePclmulqdq  = sseOp{PREFIX_66, []byte{0x0F, 0x3A, 0x44}}

	sseMovqToXMM   = sseOp{PREFIX_66, []byte{0x0F, 0x6E}}
	sseMovqFromXMM = sseOp{PREFIX_66, []byte{0x0F, 0x7E}}
	ssePinsrb      = sseOp{PREFIX_66, []byte{0x0F, 0x3A, 0x20}}
	ssePinsrd      = sseOp{PREFIX_66, []byte{0x0F, 0x3A, 0x22}}
	ssePextrd      = sseOp{PREFIX_66, []byte{0x0F, 0x3A, 0x16}}
)

func (a *Assembler) sse(op sseOp, dst Reg, src Operand, imm ...byte) {
	a.legacy(op.prefix, false, op.opcode, dst.Index, src, imm...)
}

// sseMove picks the load or store form depending on which side is memory.
func (a *Assembler) sseMove(load, store sseOp, dst, src Operand) {
	if m, ok := dst.(Mem); ok {
		a.sse(store, src.(Reg), m)
		return
	}
	a.sse(load, dst.(Reg), src)
}

func (a *Assembler) Movaps(dst, src Operand) { a.sseMove(sseMovapsLoad, sseMovapsStore, dst, src) }
func (a *Assembler) Movapd(dst, src Operand) { a.sseMove(sseMovapdLoad, sseMovapdStore, dst, src) }
func (a *Assembler) Movdqa(dst, src Operand) { a.sseMove(sseMovdqaLoad, sseMovdqaStore, dst, src) }
func (a *Assembler) Movdqu(dst, src Operand) { a.sseMove(sseMovdquLoad, sseMovdquStore, dst, src) }

func (a *Assembler) Pxor(dst Reg, src Operand)     { a.sse(ssePxor, dst, src) }
func (a *Assembler) Xorps(dst Reg, src Operand)    { a.sse(sseXorps, dst, src) }
func (a *Assembler) Xorpd(dst Reg, src Operand)    { a.sse(sseXorpd, dst, src) }
func (a *Assembler) Paddd(dst Reg, src Operand)    { a.sse(ssePaddd, dst, src) }
func (a *Assembler) Pmullw(dst Reg, src Operand)   { a.sse(ssePmullw, dst, src) }
func (a *Assembler) Pmuldq(dst Reg, src Operand)   { a.sse(ssePmuldq, dst, src) }
func (a *Assembler) Pshufb(dst Reg, src Operand)   { a.sse(ssePshufb, dst, src) }
func (a *Assembler) Phaddd(dst Reg, src Operand)   { a.sse(ssePhaddd, dst, src) }
func (a *Assembler) Haddps(dst Reg, src Operand)   { a.sse(sseHaddps, dst, src) }
func (a *Assembler) Addps(dst Reg, src Operand)    { a.sse(sseAddps, dst, src) }
func (a *Assembler) Mulps(dst Reg, src Operand)    { a.sse(sseMulps, dst, src) }
func (a *Assembler) Divps(dst Reg, src Operand)    { a.sse(sseDivps, dst, src) }
func (a *Assembler) Divpd(dst Reg, src Operand)    { a.sse(sseDivpd, dst, src) }
func (a *Assembler) Sqrtps(dst Reg, src Operand)   { a.sse(sseSqrtps, dst, src) }
func (a *Assembler) Rsqrtps(dst Reg, src Operand)  { a.sse(sseRsqrtps, dst, src) }
func (a *Assembler) Rcpps(dst Reg, src Operand)    { a.sse(sseRcpps, dst, src) }
func (a *Assembler) Cvtps2dq(dst Reg, src Operand) { a.sse(sseCvtps2dq, dst, src) }

// Blendvps uses xmm0 as the implicit selector.
func (a *Assembler) Blendvps(dst Reg, src Operand) { a.sse(sseBlendvps, dst, src) }

func (a *Assembler) Blendps(dst Reg, src Operand, imm byte) { a.sse(sseBlendps, dst, src, imm) }
func (a *Assembler) Shufps(dst Reg, src Operand, imm byte)  { a.sse(sseShufps, dst, src, imm) }
func (a *Assembler) Dpps(dst Reg, src Operand, imm byte)    { a.sse(sseDpps, dst, src, imm) }

func (a *Assembler) Aesenc(dst Reg, src Operand)     { a.sse(sseAesenc, dst, src) }
func (a *Assembler) Aesenclast(dst Reg, src Operand) { a.sse(sseAesenclast, dst, src) }
func (a *Assembler) Aesdec(dst Reg, src Operand)     { a.sse(sseAesdec, dst, src) }
func (a *Assembler) Aesdeclast(dst Reg, src Operand) { a.sse(sseAesdeclast, dst, src) }

func (a *Assembler) Pclmulqdq(dst Reg, src Operand, imm byte) { a.sse(ssePclmulqdq, dst, src, imm) }

// Movq moves 64 bits between a general purpose register and an xmm register.
func (a *Assembler) Movq(dst, src Reg) {
	if dst.IsVector() {
		a.legacy(sseMovqToXMM.prefix, true, sseMovqToXMM.opcode, dst.Index, src)
		return
	}
	a.legacy(sseMovqFromXMM.prefix, true, sseMovqFromXMM.opcode, src.Index, dst)
}

func (a *Assembler) Pinsrb(dst Reg, src Operand, imm byte) { a.sse(ssePinsrb, dst, src, imm) }
func (a *Assembler) Pinsrd(dst Reg, src Operand, imm byte) { a.sse(ssePinsrd, dst, src, imm) }

// Pextrd extracts a dword of src into a 32-bit register or memory.
func (a *Assembler) Pextrd(dst Operand, src Reg, imm byte) {
	a.legacy(ssePextrd.prefix, false, ssePextrd.opcode, src.Index, dst, imm)
}
