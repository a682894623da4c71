package x86

import "fmt"

func wide(r Reg) bool { return r.Kind == KindGP64 }

func mustGP(r Reg) {
	if r.Kind != KindGP64 && r.Kind != KindGP32 {
		panic(fmt.Sprintf("x86: %s is not a general purpose register", r.Name))
	}
}

func (a *Assembler) Push(r Reg) {
	if r.REXBit() != 0 {
		a.emit(REX | REX_B)
	}
	a.emit(OP_PUSH_R + r.RegBits())
}

func (a *Assembler) Pop(r Reg) {
	if r.REXBit() != 0 {
		a.emit(REX | REX_B)
	}
	a.emit(OP_POP_R + r.RegBits())
}

func (a *Assembler) Ret() { a.emit(OP_RET) }
func (a *Assembler) Nop() { a.emit(OP_NOP) }

// alu emits a two-operand ALU instruction. The r/m,r form is used for
// register and store destinations, the r,r/m form (opcode+2) for loads.
func (a *Assembler) alu(opRMR byte, dst, src Operand) {
	switch d := dst.(type) {
	case Reg:
		mustGP(d)
		if s, ok := src.(Mem); ok {
			a.legacy(PREFIX_NONE, wide(d), []byte{opRMR + 2}, d.Index, s)
			return
		}
		s := src.(Reg)
		a.legacy(PREFIX_NONE, wide(d), []byte{opRMR}, s.Index, d)
	case Mem:
		s := src.(Reg)
		mustGP(s)
		a.legacy(PREFIX_NONE, wide(s), []byte{opRMR}, s.Index, d)
	}
}

func (a *Assembler) Add(dst, src Operand) { a.alu(OP_ADD_RM_R, dst, src) }
func (a *Assembler) Xor(dst, src Operand) { a.alu(OP_XOR_RM_R, dst, src) }

// Mov handles reg<-reg, reg<-mem and mem<-reg.
func (a *Assembler) Mov(dst, src Operand) { a.alu(OP_MOV_RM_R, dst, src) }

// aluImm emits a group 1 instruction with the shortest immediate.
func (a *Assembler) aluImm(ext byte, dst Reg, imm int32) {
	if fitsInt8(int64(imm)) {
		a.legacy(PREFIX_NONE, wide(dst), []byte{OP_GROUP1_RM_IMM8}, ext, dst, byte(int8(imm)))
		return
	}
	a.legacy(PREFIX_NONE, wide(dst), []byte{OP_GROUP1_RM_IMM32}, ext, dst, encodeU32(uint32(imm))...)
}

func (a *Assembler) SubImm(dst Reg, imm int32) { a.aluImm(EXT_SUB, dst, imm) }
func (a *Assembler) AndImm(dst Reg, imm int32) { a.aluImm(EXT_AND, dst, imm) }

// MovImm loads an immediate, sign-extending imm32 when it fits.
func (a *Assembler) MovImm(dst Reg, imm int64) {
	if fitsInt32(imm) || !wide(dst) {
		a.legacy(PREFIX_NONE, wide(dst), []byte{OP_MOV_RM_IMM}, 0, dst, encodeU32(uint32(imm))...)
		return
	}
	rex := byte(REX | REX_W)
	if dst.REXBit() != 0 {
		rex |= REX_B
	}
	a.emit(rex, OP_MOV_R_IMM+dst.RegBits())
	a.emit(encodeU64(uint64(imm))...)
}

func (a *Assembler) Lea(dst Reg, m Mem) {
	a.legacy(PREFIX_NONE, wide(dst), []byte{OP_LEA}, dst.Index, m)
}

func (a *Assembler) Dec(r Reg) { a.legacy(PREFIX_NONE, wide(r), []byte{OP_GROUP5}, EXT_DEC, r) }

func (a *Assembler) Imul(dst Reg, src Operand) {
	a.legacy(PREFIX_NONE, wide(dst), []byte{OP_ESCAPE, OP2_IMUL_R_RM}, dst.Index, src)
}

// Crc32 accumulates a 64-bit source into dst.
func (a *Assembler) Crc32(dst Reg, src Operand) {
	a.legacy(PREFIX_F2, true, []byte{OP_ESCAPE, 0x38, 0xF1}, dst.Index, src)
}

func (a *Assembler) Popcnt(dst Reg, src Operand) {
	a.legacy(PREFIX_F3, wide(dst), []byte{OP_ESCAPE, OP2_POPCNT}, dst.Index, src)
}

// ShlCL shifts dst left by cl.
func (a *Assembler) ShlCL(dst Reg) {
	a.legacy(PREFIX_NONE, wide(dst), []byte{OP_GROUP2_RM_CL}, EXT_SHL, dst)
}

// ShldCL shifts dst left by cl, filling from src.
func (a *Assembler) ShldCL(dst, src Reg) {
	a.legacy(PREFIX_NONE, wide(dst), []byte{OP_ESCAPE, OP2_SHLD_CL}, src.Index, dst)
}
