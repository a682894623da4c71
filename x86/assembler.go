package x86

import (
	"encoding/binary"
	"fmt"
)

// Assembler appends encoded instructions to a growing code buffer.
type Assembler struct {
	buf []byte
}

func NewAssembler() *Assembler {
	return &Assembler{buf: make([]byte, 0, 4096)}
}

// Bytes returns the code emitted so far.
func (a *Assembler) Bytes() []byte { return a.buf }

// Len returns the number of bytes emitted so far.
func (a *Assembler) Len() int { return len(a.buf) }

// Label returns the current offset, usable as a backward branch target.
func (a *Assembler) Label() int { return len(a.buf) }

func (a *Assembler) emit(b ...byte) {
	a.buf = append(a.buf, b...)
}

// Align pads with NOPs until the offset is a multiple of n.
func (a *Assembler) Align(n int) {
	for n > 0 && len(a.buf)%n != 0 {
		a.emit(OP_NOP)
	}
}

// JnzBack emits a JNZ to an earlier label, rel8 when it reaches.
func (a *Assembler) JnzBack(label int) {
	rel := label - (len(a.buf) + 2)
	if rel >= -128 {
		a.emit(OP_JNZ_REL8, byte(int8(rel)))
		return
	}
	rel = label - (len(a.buf) + 6)
	a.emit(OP_ESCAPE, OP2_JNZ_REL32)
	a.emit(encodeU32(uint32(int32(rel)))...)
}

func encodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func encodeU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func fitsInt8(v int64) bool  { return v >= -128 && v <= 127 }
func fitsInt32(v int64) bool { return v >= -1<<31 && v <= 1<<31-1 }

// modrm encodes ModRM, the optional SIB byte and the displacement. reg holds
// the ModRM.reg value (register index or opcode extension); n is the EVEX
// disp8 compression factor, 1 for legacy and VEX encodings.
func modrm(reg byte, rm Operand, n int32) []byte {
	reg &= 7
	switch o := rm.(type) {
	case Reg:
		return []byte{MOD_REGISTER<<6 | reg<<3 | o.RegBits()}
	case Mem:
		return memModRM(reg, o, n)
	}
	panic(fmt.Sprintf("x86: unsupported operand %T", rm))
}

func memModRM(reg byte, m Mem, n int32) []byte {
	index := byte(4) // no index
	if m.Index.IsValid() {
		index = m.Index.RegBits()
	}
	sib := scaleBits(m.Scale)<<6 | index<<3

	if !m.Base.IsValid() {
		// [index*scale + disp32] through SIB with no base
		out := []byte{MOD_INDIRECT<<6 | reg<<3 | 4, sib | 5}
		return append(out, encodeU32(uint32(m.Disp))...)
	}

	base := m.Base.RegBits()
	mod, disp := dispMode(m, n)
	if m.Index.IsValid() || base == 4 {
		out := []byte{mod<<6 | reg<<3 | 4, sib | base}
		return append(out, disp...)
	}
	out := []byte{mod<<6 | reg<<3 | base}
	return append(out, disp...)
}

func dispMode(m Mem, n int32) (byte, []byte) {
	// rbp/r13 as base have no mod=00 form
	if m.Disp == 0 && m.Base.RegBits() != 5 {
		return MOD_INDIRECT, nil
	}
	if n < 1 {
		n = 1
	}
	if m.Disp%n == 0 && fitsInt8(int64(m.Disp/n)) {
		return MOD_INDIRECT_DISP8, []byte{byte(int8(m.Disp / n))}
	}
	return MOD_INDIRECT_DISP32, encodeU32(uint32(m.Disp))
}

// extBits returns REX.X and REX.B for an r/m operand.
func extBits(rm Operand) (x, b byte) {
	switch o := rm.(type) {
	case Reg:
		return 0, o.REXBit()
	case Mem:
		if o.Base.IsValid() {
			b = o.Base.REXBit()
		}
		if o.Index.IsValid() {
			x = o.Index.REXBit()
		}
	}
	return x, b
}

// legacy emits [prefix] [REX] opcode... ModRM [imm].
func (a *Assembler) legacy(prefix byte, w bool, opcode []byte, reg byte, rm Operand, imm ...byte) {
	if prefix != PREFIX_NONE {
		a.emit(prefix)
	}
	x, b := extBits(rm)
	var rex byte
	if w {
		rex |= REX_W
	}
	rex |= ((reg >> 3) & 1) << 2
	rex |= x<<1 | b
	if rex != 0 {
		a.emit(REX | rex)
	}
	a.emit(opcode...)
	a.emit(modrm(reg, rm, 1)...)
	a.emit(imm...)
}

// vex emits a VEX-encoded instruction, using the two-byte form when possible.
// vvvv is the register index of the extra source, 0 when unused.
func (a *Assembler) vex(pp, mm, w, l, op byte, reg, vvvv byte, rm Operand, imm ...byte) {
	x, b := extBits(rm)
	r := (reg >> 3) & 1
	if mm == MAP_0F && w == 0 && x == 0 && b == 0 {
		a.emit(VEX2, (^r&1)<<7|(^vvvv&0xF)<<3|l<<2|pp)
	} else {
		a.emit(VEX3,
			(^r&1)<<7|(^x&1)<<6|(^b&1)<<5|mm,
			w<<7|(^vvvv&0xF)<<3|l<<2|pp)
	}
	a.emit(op)
	a.emit(modrm(reg, rm, 1)...)
	a.emit(imm...)
}

// evex emits an EVEX-encoded instruction without masking, zeroing or
// broadcast. n is the disp8 compression factor for memory operands.
func (a *Assembler) evex(pp, mm, w, ll, op byte, reg, vvvv byte, rm Operand, n int32, imm ...byte) {
	var x, b, vsib byte
	switch o := rm.(type) {
	case Reg:
		b = o.REXBit()
		x = o.HighBit()
	case Mem:
		if o.Base.IsValid() {
			b = o.Base.REXBit()
		}
		if o.Index.IsValid() {
			x = o.Index.REXBit()
			vsib = o.Index.HighBit()
		}
	}
	r := (reg >> 3) & 1
	rp := (reg >> 4) & 1
	vhi := (vvvv>>4)&1 | vsib
	a.emit(EVEX,
		(^r&1)<<7|(^x&1)<<6|(^b&1)<<5|(^rp&1)<<4|mm,
		w<<7|(^vvvv&0xF)<<3|0x04|pp,
		ll<<5|(^vhi&1)<<3)
	a.emit(op)
	a.emit(modrm(reg, rm, n)...)
	a.emit(imm...)
}
