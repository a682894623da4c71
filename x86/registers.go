// Package x86 emits x86-64 machine code for the benchmark generator.
package x86

import "fmt"

// Kind is the register file a Reg belongs to.
type Kind byte

const (
	KindNone Kind = iota
	KindGP32
	KindGP64
	KindXMM
	KindYMM
	KindZMM
)

// Reg represents an x86-64 register with encoding information
type Reg struct {
	Name  string
	Kind  Kind
	Index byte // 0-15 for general purpose, 0-31 for vector
}

// RegBits is the 3-bit code for ModRM/SIB.
func (r Reg) RegBits() byte { return r.Index & 7 }

// REXBit is 1 if the register index is >= 8.
func (r Reg) REXBit() byte { return (r.Index >> 3) & 1 }

// HighBit is 1 if the register index is >= 16 (EVEX only).
func (r Reg) HighBit() byte { return (r.Index >> 4) & 1 }

func (r Reg) IsValid() bool  { return r.Kind != KindNone }
func (r Reg) IsVector() bool { return r.Kind >= KindXMM }
func (r Reg) String() string { return r.Name }

// Width returns the register size in bytes.
func (r Reg) Width() int {
	switch r.Kind {
	case KindGP32:
		return 4
	case KindGP64:
		return 8
	case KindXMM:
		return 16
	case KindYMM:
		return 32
	case KindZMM:
		return 64
	}
	return 0
}

func (Reg) operand() {}

// Standard x86-64 register definitions
var (
	RAX = Reg{"rax", KindGP64, 0} // return value, cleared with rcx in rcx-reserving blocks
	RCX = Reg{"rcx", KindGP64, 1} // loop counter
	RDX = Reg{"rdx", KindGP64, 2} // base pointer to the zero region
	RBX = Reg{"rbx", KindGP64, 3}
	RSP = Reg{"rsp", KindGP64, 4}
	RBP = Reg{"rbp", KindGP64, 5}
	RSI = Reg{"rsi", KindGP64, 6}
	RDI = Reg{"rdi", KindGP64, 7} // carry register
	R8  = Reg{"r8", KindGP64, 8}
	R9  = Reg{"r9", KindGP64, 9}
	R10 = Reg{"r10", KindGP64, 10}
	R11 = Reg{"r11", KindGP64, 11}
	R12 = Reg{"r12", KindGP64, 12}
	R13 = Reg{"r13", KindGP64, 13}
	R14 = Reg{"r14", KindGP64, 14}
	R15 = Reg{"r15", KindGP64, 15}

	EAX = Reg{"eax", KindGP32, 0}
	ECX = Reg{"ecx", KindGP32, 1}
	EDX = Reg{"edx", KindGP32, 2}
	EBX = Reg{"ebx", KindGP32, 3}
	ESI = Reg{"esi", KindGP32, 6}
	EDI = Reg{"edi", KindGP32, 7}
)

var gp64 = []Reg{RAX, RCX, RDX, RBX, RSP, RBP, RSI, RDI, R8, R9, R10, R11, R12, R13, R14, R15}

// GP returns the 64-bit general purpose register with the given index.
func GP(i int) Reg {
	return gp64[i&15]
}

func XMM(i int) Reg { return Reg{fmt.Sprintf("xmm%d", i), KindXMM, byte(i)} }
func YMM(i int) Reg { return Reg{fmt.Sprintf("ymm%d", i), KindYMM, byte(i)} }
func ZMM(i int) Reg { return Reg{fmt.Sprintf("zmm%d", i), KindZMM, byte(i)} }

// Vector returns the vector register of the given kind and index.
func Vector(kind Kind, i int) Reg {
	switch kind {
	case KindYMM:
		return YMM(i)
	case KindZMM:
		return ZMM(i)
	}
	return XMM(i)
}

// AsXMM returns the 128-bit view of a vector register.
func (r Reg) AsXMM() Reg { return XMM(int(r.Index)) }

// AsYMM returns the 256-bit view of a vector register.
func (r Reg) AsYMM() Reg { return YMM(int(r.Index)) }

// As32 returns the 32-bit view of a general purpose register.
func (r Reg) As32() Reg {
	if r.Index < 8 {
		return Reg{[]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}[r.Index], KindGP32, r.Index}
	}
	return Reg{fmt.Sprintf("r%dd", r.Index), KindGP32, r.Index}
}
