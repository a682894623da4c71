package x86

import (
	"fmt"
	"strings"
)

// Operand is either a Reg or a Mem.
type Operand interface {
	operand()
}

// Mem is a memory operand [base + index*scale + disp]. Index may be a vector
// register for VSIB gathers.
type Mem struct {
	Base  Reg
	Index Reg
	Scale byte
	Disp  int32
}

func (Mem) operand() {}

// Ptr returns [base].
func Ptr(base Reg) Mem {
	return Mem{Base: base, Scale: 1}
}

// PtrDisp returns [base + disp].
func PtrDisp(base Reg, disp int32) Mem {
	return Mem{Base: base, Scale: 1, Disp: disp}
}

// PtrIndex returns [base + index + disp].
func PtrIndex(base, index Reg, disp int32) Mem {
	return Mem{Base: base, Index: index, Scale: 1, Disp: disp}
}

// Abs returns [disp32] with no base register.
func Abs(addr int32) Mem {
	return Mem{Scale: 1, Disp: addr}
}

func (m Mem) String() string {
	var parts []string
	if m.Base.IsValid() {
		parts = append(parts, m.Base.Name)
	}
	if m.Index.IsValid() {
		if m.Scale > 1 {
			parts = append(parts, fmt.Sprintf("%s*%d", m.Index.Name, m.Scale))
		} else {
			parts = append(parts, m.Index.Name)
		}
	}
	s := "[" + strings.Join(parts, "+")
	switch {
	case m.Disp > 0 && len(parts) > 0:
		s += fmt.Sprintf("+0x%x", m.Disp)
	case m.Disp < 0:
		s += fmt.Sprintf("-0x%x", -int64(m.Disp))
	case len(parts) == 0:
		s += fmt.Sprintf("0x%x", m.Disp)
	}
	return s + "]"
}

func scaleBits(scale byte) byte {
	switch scale {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	}
	return 0
}
