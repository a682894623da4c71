//go:build unicorn
// +build unicorn

package jit

import (
	"encoding/binary"
	"fmt"

	"github.com/colorfulnotion/ltbench/x86"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"
)

const (
	pageSize = uint64(0x1000) // 4 KiB

	sandboxCodeBase  = uint64(0x00400000)
	sandboxCodeSize  = uint64(0x00100000)
	sandboxStackBase = uint64(0x7ff00000)
	sandboxStackSize = uint64(0x00100000)
	sandboxReturn    = uint64(0x00f00000) // unmapped; emulation stops when ret lands here
)

var sandboxGP = [16]int{
	uc.X86_REG_RAX, uc.X86_REG_RCX, uc.X86_REG_RDX, uc.X86_REG_RBX,
	uc.X86_REG_RSP, uc.X86_REG_RBP, uc.X86_REG_RSI, uc.X86_REG_RDI,
	uc.X86_REG_R8, uc.X86_REG_R9, uc.X86_REG_R10, uc.X86_REG_R11,
	uc.X86_REG_R12, uc.X86_REG_R13, uc.X86_REG_R14, uc.X86_REG_R15,
}

// Sandbox runs generated blocks inside an emulated x86-64 CPU. Only the
// legacy and SSE instruction set is available to it.
type Sandbox struct {
	uc.Unicorn
}

func NewSandbox() (*Sandbox, error) {
	mu, err := uc.NewUnicorn(uc.ARCH_X86, uc.MODE_64)
	if err != nil {
		return nil, fmt.Errorf("failed to create unicorn: %w", err)
	}
	s := &Sandbox{mu}
	if err := mu.MemMap(sandboxCodeBase, sandboxCodeSize); err != nil {
		s.Close()
		return nil, fmt.Errorf("code MemMap: %w", err)
	}
	if err := mu.MemMap(sandboxStackBase, sandboxStackSize); err != nil {
		s.Close()
		return nil, fmt.Errorf("stack MemMap: %w", err)
	}
	if err := s.enableSSE(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// enableSSE sets CR4.OSFXSR/OSXMMEXCPT and clears CR0.EM.
func (s *Sandbox) enableSSE() error {
	cr0, err := s.RegRead(uc.X86_REG_CR0)
	if err != nil {
		return fmt.Errorf("read cr0: %w", err)
	}
	cr0 = (cr0 &^ (1 << 2)) | 1<<1
	if err := s.RegWrite(uc.X86_REG_CR0, cr0); err != nil {
		return fmt.Errorf("write cr0: %w", err)
	}
	cr4, err := s.RegRead(uc.X86_REG_CR4)
	if err != nil {
		return fmt.Errorf("read cr4: %w", err)
	}
	if err := s.RegWrite(uc.X86_REG_CR4, cr4|1<<9|1<<10); err != nil {
		return fmt.Errorf("write cr4: %w", err)
	}
	return nil
}

// MapRegion maps a read/write area at addr and copies data into it.
func (s *Sandbox) MapRegion(addr uint64, data []byte) error {
	size := (uint64(len(data)) + pageSize - 1) &^ (pageSize - 1)
	if err := s.MemMap(addr, size); err != nil {
		return fmt.Errorf("region MemMap at %#x: %w", addr, err)
	}
	if err := s.MemProtect(addr, size, uc.PROT_READ|uc.PROT_WRITE); err != nil {
		return fmt.Errorf("region MemProtect at %#x: %w", addr, err)
	}
	return s.MemWrite(addr, data)
}

func (s *Sandbox) SetReg(r x86.Reg, v uint64) error {
	return s.RegWrite(sandboxGP[r.Index&15], v)
}

func (s *Sandbox) Reg(r x86.Reg) (uint64, error) {
	return s.RegRead(sandboxGP[r.Index&15])
}

// Call places code at the code base and runs it as a function called with a
// 16-byte aligned stack, stopping when it returns.
func (s *Sandbox) Call(code []byte) error {
	if uint64(len(code)) > sandboxCodeSize {
		return fmt.Errorf("code block of %d bytes exceeds sandbox", len(code))
	}
	if err := s.MemWrite(sandboxCodeBase, code); err != nil {
		return fmt.Errorf("code MemWrite: %w", err)
	}
	rsp := sandboxStackBase + sandboxStackSize - 0x100 - 8
	ret := make([]byte, 8)
	binary.LittleEndian.PutUint64(ret, sandboxReturn)
	if err := s.MemWrite(rsp, ret); err != nil {
		return fmt.Errorf("stack MemWrite: %w", err)
	}
	if err := s.RegWrite(uc.X86_REG_RSP, rsp); err != nil {
		return fmt.Errorf("write rsp: %w", err)
	}
	if err := s.Start(sandboxCodeBase, sandboxReturn); err != nil {
		rip, _ := s.RegRead(uc.X86_REG_RIP)
		return fmt.Errorf("emulation failed at rip=%#x: %w", rip, err)
	}
	return nil
}

// SandboxCodeBase is where Call places code.
const SandboxCodeBase = sandboxCodeBase
