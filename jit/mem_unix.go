//go:build linux || darwin || freebsd

package jit

import (
	"fmt"
	"unsafe"

	"github.com/colorfulnotion/ltbench/log"
	"golang.org/x/sys/unix"
)

// NewExecutable copies code into a fresh mapping and flips it to read+exec.
func NewExecutable(code []byte) (*Executable, error) {
	if len(code) == 0 {
		return nil, fmt.Errorf("jit: empty code block")
	}
	size := int(alignUp(uintptr(len(code)), uintptr(unix.Getpagesize())))
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap exec code: %w", err)
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("failed to mprotect exec code: %w", err)
	}
	e := &Executable{mem: mem, size: len(code)}
	log.Debug(log.JitMonitoring, "mapped executable", "addr", fmt.Sprintf("%#x", e.Addr()), "size", len(code))
	return e, nil
}

// Close unmaps the block.
func (e *Executable) Close() error {
	if e.mem == nil {
		return nil
	}
	err := unix.Munmap(e.mem)
	e.mem = nil
	return err
}

// NewRegion maps size bytes whose start is aligned to align, a power of two.
func NewRegion(size, align int) (*Region, error) {
	if size <= 0 || align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("jit: invalid region size %d align %d", size, align)
	}
	mapping, err := unix.Mmap(-1, 0, size+align, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap region: %w", err)
	}
	base := uintptr(unsafe.Pointer(&mapping[0]))
	off := int(alignUp(base, uintptr(align)) - base)
	r := &Region{mapping: mapping, buf: mapping[off : off+size : off+size]}
	adviseHuge(r.buf)
	return r, nil
}

// Close unmaps the region.
func (r *Region) Close() error {
	if r.mapping == nil {
		return nil
	}
	err := unix.Munmap(r.mapping)
	r.mapping, r.buf = nil, nil
	return err
}
