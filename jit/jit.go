// Package jit maps generated machine code into executable memory, calls it
// natively, and provides the aligned scratch regions the code operates on.
package jit

import (
	"errors"
	"unsafe"
)

// ErrUnsupported is returned where native execution is not available.
var ErrUnsupported = errors.New("jit: native x86-64 execution is not supported on this platform")

var errClosed = errors.New("jit: executable is closed")

// Executable is a read+exec mapping holding one code block.
type Executable struct {
	mem  []byte
	size int
}

// Addr is the entry point of the block.
func (e *Executable) Addr() uintptr {
	return uintptr(unsafe.Pointer(&e.mem[0]))
}

// Size is the number of code bytes, excluding page padding.
func (e *Executable) Size() int { return e.size }

// Region is an anonymous read/write mapping whose usable window starts at a
// caller-chosen alignment.
type Region struct {
	mapping []byte
	buf     []byte
}

// Bytes returns the aligned window.
func (r *Region) Bytes() []byte { return r.buf }

// Addr returns the address of the aligned window.
func (r *Region) Addr() uintptr {
	return uintptr(unsafe.Pointer(&r.buf[0]))
}

func (r *Region) Len() int { return len(r.buf) }

// Fill sets every byte of the window to b.
func (r *Region) Fill(b byte) {
	if b == 0 {
		clear(r.buf)
		return
	}
	for i := range r.buf {
		r.buf[i] = b
	}
}

func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}
