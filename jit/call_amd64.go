//go:build (linux || darwin || freebsd) && amd64 && cgo

package jit

/*
#include <stdint.h>

typedef void (*ltbench_block_fn)(void);

// Generated blocks follow the C calling convention: no arguments, no result,
// every register they touch beyond the caller-saved set is restored.
static void ltbench_call(uintptr_t fn) {
	((ltbench_block_fn)fn)();
}
*/
import "C"

import "runtime"

// Call runs the block on the current OS thread through the C ABI.
func (e *Executable) Call() error {
	if e.mem == nil {
		return errClosed
	}
	runtime.LockOSThread()
	C.ltbench_call(C.uintptr_t(e.Addr()))
	runtime.UnlockOSThread()
	return nil
}

// Native reports whether Call executes code on this build.
const Native = true
