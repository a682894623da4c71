//go:build !((linux || darwin || freebsd) && amd64 && cgo)

package jit

import "github.com/colorfulnotion/ltbench/log"

func (e *Executable) Call() error {
	log.Error(log.JitMonitoring, "x86 execution is not supported on this platform")
	return ErrUnsupported
}

const Native = false
