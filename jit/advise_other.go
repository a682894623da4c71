//go:build darwin || freebsd

package jit

func adviseHuge(b []byte) {}
