//go:build linux && amd64 && cgo

package jit

import (
	"encoding/binary"
	"testing"

	"github.com/colorfulnotion/ltbench/x86"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteX86(t *testing.T) {
	code := []byte{
		0x48, 0xC7, 0xC0, 0x01, 0x00, 0x00, 0x00, // mov rax, 1
		0xC3, // ret
	}
	exe, err := NewExecutable(code)
	require.NoError(t, err)
	defer exe.Close()

	assert.Equal(t, len(code), exe.Size())
	require.NoError(t, exe.Call())
}

func TestExecuteWritesRegion(t *testing.T) {
	r, err := NewRegion(1<<16, 4096)
	require.NoError(t, err)
	defer r.Close()

	a := x86.NewAssembler()
	a.MovImm(x86.RDX, int64(r.Addr()))
	a.MovImm(x86.RAX, 0x1122334455667788)
	a.Mov(x86.PtrDisp(x86.RDX, 8), x86.RAX)
	a.Ret()

	exe, err := NewExecutable(a.Bytes())
	require.NoError(t, err)
	defer exe.Close()

	require.NoError(t, exe.Call())
	assert.Equal(t, uint64(0x1122334455667788), binary.LittleEndian.Uint64(r.Bytes()[8:]))
}

func TestCallAfterClose(t *testing.T) {
	exe, err := NewExecutable([]byte{0xC3})
	require.NoError(t, err)
	require.NoError(t, exe.Close())
	assert.Error(t, exe.Call())
	assert.NoError(t, exe.Close())
}

func TestEmptyCode(t *testing.T) {
	_, err := NewExecutable(nil)
	assert.Error(t, err)
}
