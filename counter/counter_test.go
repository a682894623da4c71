package counter

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openOrSkip(t *testing.T) Counter {
	t.Helper()
	c, err := Open()
	if errors.Is(err, ErrUnsupported) {
		t.Skip(err)
	}
	if err != nil {
		t.Skipf("cycle counter unavailable: %v", err)
	}
	return c
}

func TestCounterMonotonic(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c := openOrSkip(t)
	defer c.Close()
	assert.NotEmpty(t, c.Name())

	prev, err := c.Read()
	require.NoError(t, err)
	sum := 0
	for i := 0; i < 5; i++ {
		for j := 0; j < 100000; j++ {
			sum += j
		}
		cur, err := c.Read()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.NotZero(t, sum)
}

func TestCloseTwice(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	c := openOrSkip(t)
	require.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
