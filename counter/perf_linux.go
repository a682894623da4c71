//go:build linux

package counter

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/colorfulnotion/ltbench/log"
	"golang.org/x/sys/unix"
)

type perfCounter struct {
	fd int
}

// Open starts a user-space CPU cycle counter for the calling thread.
func Open() (Counter, error) {
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Config: unix.PERF_COUNT_HW_CPU_CYCLES,
		Bits:   unix.PerfBitExcludeKernel,
	}
	attr.Size = uint32(unsafe.Sizeof(attr))

	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("perf_event_open: %w", err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ioctl(PERF_EVENT_IOC_RESET): %w", err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("ioctl(PERF_EVENT_IOC_ENABLE): %w", err)
	}
	log.Debug(log.CounterMonitoring, "perf_event counter opened", "fd", fd)
	return &perfCounter{fd: fd}, nil
}

func (c *perfCounter) Read() (uint64, error) {
	var buf [8]byte
	n, err := unix.Read(c.fd, buf[:])
	if err != nil {
		return 0, fmt.Errorf("read perf event fd: %w", err)
	}
	if n != len(buf) {
		return 0, fmt.Errorf("%w: %d of %d bytes", ErrShortRead, n, len(buf))
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (c *perfCounter) Close() error {
	if c.fd < 0 {
		return nil
	}
	err := unix.Close(c.fd)
	c.fd = -1
	return err
}

func (c *perfCounter) Name() string { return "perf_event" }
