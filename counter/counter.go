// Package counter reads the cycle count of the calling OS thread.
package counter

import "errors"

var (
	// ErrShortRead is returned when the kernel hands back fewer than 8 bytes.
	ErrShortRead = errors.New("counter: short read")
	// ErrUnsupported is returned by Open where no cycle source exists.
	ErrUnsupported = errors.New("counter: no cycle counter on this platform")
)

// Counter is a monotonic cycle source. Values are only comparable when read
// from the OS thread that opened the counter.
type Counter interface {
	Read() (uint64, error)
	Close() error
	Name() string
}
