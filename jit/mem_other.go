//go:build !linux && !darwin && !freebsd

package jit

func NewExecutable(code []byte) (*Executable, error) {
	return nil, ErrUnsupported
}

func (e *Executable) Close() error { return nil }

func NewRegion(size, align int) (*Region, error) {
	return nil, ErrUnsupported
}

func (r *Region) Close() error { return nil }
