//go:build !linux && !(amd64 && cgo)

package counter

func Open() (Counter, error) { return nil, ErrUnsupported }
