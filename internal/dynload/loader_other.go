//go:build !(linux && cgo)

// Package dynload: non-Linux/non-cgo fallback. spec.md §1 explicitly
// treats cross-platform dynamic loading as a non-goal; this build keeps
// the module compilable elsewhere while making every operation fail
// loudly instead of silently no-op-ing.
package dynload

import "fmt"

type Handle struct{}

func Self() (*Handle, error) {
	return nil, fmt.Errorf("dynload: POSIX dlopen is only supported on linux with cgo enabled")
}

func Open(path string) (*Handle, error) {
	return nil, fmt.Errorf("dynload: POSIX dlopen is only supported on linux with cgo enabled")
}

func (h *Handle) Close() error { return nil }

func (h *Handle) Resolve(symbol string) (uintptr, error) {
	return 0, fmt.Errorf("dynload: POSIX dlsym is only supported on linux with cgo enabled")
}
