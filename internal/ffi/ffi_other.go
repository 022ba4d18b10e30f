//go:build !(linux && cgo)

// Package ffi: non-Linux/non-cgo fallback, see internal/dynload's
// loader_other.go for the rationale.
package ffi

import (
	"fmt"

	"github.com/dobrosketchkun/brisk/ctype"
)

type CIF struct{}

func Prepare(ret ctype.Kind, params []ctype.Kind) (*CIF, error) {
	return nil, fmt.Errorf("ffi: libffi is only supported on linux with cgo enabled")
}

func PrepareVariadic(ret ctype.Kind, params []ctype.Kind, fixed, total int) (*CIF, error) {
	return nil, fmt.Errorf("ffi: libffi is only supported on linux with cgo enabled")
}

func (c *CIF) Call(fn uintptr, argSlots [][]byte, resultSlot []byte) error {
	return fmt.Errorf("ffi: libffi is only supported on linux with cgo enabled")
}
