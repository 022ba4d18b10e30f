// Package cfunc describes C functions resolved through the dynamic
// loader (spec.md §4.4, "A C function descriptor").
package cfunc

import "github.com/dobrosketchkun/brisk/ctype"

// Descriptor holds everything needed to call a resolved C function:
// its symbol name, return and parameter types, variadic flag, resolved
// address, and a lazily-prepared FFI call interface (opaque here; see
// internal/ffi.CallInterface).
type Descriptor struct {
	Name       string
	ReturnType ctype.Kind
	ParamTypes []ctype.Kind
	Variadic   bool
	Addr       uintptr

	// CIF is the lazily-prepared FFI call interface, set on first call by
	// the interpreter's FFI bridge (through internal/ffi.Prepare or
	// internal/ffi.PrepareVariadic). Left untyped here (interface{})
	// so this package does not need to import internal/ffi, matching the
	// descriptor/bridge split of spec.md §4.4/§4.6.
	CIF      interface{}
	Prepared bool
}

// NewDescriptor returns an unprepared descriptor for a resolved symbol.
func NewDescriptor(name string, addr uintptr, ret ctype.Kind, params []ctype.Kind, variadic bool) *Descriptor {
	return &Descriptor{Name: name, Addr: addr, ReturnType: ret, ParamTypes: params, Variadic: variadic}
}
