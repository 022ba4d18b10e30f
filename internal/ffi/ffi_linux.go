//go:build linux && cgo

// Package ffi wraps libffi's call-interface preparation and invocation
// (spec.md §4.6, §6 "FFI runtime interface"): building a CIF from a
// return type and parameter-type descriptors (with a variadic variant),
// and performing a call given a function pointer, the CIF, a result
// buffer and a vector of argument buffers.
//
// This package only knows about raw byte slots and ctype.Kind — the
// Brisk-Value <-> C-ABI marshaling (marshal_to_c/marshal_from_c) lives in
// interp's ffi_bridge.go, which is the actual spec.md §4.6 "FFI bridge".
// Grounded the same way as internal/dynload (cgo as the real mechanism
// for reaching a C ABI library; see DESIGN.md).
package ffi

/*
#cgo LDFLAGS: -lffi
#include <ffi.h>
#include <stdlib.h>

// ffi_call's fn parameter is an opaque function pointer; libffi's own
// FFI_FN macro casts it, but cgo cannot invoke function-like macros
// directly, so this thin wrapper performs the cast on the C side.
static void brisk_ffi_call(ffi_cif *cif, void *fn, void *rvalue, void **avalue) {
	ffi_call(cif, (void (*)(void))fn, rvalue, avalue);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/dobrosketchkun/brisk/ctype"
)

// CIF is a prepared libffi call interface.
type CIF struct {
	cif      C.ffi_cif
	argTypes []*C.ffi_type
}

func ffiType(k ctype.Kind) *C.ffi_type {
	switch k {
	case ctype.Void:
		return &C.ffi_type_void
	case ctype.Char, ctype.Int8:
		return &C.ffi_type_sint8
	case ctype.UChar, ctype.UInt8, ctype.Bool:
		return &C.ffi_type_uint8
	case ctype.Short, ctype.Int16:
		return &C.ffi_type_sint16
	case ctype.UShort, ctype.UInt16:
		return &C.ffi_type_uint16
	case ctype.Int, ctype.Int32:
		return &C.ffi_type_sint32
	case ctype.UInt, ctype.UInt32:
		return &C.ffi_type_uint32
	case ctype.Long, ctype.LongLong, ctype.Int64:
		return &C.ffi_type_sint64
	case ctype.ULong, ctype.ULongLong, ctype.UInt64, ctype.SizeT:
		return &C.ffi_type_uint64
	case ctype.Float:
		return &C.ffi_type_float
	case ctype.Double:
		return &C.ffi_type_double
	case ctype.Pointer, ctype.CString, ctype.Struct:
		return &C.ffi_type_pointer
	default:
		return &C.ffi_type_sint32
	}
}

// Prepare builds a CIF for a non-variadic call (spec.md §4.6 step 1).
func Prepare(ret ctype.Kind, params []ctype.Kind) (*CIF, error) {
	c := &CIF{argTypes: make([]*C.ffi_type, len(params))}
	for i, p := range params {
		c.argTypes[i] = ffiType(p)
	}
	var argv **C.ffi_type
	if len(c.argTypes) > 0 {
		argv = (**C.ffi_type)(unsafe.Pointer(&c.argTypes[0]))
	}
	status := C.ffi_prep_cif(&c.cif, C.FFI_DEFAULT_ABI, C.uint(len(params)), ffiType(ret), argv)
	if status != C.FFI_OK {
		return nil, fmt.Errorf("ffi_prep_cif failed: status %d", int(status))
	}
	return c, nil
}

// PrepareVariadic builds a CIF for a variadic call. Per spec.md §4.6's
// sanctioned simplification, fixed and total are both the function's
// declared (non-variadic) parameter count.
func PrepareVariadic(ret ctype.Kind, params []ctype.Kind, fixed, total int) (*CIF, error) {
	c := &CIF{argTypes: make([]*C.ffi_type, len(params))}
	for i, p := range params {
		c.argTypes[i] = ffiType(p)
	}
	var argv **C.ffi_type
	if len(c.argTypes) > 0 {
		argv = (**C.ffi_type)(unsafe.Pointer(&c.argTypes[0]))
	}
	status := C.ffi_prep_cif_var(&c.cif, C.FFI_DEFAULT_ABI, C.uint(fixed), C.uint(total), ffiType(ret), argv)
	if status != C.FFI_OK {
		return nil, fmt.Errorf("ffi_prep_cif_var failed: status %d", int(status))
	}
	return c, nil
}

// Call invokes fn through the prepared CIF, reading each 16-byte argument
// slot and writing the 16-byte result slot (spec.md §4.6 steps 3 and 6).
func (c *CIF) Call(fn uintptr, argSlots [][]byte, resultSlot []byte) error {
	avalue := make([]unsafe.Pointer, len(argSlots))
	for i, slot := range argSlots {
		if len(slot) == 0 {
			avalue[i] = nil
			continue
		}
		avalue[i] = unsafe.Pointer(&slot[0])
	}
	var avaluePtr *unsafe.Pointer
	if len(avalue) > 0 {
		avaluePtr = &avalue[0]
	}
	var rvalue unsafe.Pointer
	if len(resultSlot) > 0 {
		rvalue = unsafe.Pointer(&resultSlot[0])
	}
	C.brisk_ffi_call(&c.cif, unsafe.Pointer(fn), rvalue, (*unsafe.Pointer)(avaluePtr))
	return nil
}
