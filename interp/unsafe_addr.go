package interp

import "unsafe"

// dataAddr returns the address backing a non-empty byte slice, used to
// expose a CStruct's raw memory to C calls (spec.md §4.3.2, §4.6).
func dataAddr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

// goStringFromCString copies a NUL-terminated C string at addr into a Go
// string (spec.md §4.6 step 7, marshaling a char* result back).
func goStringFromCString(addr uintptr) string {
	p := (*byte)(unsafe.Pointer(addr))
	n := 0
	for *(*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + uintptr(n))) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
