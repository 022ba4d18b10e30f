//go:build linux && cgo

// Package dynload wraps POSIX dlopen/dlsym/dlclose (spec.md §4.5, §6,
// "Dynamic loader interface"). The design assumes a POSIX-style facility
// (spec.md §1 non-goals exclude cross-platform loading), so this file is
// the only implementation: cgo is the idiomatic Go mechanism for reaching
// a C ABI function like dlopen, grounded in the pack's cgo-based
// C-library bindings (other_examples/*billziss-gh-cgofuse*,
// *hanwen-go-fuse*) and documented by
// golang-china-golangdoc.translations/src/cmd/cgo.
package dynload

/*
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Handle is an opaque dlopen handle. isSelf marks the process-image handle
// returned by Self (dlopen(NULL)).
type Handle struct {
	h      unsafe.Pointer
	isSelf bool
}

// Self returns the handle resolving against the current process image
// (spec.md §4.5: "The default is the current process image"), which
// already exposes the C runtime.
func Self() (*Handle, error) {
	h := C.dlopen(nil, C.RTLD_NOW|C.RTLD_GLOBAL)
	if h == nil {
		return nil, lastError()
	}
	return &Handle{h: unsafe.Pointer(h), isSelf: true}, nil
}

// Open dlopen()s path.
func Open(path string) (*Handle, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	h := C.dlopen(cpath, C.RTLD_NOW|C.RTLD_GLOBAL)
	if h == nil {
		return nil, lastError()
	}
	return &Handle{h: unsafe.Pointer(h)}, nil
}

// Close dlclose()s h. The reference design leaks library handles on
// shutdown (spec.md §5); callers are not required to call this.
func (h *Handle) Close() error {
	if h == nil || h.h == nil {
		return nil
	}
	if C.dlclose(h.h) != 0 {
		return lastError()
	}
	return nil
}

// Resolve looks up symbol in h, returning its address or an error.
func (h *Handle) Resolve(symbol string) (uintptr, error) {
	csym := C.CString(symbol)
	defer C.free(unsafe.Pointer(csym))
	addr := C.dlsym(h.h, csym)
	if addr == nil {
		return 0, lastError()
	}
	return uintptr(addr), nil
}

func lastError() error {
	msg := C.dlerror()
	if msg == nil {
		return fmt.Errorf("dlopen/dlsym: unknown error")
	}
	return fmt.Errorf("dlopen/dlsym: %s", C.GoString(msg))
}
