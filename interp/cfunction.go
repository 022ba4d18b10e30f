package interp

import "github.com/dobrosketchkun/brisk/cfunc"

// CFunctionObj wraps a resolved C function descriptor (spec.md §3,
// "CFunction").
type CFunctionObj struct {
	Descriptor *cfunc.Descriptor
}

// NewCFunction wraps a resolved C function descriptor as a heap value.
func (h *Heap) NewCFunction(d *cfunc.Descriptor) Value {
	o := newObj(h, ObjCFunction, 0)
	o.CFn = &CFunctionObj{Descriptor: d}
	return objValue(o)
}
