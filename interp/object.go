package interp

// ObjKind tags the eight heap-object variants (spec.md §3, "Object kinds").
type ObjKind int

const (
	ObjString ObjKind = iota
	ObjArray
	ObjTable
	ObjFunction
	ObjNative
	ObjPointer
	ObjCStruct
	ObjCFunction
)

func (k ObjKind) String() string {
	switch k {
	case ObjString:
		return "string"
	case ObjArray:
		return "array"
	case ObjTable:
		return "table"
	case ObjFunction:
		return "function"
	case ObjNative:
		return "native"
	case ObjPointer:
		return "pointer"
	case ObjCStruct:
		return "cstruct"
	case ObjCFunction:
		return "cfunction"
	default:
		return "unknown"
	}
}

// Obj is the common header every heap object carries (spec.md §3, "Object
// header"): a kind tag, a diagnostic reference count, an intrusive
// all-objects link, and a mark bit reserved for a future cycle collector
// (always false here — spec.md §9 strategy (a): document, don't collect).
//
// The reference count here is a testable diagnostic layered on top of Go's
// own garbage collector (see SPEC_FULL.md §3): Go
// reclaims the memory, Incref/Decref track the *logical* ownership graph
// the spec's invariants are stated against.
type Obj struct {
	Kind  ObjKind
	refs  int32
	next  *Obj // intrusive "all objects" link, diagnostics only
	mark  bool

	Str    *StringObj
	Arr    *ArrayObj
	Tab    *TableObj
	Fn     *FunctionObj
	Native *NativeObj
	Ptr    *PointerObj
	CStr   *CStructObj
	CFn    *CFunctionObj
}

// RefCount reports the current diagnostic reference count.
func (o *Obj) RefCount() int32 { return o.refs }

// Heap links every heap object it allocates into an intrusive list for
// diagnostics, mirroring the reference's process-wide "all objects" list
// (spec.md §3); objects stay on the list after their reference count
// reaches zero. It is owned by an Interpreter rather than being a
// process-wide global.
type Heap struct {
	head     *Obj
	bytes    int64
	interner *Interner
}

// NewHeap returns an empty Heap with its own string interner.
func NewHeap() *Heap {
	return &Heap{interner: newInterner()}
}

func (h *Heap) track(o *Obj, size int64) {
	o.next = h.head
	h.head = o
	h.bytes += size
}

// BytesAllocated reports the running total tracked by this heap.
func (h *Heap) BytesAllocated() int64 { return h.bytes }

// Count walks the intrusive list and counts every object allocated through
// this heap, released ones included (diagnostics).
func (h *Heap) Count() int {
	n := 0
	for o := h.head; o != nil; o = o.next {
		n++
	}
	return n
}

func newObj(h *Heap, kind ObjKind, size int64) *Obj {
	o := &Obj{Kind: kind, refs: 1}
	h.track(o, size)
	return o
}

// Incref bumps the diagnostic reference count of a heap object.
func (h *Heap) Incref(o *Obj) {
	if o == nil {
		return
	}
	o.refs++
}

// Decref decrements the reference count; at zero it recursively releases
// the object's owned children (spec.md §4.1, "Reference counting").
func (h *Heap) Decref(o *Obj) {
	if o == nil {
		return
	}
	o.refs--
	if o.refs > 0 {
		return
	}
	switch o.Kind {
	case ObjString:
		h.releaseString(o.Str)
	case ObjArray:
		for _, v := range o.Arr.Elems {
			h.DecrefValue(v)
		}
	case ObjTable:
		for _, e := range o.Tab.entries {
			if e.key != nil {
				h.Decref(e.key)
			}
			h.DecrefValue(e.value)
		}
	case ObjFunction:
		h.DecrefEnv(o.Fn.Captured)
	case ObjPointer:
		// type-name string is a plain Go string, nothing to release
	case ObjCStruct:
		o.CStr.Data = nil
	case ObjCFunction, ObjNative:
		// descriptors/pointers are not refcounted objects themselves
	}
}

// DecrefValue decrefs the Obj payload of v, if it is one.
func (h *Heap) DecrefValue(v Value) {
	if v.Kind == KindObj {
		h.Decref(v.Obj)
	}
}

// IncrefValue increfs the Obj payload of v, if it is one.
func (h *Heap) IncrefValue(v Value) {
	if v.Kind == KindObj {
		h.Incref(v.Obj)
	}
}
