package interp

// ArrayObj is a dynamically-grown sequence of values (spec.md §3): first
// capacity 8, doubling thereafter.
type ArrayObj struct {
	Elems []Value
}

const arrayInitialCap = 8

// NewArray allocates an empty array object.
func (h *Heap) NewArray() Value {
	o := newObj(h, ObjArray, 0)
	o.Arr = &ArrayObj{Elems: make([]Value, 0, arrayInitialCap)}
	return objValue(o)
}

// Push appends v, increfing it if it is an owned object. When the backing
// slice is full its capacity is doubled (starting from 8 for an empty one).
func (h *Heap) Push(a *ArrayObj, v Value) {
	h.IncrefValue(v)
	if len(a.Elems) == cap(a.Elems) {
		newCap := 2 * cap(a.Elems)
		if newCap == 0 {
			newCap = arrayInitialCap
		}
		grown := make([]Value, len(a.Elems), newCap)
		copy(grown, a.Elems)
		a.Elems = grown
	}
	a.Elems = append(a.Elems, v)
}

// Get returns element i, or (_, false) if out of bounds. Negative indices
// are out of bounds (spec.md §8: "no Python-style negative indexing").
func (a *ArrayObj) Get(i int64) (Value, bool) {
	if i < 0 || i >= int64(len(a.Elems)) {
		return Value{}, false
	}
	return a.Elems[i], true
}

// SetArrayElem overwrites element i, adjusting reference counts for the old and new
// values. Returns false if i is out of bounds.
func (h *Heap) SetArrayElem(a *ArrayObj, i int64, v Value) bool {
	if i < 0 || i >= int64(len(a.Elems)) {
		return false
	}
	h.DecrefValue(a.Elems[i])
	h.IncrefValue(v)
	a.Elems[i] = v
	return true
}
