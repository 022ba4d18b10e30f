package interp

// StringObj is the immutable, interned string heap object (spec.md §3).
type StringObj struct {
	Value string
	Len   int
	Hash  uint32
}

// fnv1a32 hashes s with 32-bit FNV-1a, as spec.md §3 specifies.
func fnv1a32(s string) uint32 {
	const (
		offset = 2166136261
		prime  = 16777619
	)
	h := uint32(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// Interner canonicalizes strings by byte content, per spec.md §3 and §8
// ("bytes(s1) = bytes(s2) ⇒ identity(s1) = identity(s2)"). It is owned by
// an Interpreter instance rather than being a process-wide singleton.
//
// The reference implementation performs a linear scan of its own table for
// lookups (spec.md §9, "quadratic on large programs" — a known bug); this
// rendition uses Go's built-in map for O(1) canonicalization, the
// reimplementation spec.md recommends.
type Interner struct {
	table map[string]*Obj
}

func newInterner() *Interner { return &Interner{table: map[string]*Obj{}} }

// Intern returns the canonical StringObj Value for s, creating and
// registering a new heap object on first use and increfing the canonical
// object's diagnostic count otherwise.
func (h *Heap) Intern(s string) Value {
	if o, ok := h.interner.table[s]; ok {
		h.Incref(o)
		return objValue(o)
	}
	o := newObj(h, ObjString, int64(len(s))+1)
	o.Str = &StringObj{Value: s, Len: len(s), Hash: fnv1a32(s)}
	h.interner.table[s] = o
	return objValue(o)
}

// releaseString removes the interner entry for a string object reaching a
// zero reference count, provided it is still the canonical entry (spec.md
// §4.1: "String release removes the interner entry if the released string
// was the canonical one").
func (h *Heap) releaseString(s *StringObj) {
	if h.interner == nil {
		return
	}
	if o, ok := h.interner.table[s.Value]; ok && o.Str == s {
		delete(h.interner.table, s.Value)
	}
}
