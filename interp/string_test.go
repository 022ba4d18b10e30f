package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntern_SameBytesSameIdentity(t *testing.T) {
	h := NewHeap()
	a := h.Intern("hello")
	b := h.Intern("hello")
	require.True(t, a.IsObj(ObjString))
	assert.Same(t, a.Obj, b.Obj)
}

func TestIntern_DifferentBytesDifferentIdentity(t *testing.T) {
	h := NewHeap()
	a := h.Intern("hello")
	b := h.Intern("world")
	assert.NotSame(t, a.Obj, b.Obj)
}

func TestIntern_ReleaseRemovesCanonicalEntry(t *testing.T) {
	h := NewHeap()
	a := h.Intern("transient")
	require.Equal(t, int32(1), a.Obj.RefCount())
	h.Decref(a.Obj)

	// re-interning should create a fresh object, not resurrect the old one
	b := h.Intern("transient")
	assert.Equal(t, int32(1), b.Obj.RefCount())
}

func TestIntern_IncrefOnRepeatedLookup(t *testing.T) {
	h := NewHeap()
	a := h.Intern("shared")
	b := h.Intern("shared")
	assert.Equal(t, int32(2), a.Obj.RefCount())
	assert.Same(t, a.Obj, b.Obj)
	_ = b
}

func TestFNV1a32_KnownVector(t *testing.T) {
	// FNV-1a 32-bit of the empty string is the offset basis.
	assert.Equal(t, uint32(2166136261), fnv1a32(""))
}
