package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_PushAndGet(t *testing.T) {
	h := NewHeap()
	av := h.NewArray()
	h.Push(av.Obj.Arr, Int(1))
	h.Push(av.Obj.Arr, Int(2))
	h.Push(av.Obj.Arr, Int(3))

	v, ok := av.Obj.Arr.Get(1)
	require.True(t, ok)
	assert.Equal(t, int64(2), v.I)
}

func TestArray_NegativeIndexOutOfBounds(t *testing.T) {
	h := NewHeap()
	av := h.NewArray()
	h.Push(av.Obj.Arr, Int(1))
	_, ok := av.Obj.Arr.Get(-1)
	assert.False(t, ok)
}

func TestArray_IndexPastEndOutOfBounds(t *testing.T) {
	h := NewHeap()
	av := h.NewArray()
	_, ok := av.Obj.Arr.Get(0)
	assert.False(t, ok)
}

func TestArray_SetElem(t *testing.T) {
	h := NewHeap()
	av := h.NewArray()
	h.Push(av.Obj.Arr, Int(1))
	ok := h.SetArrayElem(av.Obj.Arr, 0, Int(100))
	require.True(t, ok)
	v, _ := av.Obj.Arr.Get(0)
	assert.Equal(t, int64(100), v.I)
}

func TestArray_SetElemOutOfBoundsFails(t *testing.T) {
	h := NewHeap()
	av := h.NewArray()
	assert.False(t, h.SetArrayElem(av.Obj.Arr, 0, Int(1)))
}
