package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrosketchkun/brisk/cstruct"
	"github.com/dobrosketchkun/brisk/ctype"
)

func TestNewCStruct_AllocatesZeroedData(t *testing.T) {
	d := cstruct.NewDescriptor("Point")
	d.AddField("x", ctype.Int, nil)
	d.AddField("y", ctype.Int, nil)

	h := NewHeap()
	v := h.NewCStruct(d)
	require.True(t, v.IsObj(ObjCStruct))
	assert.Len(t, v.Obj.CStr.Data, 8)
	for _, b := range v.Obj.CStr.Data {
		assert.Equal(t, byte(0), b)
	}
}

func TestCStructObj_AddrNonZeroWhenAllocated(t *testing.T) {
	d := cstruct.NewDescriptor("Point")
	d.AddField("x", ctype.Int, nil)

	h := NewHeap()
	v := h.NewCStruct(d)
	assert.NotEqual(t, uintptr(0), v.Obj.CStr.Addr())
}

func TestEvalAddressOf_RequiresCStruct(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`&5`)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrType, re.Kind)
}
