package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrosketchkun/brisk/cstruct"
	"github.com/dobrosketchkun/brisk/ctype"
)

func pointDescriptor() *cstruct.Descriptor {
	d := cstruct.NewDescriptor("Point")
	d.AddField("x", ctype.Int, nil)
	d.AddField("y", ctype.Int, nil)
	return d
}

func TestCStructObj_GetFieldSetField_RoundTrip(t *testing.T) {
	ev := NewEvaluator()
	v := ev.Heap.NewCStruct(pointDescriptor())
	require.True(t, v.IsObj(ObjCStruct))

	err := v.Obj.CStr.SetField("x", Int(7))
	require.NoError(t, err)

	got, err := v.Obj.CStr.GetField(ev, "x")
	require.NoError(t, err)
	assert.Equal(t, KindInt, got.Kind)
	assert.Equal(t, int64(7), got.I)

	// y is untouched.
	y, err := v.Obj.CStr.GetField(ev, "y")
	require.NoError(t, err)
	assert.Equal(t, int64(0), y.I)
}

func TestCStructObj_GetField_UnknownName(t *testing.T) {
	ev := NewEvaluator()
	v := ev.Heap.NewCStruct(pointDescriptor())
	_, err := v.Obj.CStr.GetField(ev, "z")
	assert.Error(t, err)
}

func TestCStructObj_SetField_UnknownName(t *testing.T) {
	ev := NewEvaluator()
	v := ev.Heap.NewCStruct(pointDescriptor())
	err := v.Obj.CStr.SetField("z", Int(1))
	assert.Error(t, err)
}

// TestBriskFieldSyntax_CStructGetSet proves `.`-syntax field access and
// assignment are wired to CStruct (not just tables), by injecting a
// manually-built descriptor into the global environment directly rather
// than going through a live `@import` of a C header (which would require a
// cgo/dlopen toolchain not available in this environment).
func TestBriskFieldSyntax_CStructGetSet(t *testing.T) {
	i := New(Options{Unrestricted: false})
	p := i.ev.Heap.NewCStruct(pointDescriptor())
	i.ev.Global.Define(i.ev.Heap, "p", p, false)

	_, err := i.Eval("p.x = 5")
	require.NoError(t, err)

	v, err := i.Eval("p.x")
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(5), v.I)

	v, err = i.Eval("p.y")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.I)
}

func TestBuiltins_CstructGetFieldSetField(t *testing.T) {
	i := New(Options{Unrestricted: false})
	p := i.ev.Heap.NewCStruct(pointDescriptor())
	i.ev.Global.Define(i.ev.Heap, "p", p, false)

	_, err := i.Eval(`cstruct_set_field(p, "x", 42)`)
	require.NoError(t, err)

	v, err := i.Eval(`cstruct_get_field(p, "x")`)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v.I)
}

func TestBuiltins_CstructGetField_WrongArgType(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`cstruct_get_field(5, "x")`)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrType, re.Kind)
}

func TestFieldAssignment_NonTableNonStructRejected(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval("x := 5\nx.y = 1")
	require.Error(t, err)
}

// defineCStruct end-to-end: a header-declared struct's name becomes a
// reachable zero-arity constructor in the global environment.
func TestDefineCStruct_BindsCallableConstructor(t *testing.T) {
	ev := NewEvaluator()
	defineCStruct(ev, pointDescriptor())

	v, ok := ev.Global.Get("Point")
	require.True(t, ok)
	require.True(t, v.IsObj(ObjNative))

	result, err := v.Obj.Native.Fn(ev, nil)
	require.NoError(t, err)
	require.True(t, result.IsObj(ObjCStruct))
	assert.Equal(t, "Point", result.Obj.CStr.Descriptor.Name)
}
