package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalOne(t *testing.T, src string) Value {
	t.Helper()
	i := New(Options{Unrestricted: false})
	v, err := i.Eval(src)
	require.NoError(t, err)
	return v
}

func TestBuiltin_Len(t *testing.T) {
	assert.Equal(t, int64(5), evalOne(t, `len("hello")`).I)
	assert.Equal(t, int64(3), evalOne(t, `len([1,2,3])`).I)
	assert.Equal(t, int64(2), evalOne(t, `len({a: 1, b: 2})`).I)
}

func TestBuiltin_PushMutatesInPlace(t *testing.T) {
	out := evalOne(t, `a := [1]
push(a, 2)
len(a)`)
	assert.Equal(t, int64(2), out.I)
}

func TestBuiltin_DeleteRemovesKey(t *testing.T) {
	out := evalOne(t, `t := {a: 1}
delete(t, "a")
has(t, "a")`)
	assert.False(t, out.B)
}

func TestBuiltin_TypeNames(t *testing.T) {
	assert.Equal(t, "int", evalOne(t, `type(1)`).Obj.Str.Value)
	assert.Equal(t, "string", evalOne(t, `type("x")`).Obj.Str.Value)
	assert.Equal(t, "bool", evalOne(t, `type(true)`).Obj.Str.Value)
	assert.Equal(t, "nil", evalOne(t, `type(nil)`).Obj.Str.Value)
}

func TestBuiltin_StrIntFloatConversions(t *testing.T) {
	assert.Equal(t, "42", evalOne(t, `str(42)`).Obj.Str.Value)
	assert.Equal(t, int64(3), evalOne(t, `int(3.9)`).I)
	assert.Equal(t, 3.0, evalOne(t, `float(3)`).F)
}

func TestBuiltin_AbsMinMax(t *testing.T) {
	assert.Equal(t, int64(5), evalOne(t, `abs(-5)`).I)
	assert.Equal(t, int64(1), evalOne(t, `min(1, 2)`).I)
	assert.Equal(t, int64(2), evalOne(t, `max(1, 2)`).I)
}

func TestBuiltin_SqrtFloor_Ceil(t *testing.T) {
	assert.Equal(t, 4.0, evalOne(t, `sqrt(16.0)`).F)
	assert.Equal(t, 2.0, evalOne(t, `floor(2.9)`).F)
	assert.Equal(t, 3.0, evalOne(t, `ceil(2.1)`).F)
}

func TestBuiltin_PrintlnOutput(t *testing.T) {
	var out bytes.Buffer
	i := New(Options{Stdout: &out, Unrestricted: false})
	_, err := i.Eval(`println("a", "b", 3)`)
	require.NoError(t, err)
	assert.Equal(t, "a b 3\n", out.String())
}

func TestBuiltin_LenRejectsUnsupportedType(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`len(5)`)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrType, re.Kind)
}

func TestBuiltin_ArityErrorOnWrongArgCount(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`len(1, 2)`)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrArity, re.Kind)
}
