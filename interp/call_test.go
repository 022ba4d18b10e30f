package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_ArityMismatchOnUserFunction(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`fn f(a, b) { a + b }
f(1)`)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrArity, re.Kind)
}

func TestCall_CallingNonCallableIsTypeError(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`x := 5
x()`)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrType, re.Kind)
}

func TestCall_UsesCapturedEnvironmentNotCallerEnv(t *testing.T) {
	// the closure must see its own captured `y`, not a same-named caller-local.
	src := `y := 1
fn f() { y }
fn wrapper() { y := 99; f() }
wrapper()`
	i := New(Options{Unrestricted: false})
	v, err := i.Eval(src)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.I)
}

func TestCall_RecursiveFunction(t *testing.T) {
	src := `fn fact(n) { match n { 0 => 1, _ => n * fact(n - 1) } }
fact(5)`
	v := evalOne(t, src)
	assert.Equal(t, int64(120), v.I)
}
