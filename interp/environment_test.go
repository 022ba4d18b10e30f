package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_DefineAndGet(t *testing.T) {
	h := NewHeap()
	e := NewGlobalEnv()
	require.True(t, e.Define(h, "x", Int(42), false))
	v, ok := e.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(42), v.I)
}

func TestEnv_DefineTwiceInSameScopeFails(t *testing.T) {
	h := NewHeap()
	e := NewGlobalEnv()
	require.True(t, e.Define(h, "x", Int(1), false))
	assert.False(t, e.Define(h, "x", Int(2), false))
}

func TestEnv_ShadowingAcrossScopesAllowed(t *testing.T) {
	h := NewHeap()
	parent := NewGlobalEnv()
	parent.Define(h, "x", Int(1), false)
	child := NewChildEnv(parent)
	require.True(t, child.Define(h, "x", Int(2), false))

	v, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(2), v.I)

	pv, ok := parent.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), pv.I)
}

func TestEnv_GetWalksChainOutward(t *testing.T) {
	h := NewHeap()
	parent := NewGlobalEnv()
	parent.Define(h, "y", Int(9), false)
	child := NewChildEnv(parent)

	v, ok := child.Get("y")
	require.True(t, ok)
	assert.Equal(t, int64(9), v.I)

	_, ok = child.GetLocal("y")
	assert.False(t, ok)
}

func TestEnv_SetFailsOnConst(t *testing.T) {
	h := NewHeap()
	e := NewGlobalEnv()
	e.Define(h, "PI", Float(3.14), true)
	assert.False(t, e.Set(h, "PI", Float(3)))
	assert.True(t, e.IsConst("PI"))
}

func TestEnv_SetFailsOnUndefined(t *testing.T) {
	h := NewHeap()
	e := NewGlobalEnv()
	assert.False(t, e.Set(h, "nope", Int(1)))
}

func TestEnv_SetSucceedsOnMutable(t *testing.T) {
	h := NewHeap()
	e := NewGlobalEnv()
	e.Define(h, "x", Int(1), false)
	require.True(t, e.Set(h, "x", Int(2)))
	v, _ := e.Get("x")
	assert.Equal(t, int64(2), v.I)
}

func TestEnv_DefineOrReplaceOverwrites(t *testing.T) {
	h := NewHeap()
	e := NewGlobalEnv()
	e.Define(h, "x", Int(1), false)
	e.DefineOrReplace(h, "x", Int(99), true)
	v, ok := e.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(99), v.I)
	assert.True(t, e.IsConst("x"))
}

func TestEnv_DecrefEnvRecursesToParent(t *testing.T) {
	h := NewHeap()
	parent := NewGlobalEnv()
	h.IncrefEnv(parent) // refs=2
	child := NewChildEnv(parent)
	h.DecrefEnv(child)
	// parent should still be alive (the child took a reference, refs=3, and
	// releasing the child dropped refs from 3 to 2)
	assert.Equal(t, int32(2), parent.refs)
}
