package interp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportBriskModule_DefinesIntoGlobalScope(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.brisk")
	require.NoError(t, os.WriteFile(path, []byte(`fn greet() { "hi" }`), 0o644))

	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`@import "` + path + `"`)
	require.NoError(t, err)

	v, err := i.Eval(`greet()`)
	require.NoError(t, err)
	assert.Equal(t, "hi", v.Obj.Str.Value)
}

func TestImportBriskModule_MissingFileIsIOError(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`@import "/nonexistent/path/does/not/exist.brisk"`)
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrIO, re.Kind)
}

func TestRestrictedImporter_PermitsBriskModules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.brisk")
	require.NoError(t, os.WriteFile(path, []byte(`x := 1`), 0o644))

	i := New(Options{Unrestricted: false})
	_, err := i.Eval(`@import "` + path + `"`)
	assert.NoError(t, err)
}
