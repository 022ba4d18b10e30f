package cheader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrosketchkun/brisk/ctype"
)

func TestParse_ObjectLikeMacros(t *testing.T) {
	src := `
#define MAX_SIZE 1024
#define PI 3.14159
#define GREETING "hello"
#define FUNC_LIKE(x) ((x) + 1)
`
	p := Parse(src)
	require.Len(t, p.Macros, 3)

	byName := map[string]MacroConst{}
	for _, m := range p.Macros {
		byName[m.Name] = m
	}

	require.Contains(t, byName, "MAX_SIZE")
	assert.Equal(t, MacroInt, byName["MAX_SIZE"].Kind)
	assert.Equal(t, int64(1024), byName["MAX_SIZE"].IValue)

	require.Contains(t, byName, "PI")
	assert.Equal(t, MacroFloat, byName["PI"].Kind)
	assert.InDelta(t, 3.14159, byName["PI"].FValue, 1e-9)

	require.Contains(t, byName, "GREETING")
	assert.Equal(t, MacroString, byName["GREETING"].Kind)
	assert.Equal(t, "hello", byName["GREETING"].SValue)

	assert.NotContains(t, byName, "FUNC_LIKE")
}

func TestParse_IncludeGuardSkipped(t *testing.T) {
	src := `
#ifndef FOO_H
#define FOO_H
#endif
`
	p := Parse(src)
	assert.Empty(t, p.Macros)
}

func TestParse_EnumAutoIncrement(t *testing.T) {
	src := `enum Color { RED, GREEN, BLUE = 10, YELLOW };`
	p := Parse(src)
	require.Len(t, p.Enums, 4)
	want := map[string]int64{"RED": 0, "GREEN": 1, "BLUE": 10, "YELLOW": 11}
	for _, e := range p.Enums {
		assert.Equal(t, want[e.Name], e.Value, e.Name)
	}
}

func TestParse_FunctionPrototype(t *testing.T) {
	src := `double sqrt(double x);`
	p := Parse(src)
	require.Len(t, p.Functions, 1)
	fn := p.Functions[0]
	assert.Equal(t, "sqrt", fn.Name)
	assert.Equal(t, ctype.Double, fn.ReturnType)
	require.Len(t, fn.ParamTypes, 1)
	assert.Equal(t, ctype.Double, fn.ParamTypes[0])
	assert.False(t, fn.Variadic)
}

func TestParse_VariadicFunction(t *testing.T) {
	src := `int printf(const char *fmt, ...);`
	p := Parse(src)
	require.Len(t, p.Functions, 1)
	fn := p.Functions[0]
	assert.Equal(t, "printf", fn.Name)
	assert.True(t, fn.Variadic)
	require.Len(t, fn.ParamTypes, 1)
	assert.Equal(t, ctype.CString, fn.ParamTypes[0])
}

func TestParse_VoidParamList(t *testing.T) {
	src := `int rand(void);`
	p := Parse(src)
	require.Len(t, p.Functions, 1)
	assert.Empty(t, p.Functions[0].ParamTypes)
}

func TestParse_CharPointerElevatedToCString(t *testing.T) {
	src := `char *strdup(const char *s);`
	p := Parse(src)
	require.Len(t, p.Functions, 1)
	assert.Equal(t, ctype.CString, p.Functions[0].ReturnType)
	assert.Equal(t, ctype.CString, p.Functions[0].ParamTypes[0])
}

func TestParse_TypedefFeedsBackIntoRecognizer(t *testing.T) {
	src := `
typedef unsigned long my_size_t;
my_size_t my_strlen(const char *s);
`
	p := Parse(src)
	require.Contains(t, p.Typedefs, "my_size_t")
	require.Len(t, p.Functions, 1)
	assert.Equal(t, ctype.ULong, p.Functions[0].ReturnType)
}

func TestParse_ExternCBlockContinuesAtTopLevel(t *testing.T) {
	src := `
extern "C" {
int foo(int x);
}
`
	p := Parse(src)
	require.Len(t, p.Functions, 1)
	assert.Equal(t, "foo", p.Functions[0].Name)
}

func TestParse_StructTypedefAliasMapsToStructKind(t *testing.T) {
	src := `
typedef struct { int x; int y; } Point;
void move(Point p);
`
	p := Parse(src)
	assert.Equal(t, ctype.Struct, p.Typedefs["Point"])
	require.Len(t, p.Functions, 1)
}

func TestParse_TaggedStructFieldsRecognized(t *testing.T) {
	src := `struct Point { int x; int y; };`
	p := Parse(src)
	require.Len(t, p.Structs, 1)
	d := p.Structs[0]
	assert.Equal(t, "Point", d.Name)
	require.Len(t, d.Fields, 2)
	assert.Equal(t, "x", d.Fields[0].Name)
	assert.Equal(t, ctype.Int, d.Fields[0].Type)
	assert.Equal(t, "y", d.Fields[1].Name)
	assert.Equal(t, 0, d.Fields[0].Offset)
	assert.Equal(t, 4, d.Fields[1].Offset)
	assert.Equal(t, 8, d.Size)
}

func TestParse_TypedefStructFieldsRecognized(t *testing.T) {
	src := `typedef struct { double x; double y; } Vec2;`
	p := Parse(src)
	require.Len(t, p.Structs, 1)
	d := p.Structs[0]
	assert.Equal(t, "Vec2", d.Name)
	require.Len(t, d.Fields, 2)
	assert.Equal(t, ctype.Double, d.Fields[0].Type)
	assert.Equal(t, ctype.Struct, p.Typedefs["Vec2"])
}

func TestParse_TaggedTypedefStructUsesTagWhenNoAlias(t *testing.T) {
	src := `typedef struct Rect { int w; int h; };`
	p := Parse(src)
	require.Len(t, p.Structs, 1)
	assert.Equal(t, "Rect", p.Structs[0].Name)
}

func TestParse_NestedTaggedStructFieldResolvesDescriptor(t *testing.T) {
	src := `
struct Point { int x; int y; };
struct Line { struct Point start; struct Point end; };
`
	p := Parse(src)
	require.Len(t, p.Structs, 2)
	byName := map[string]int{}
	for i, d := range p.Structs {
		byName[d.Name] = i
	}
	line := p.Structs[byName["Line"]]
	require.Len(t, line.Fields, 2)
	require.NotNil(t, line.Fields[0].Nested)
	assert.Equal(t, "Point", line.Fields[0].Nested.Name)
	assert.Equal(t, p.Structs[byName["Point"]].Size, line.Fields[0].Size)
}

func TestParse_UnionStillSkippedWhole(t *testing.T) {
	src := `union Value { int i; float f; };`
	p := Parse(src)
	assert.Empty(t, p.Structs)
}

func TestParse_StructFollowedByFunctionStillRecognized(t *testing.T) {
	src := `
struct Point { int x; int y; };
int distance(struct Point a, struct Point b);
`
	p := Parse(src)
	require.Len(t, p.Structs, 1)
	require.Len(t, p.Functions, 1)
	assert.Equal(t, "distance", p.Functions[0].Name)
}

func TestParse_GNUAttributesSkipped(t *testing.T) {
	src := `int __attribute__((noreturn)) die(int code);`
	p := Parse(src)
	require.Len(t, p.Functions, 1)
	assert.Equal(t, "die", p.Functions[0].Name)
}

func TestParse_GarbageInputMakesForwardProgress(t *testing.T) {
	src := "{{{{ ??? !!! @@@ ### $$$ %%% ^^^ &&&"
	assert.NotPanics(t, func() {
		p := Parse(src)
		assert.Empty(t, p.Functions)
	})
}

func TestParse_CommentsIgnored(t *testing.T) {
	src := `
// leading comment
/* block
   comment */
#define N 5 // trailing comment
`
	p := Parse(src)
	require.Len(t, p.Macros, 1)
	assert.Equal(t, int64(5), p.Macros[0].IValue)
}
