package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, src string) (stdout string, err error) {
	t.Helper()
	var out bytes.Buffer
	i := New(Options{Stdout: &out, Stderr: &out, Unrestricted: false})
	_, err = i.Eval(src)
	return out.String(), err
}

func TestScenario_ArithmeticAndImplicitReturn(t *testing.T) {
	out, err := runScript(t, "fn f(x) { x * x }\nprintln(f(7))")
	require.NoError(t, err)
	assert.Equal(t, "49\n", out)
}

func TestScenario_Closures(t *testing.T) {
	src := `fn make_counter() { c := 0; fn() { c = c + 1; c } }
k := make_counter(); println(k()); println(k()); println(k())`
	out, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestScenario_DeferLIFO(t *testing.T) {
	src := `fn g() { defer println("a"); defer println("b"); println("c") }
g()`
	out, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "c\nb\na\n", out)
}

func TestScenario_MatchRangePattern(t *testing.T) {
	src := `fn grade(s) { match s { 90..101 => "A", 80..90 => "B", _ => "F" } }
println(grade(95)); println(grade(85)); println(grade(50))`
	out, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nF\n", out)
}

func TestScenario_TableOrderedLiteral(t *testing.T) {
	src := `t := {a: 1, b: 2}; println(has(t, "a")); println(has(t, "c"))`
	out, err := runScript(t, src)
	require.NoError(t, err)
	assert.Equal(t, "true\nfalse\n", out)
}

func TestScenario_ConstViolation(t *testing.T) {
	_, err := runScript(t, "PI :: 3.14\nPI = 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot assign to constant 'PI'")
}

func TestScenario_ConstViolation_MessageShape(t *testing.T) {
	_, err := runScript(t, "PI :: 3.14\nPI = 3")
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrName, re.Kind)
	assert.True(t, strings.Contains(re.Msg, "PI"))
}

func TestRestrictedImporter_RefusesCHeader(t *testing.T) {
	out, err := runScript(t, `@import "math.h"`)
	_ = out
	require.Error(t, err)
	re, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, ErrFFI, re.Kind)
}

func TestArrayIndexNegativeOutOfBounds(t *testing.T) {
	_, err := runScript(t, "a := [1,2,3]\na[-1]")
	require.Error(t, err)
}

func TestForOverEmptyArrayRunsZeroTimes(t *testing.T) {
	out, err := runScript(t, `for x in [] { println("nope") }
println("done")`)
	require.NoError(t, err)
	assert.Equal(t, "done\n", out)
}

func TestAndReturnsNonBooleanFalsyOperand(t *testing.T) {
	i := New(Options{Unrestricted: false})
	v, err := i.Eval("0 and 5")
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(0), v.I)
}

func TestOrReturnsNonBooleanFalsyOperand(t *testing.T) {
	i := New(Options{Unrestricted: false})
	v, err := i.Eval(`"" or nil`)
	require.NoError(t, err)
	assert.Equal(t, KindNil, v.Kind)
}

func TestMatchNoArmLeavesLastValueUnchanged(t *testing.T) {
	i := New(Options{Unrestricted: false})
	_, err := i.Eval("1")
	require.NoError(t, err)
	v, err := i.Eval(`match 5 { 1 => "one" }`)
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, int64(1), v.I)
}
