package interp

import (
	"fmt"
	"math"

	"github.com/dobrosketchkun/brisk/token"
)

// token0 is used as the position for errors raised from inside a native
// builtin, which does not carry the call-site position through the
// NativeFn signature (spec.md §3, "Native"): a zero position, matching
// the reference's own builtins' diagnostics, which do not localize a
// byte offset either.
var token0 token.Position

// registerBuiltins seeds the global environment with the flat list of
// native intrinsics spec.md §2 places outside the graded core ("Built-ins
// ... a flat list of intrinsics with obvious semantics"): print/println,
// len/has/push for the container kinds, and a handful of math/conversion
// wrappers ahead of whatever a `@import "math.h"` brings in.
func registerBuiltins(ev *Evaluator) {
	def := func(name string, arity int, fn NativeFn) {
		ev.Global.Define(ev.Heap, name, ev.Heap.NewNative(name, arity, fn), true)
	}

	def("print", -1, builtinPrint)
	def("println", -1, builtinPrintln)
	def("len", 1, builtinLen)
	def("has", 2, builtinHas)
	def("push", 2, builtinPush)
	def("delete", 2, builtinDelete)
	def("type", 1, builtinType)
	def("str", 1, builtinStr)
	def("int", 1, builtinInt)
	def("float", 1, builtinFloat)

	def("abs", 1, builtinAbs)
	def("floor", 1, math1(math.Floor))
	def("ceil", 1, math1(math.Ceil))
	def("sqrt", 1, math1(math.Sqrt))
	def("min", 2, builtinMin)
	def("max", 2, builtinMax)

	def("cstruct_get_field", 2, builtinCstructGetField)
	def("cstruct_set_field", 3, builtinCstructSetField)
}

func builtinPrint(ev *Evaluator, args []Value) (Value, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(ev.Stdout, " ")
		}
		fmt.Fprint(ev.Stdout, a.ToString())
	}
	return Nil(), nil
}

func builtinPrintln(ev *Evaluator, args []Value) (Value, error) {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(ev.Stdout, " ")
		}
		fmt.Fprint(ev.Stdout, a.ToString())
	}
	fmt.Fprintln(ev.Stdout)
	return Nil(), nil
}

func builtinLen(ev *Evaluator, args []Value) (Value, error) {
	v := args[0]
	switch {
	case v.IsObj(ObjString):
		return Int(int64(v.Obj.Str.Len)), nil
	case v.IsObj(ObjArray):
		return Int(int64(len(v.Obj.Arr.Elems))), nil
	case v.IsObj(ObjTable):
		return Int(int64(v.Obj.Tab.count)), nil
	}
	return Value{}, ev.runtimeError(ErrType, token0, "len: unsupported operand %s", describe(v))
}

func builtinHas(ev *Evaluator, args []Value) (Value, error) {
	t, k := args[0], args[1]
	if !t.IsObj(ObjTable) || !k.IsObj(ObjString) {
		return Value{}, ev.runtimeError(ErrType, token0, "has: expected (table, string)")
	}
	return Bool(t.Obj.Tab.Has(k.Obj.Str.Value)), nil
}

func builtinPush(ev *Evaluator, args []Value) (Value, error) {
	a := args[0]
	if !a.IsObj(ObjArray) {
		return Value{}, ev.runtimeError(ErrType, token0, "push: expected an array")
	}
	ev.Heap.Push(a.Obj.Arr, args[1])
	return a, nil
}

func builtinDelete(ev *Evaluator, args []Value) (Value, error) {
	t, k := args[0], args[1]
	if !t.IsObj(ObjTable) || !k.IsObj(ObjString) {
		return Value{}, ev.runtimeError(ErrType, token0, "delete: expected (table, string)")
	}
	return Bool(ev.Heap.Delete(t.Obj.Tab, k.Obj.Str.Value)), nil
}

func builtinType(ev *Evaluator, args []Value) (Value, error) {
	return ev.Heap.Intern(describe(args[0])), nil
}

func builtinStr(ev *Evaluator, args []Value) (Value, error) {
	return ev.Heap.Intern(args[0].ToString()), nil
}

func builtinInt(ev *Evaluator, args []Value) (Value, error) {
	v := args[0]
	switch v.Kind {
	case KindInt:
		return v, nil
	case KindFloat:
		return Int(int64(v.F)), nil
	case KindBool:
		if v.B {
			return Int(1), nil
		}
		return Int(0), nil
	}
	return Value{}, ev.runtimeError(ErrType, token0, "int: cannot convert a %s", describe(v))
}

func builtinFloat(ev *Evaluator, args []Value) (Value, error) {
	v := args[0]
	if !v.IsNumeric() {
		return Value{}, ev.runtimeError(ErrType, token0, "float: cannot convert a %s", describe(v))
	}
	return Float(v.AsFloat()), nil
}

func builtinAbs(ev *Evaluator, args []Value) (Value, error) {
	v := args[0]
	switch v.Kind {
	case KindInt:
		if v.I < 0 {
			return Int(-v.I), nil
		}
		return v, nil
	case KindFloat:
		return Float(math.Abs(v.F)), nil
	}
	return Value{}, ev.runtimeError(ErrType, token0, "abs: expected a number")
}

func math1(f func(float64) float64) NativeFn {
	return func(ev *Evaluator, args []Value) (Value, error) {
		v := args[0]
		if !v.IsNumeric() {
			return Value{}, ev.runtimeError(ErrType, token0, "expected a number")
		}
		return Float(f(v.AsFloat())), nil
	}
}

func builtinMin(ev *Evaluator, args []Value) (Value, error) {
	a, b := args[0], args[1]
	if !a.IsNumeric() || !b.IsNumeric() {
		return Value{}, ev.runtimeError(ErrType, token0, "min: expected numbers")
	}
	if a.AsFloat() <= b.AsFloat() {
		return a, nil
	}
	return b, nil
}

func builtinMax(ev *Evaluator, args []Value) (Value, error) {
	a, b := args[0], args[1]
	if !a.IsNumeric() || !b.IsNumeric() {
		return Value{}, ev.runtimeError(ErrType, token0, "max: expected numbers")
	}
	if a.AsFloat() >= b.AsFloat() {
		return a, nil
	}
	return b, nil
}

// builtinCstructGetField is the callable form of spec.md §4.8's
// cstruct_get_field, equivalent to `.`-syntax field access on a struct.
func builtinCstructGetField(ev *Evaluator, args []Value) (Value, error) {
	s, name := args[0], args[1]
	if !s.IsObj(ObjCStruct) || !name.IsObj(ObjString) {
		return Value{}, ev.runtimeError(ErrType, token0, "cstruct_get_field: expected (struct, string)")
	}
	v, err := s.Obj.CStr.GetField(ev, name.Obj.Str.Value)
	if err != nil {
		return Value{}, ev.runtimeError(ErrName, token0, "%v", err)
	}
	return v, nil
}

// builtinCstructSetField is the callable form of spec.md §4.8's
// cstruct_set_field.
func builtinCstructSetField(ev *Evaluator, args []Value) (Value, error) {
	s, name, v := args[0], args[1], args[2]
	if !s.IsObj(ObjCStruct) || !name.IsObj(ObjString) {
		return Value{}, ev.runtimeError(ErrType, token0, "cstruct_set_field: expected (struct, string, value)")
	}
	if err := s.Obj.CStr.SetField(name.Obj.Str.Value, v); err != nil {
		return Value{}, ev.runtimeError(ErrName, token0, "%v", err)
	}
	return Nil(), nil
}
