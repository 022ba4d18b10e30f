package interp

import (
	"fmt"
	"math"
)

// Kind tags the five Value variants (spec.md §3, "Value").
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindObj
)

// Value is a tagged sum copied by value throughout the evaluator; the Obj
// arm is a shared pointer into the heap (spec.md §3: "copying an Obj value
// logically shares ownership").
type Value struct {
	Kind Kind
	B    bool
	I    int64
	F    float64
	Obj  *Obj
}

func Nil() Value           { return Value{Kind: KindNil} }
func Bool(b bool) Value    { return Value{Kind: KindBool, B: b} }
func Int(i int64) Value    { return Value{Kind: KindInt, I: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }

func objValue(o *Obj) Value { return Value{Kind: KindObj, Obj: o} }

func (v Value) IsNil() bool { return v.Kind == KindNil }

func (v Value) IsObj(k ObjKind) bool { return v.Kind == KindObj && v.Obj.Kind == k }

// Truthy implements spec.md §4.1: Nil, false, numeric zero and empty
// string are falsy; every live object (including empty arrays/tables) is
// truthy otherwise.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.B
	case KindInt:
		return v.I != 0
	case KindFloat:
		return v.F != 0
	case KindObj:
		if v.Obj.Kind == ObjString {
			return v.Obj.Str.Len > 0
		}
		return true
	}
	return false
}

func (v Value) IsNumeric() bool { return v.Kind == KindInt || v.Kind == KindFloat }

func (v Value) AsFloat() float64 {
	if v.Kind == KindFloat {
		return v.F
	}
	return float64(v.I)
}

// Equals implements value_equals (spec.md §4.1): numeric kinds compare
// across int/float by promotion; strings compare by canonical identity
// but fall back to hash+bytes for a transient uninterned copy; other
// objects compare by identity; Nil equals only Nil.
func (v Value) Equals(o Value) bool {
	if v.IsNumeric() && o.IsNumeric() {
		if v.Kind == KindInt && o.Kind == KindInt {
			return v.I == o.I
		}
		return v.AsFloat() == o.AsFloat()
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.B == o.B
	case KindObj:
		if v.Obj == o.Obj {
			return true
		}
		if v.Obj.Kind == ObjString && o.Obj.Kind == ObjString {
			return v.Obj.Str.Hash == o.Obj.Str.Hash && v.Obj.Str.Value == o.Obj.Str.Value
		}
		return false
	}
	return false
}

// ToString implements value_to_string, used by string concatenation and
// by the print builtins.
func (v Value) ToString() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindFloat:
		return formatFloat(v.F)
	case KindObj:
		switch v.Obj.Kind {
		case ObjString:
			return v.Obj.Str.Value
		case ObjArray:
			return arrayToString(v.Obj.Arr)
		case ObjTable:
			return tableToString(v.Obj.Tab)
		case ObjFunction:
			name := v.Obj.Fn.Name
			if name == "" {
				name = "<anonymous>"
			}
			return fmt.Sprintf("<fn %s>", name)
		case ObjNative:
			return fmt.Sprintf("<native %s>", v.Obj.Native.Name)
		case ObjPointer:
			return fmt.Sprintf("<ptr %s:%#x>", v.Obj.Ptr.TypeName, v.Obj.Ptr.Addr)
		case ObjCStruct:
			return fmt.Sprintf("<struct %s>", v.Obj.CStr.Descriptor.Name)
		case ObjCFunction:
			return fmt.Sprintf("<cfunc %s>", v.Obj.CFn.Descriptor.Name)
		}
	}
	return "?"
}

// formatFloat renders a float with Go's %g verb (the shortest form that
// round-trips, not C's six-significant-digit default), so printing 4.0
// yields "4" (spec.md §8 scenario 6); infinities and NaN print as "+Inf",
// "-Inf" and "NaN".
func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "+Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	return trimFloat(fmt.Sprintf("%g", f))
}

func trimFloat(s string) string { return s }

func arrayToString(a *ArrayObj) string {
	s := "["
	for i, v := range a.Elems {
		if i > 0 {
			s += ", "
		}
		if v.IsObj(ObjString) {
			s += fmt.Sprintf("%q", v.Obj.Str.Value)
		} else {
			s += v.ToString()
		}
	}
	return s + "]"
}

func tableToString(t *TableObj) string {
	s := "{"
	first := true
	for _, e := range t.entries {
		if e.key == nil || e.tombstone {
			continue
		}
		if !first {
			s += ", "
		}
		first = false
		s += e.key.Str.Value + ": " + e.value.ToString()
	}
	return s + "}"
}
