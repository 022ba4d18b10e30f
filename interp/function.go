package interp

import "github.com/dobrosketchkun/brisk/ast"

// FunctionObj is a Brisk closure (spec.md §3, "Function"): an optional
// display name, arity, borrowed AST body/param slices (here ordinary Go
// references, kept alive by the GC — see DESIGN.md "AST ownership" — not
// the raw/unowned pointers the reference uses), and a strong reference to
// the environment captured at creation.
type FunctionObj struct {
	Name     string
	Params   []string
	Body     *ast.Block
	Captured *Env
}

// NewFunction allocates a function object capturing env.
func (h *Heap) NewFunction(name string, params []string, body *ast.Block, env *Env) Value {
	o := newObj(h, ObjFunction, 0)
	h.IncrefEnv(env)
	o.Fn = &FunctionObj{Name: name, Params: params, Body: body, Captured: env}
	return objValue(o)
}

// NativeFn is the adapter signature every built-in conforms to (spec.md
// §3, "Native"). It receives the already-evaluated argument values and
// returns a result or an error.
type NativeFn func(ev *Evaluator, args []Value) (Value, error)

// NativeObj wraps a Go-implemented builtin (spec.md §3, "Native"): arity
// -1 means variadic.
type NativeObj struct {
	Name  string
	Arity int
	Fn    NativeFn
}

// NewNative allocates a native-function object.
func (h *Heap) NewNative(name string, arity int, fn NativeFn) Value {
	o := newObj(h, ObjNative, 0)
	o.Native = &NativeObj{Name: name, Arity: arity, Fn: fn}
	return objValue(o)
}

// PointerObj wraps an opaque address plus a diagnostic type-name string
// (spec.md §3, "Pointer").
type PointerObj struct {
	Addr     uintptr
	TypeName string
}

// NewPointer allocates a pointer object.
func (h *Heap) NewPointer(addr uintptr, typeName string) Value {
	o := newObj(h, ObjPointer, 0)
	o.Ptr = &PointerObj{Addr: addr, TypeName: typeName}
	return objValue(o)
}
