package interp

import (
	"github.com/dobrosketchkun/brisk/ast"
)

// evalCall implements spec.md §4.3.4, "Function calls": the callee must
// evaluate to a Native, CFunction, or Function; arguments are evaluated
// left-to-right into a temporary slice before dispatch.
func (ev *Evaluator) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := ev.evalExpr(e.Callee)
	if err != nil {
		return Value{}, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := ev.evalExpr(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}

	if callee.Kind != KindObj {
		return Value{}, ev.runtimeError(ErrType, e.Pos(), "cannot call a %s", describe(callee))
	}

	switch callee.Obj.Kind {
	case ObjNative:
		return ev.callNative(callee.Obj.Native, args, e)
	case ObjCFunction:
		v, err := ev.callCFunction(callee.Obj.CFn, args)
		if err != nil {
			return Value{}, ev.runtimeError(ErrFFI, e.Pos(), "%s", err)
		}
		return v, nil
	case ObjFunction:
		return ev.callFunction(callee.Obj.Fn, args, e)
	}
	return Value{}, ev.runtimeError(ErrType, e.Pos(), "cannot call a %s", describe(callee))
}

// callNative checks arity (-1 means variadic) and invokes the Go-side
// implementation directly (spec.md §4.3.4).
func (ev *Evaluator) callNative(n *NativeObj, args []Value, e *ast.CallExpr) (Value, error) {
	if n.Arity >= 0 && len(args) != n.Arity {
		return Value{}, ev.runtimeError(ErrArity, e.Pos(), "%s: expected %d arguments, got %d", n.Name, n.Arity, len(args))
	}
	return n.Fn(ev, args)
}

// callFunction implements a Brisk closure invocation (spec.md §4.3.4): a
// new environment is created with the FUNCTION'S CAPTURED environment as
// parent (lexical scoping, not the caller's current environment), formal
// parameters are bound there, and the body runs as a block. An explicit
// return consumes and yields ReturnValue; otherwise the call yields
// LastValue (the value of the body's last expression-statement), matching
// a block's implicit-return convention.
func (ev *Evaluator) callFunction(fn *FunctionObj, args []Value, e *ast.CallExpr) (Value, error) {
	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "<anonymous>"
		}
		return Value{}, ev.runtimeError(ErrArity, e.Pos(), "%s: expected %d arguments, got %d", name, len(fn.Params), len(args))
	}

	callEnv := NewChildEnv(fn.Captured)
	for i, p := range fn.Params {
		callEnv.Define(ev.Heap, p, args[i], false)
	}

	savedEnv := ev.Current
	savedDeferMarker := len(ev.Defers)
	ev.Current = callEnv
	ev.LastValue = Nil()

	var bodyErr error
	for _, stmt := range fn.Body.Stmts {
		if ev.HadError || ev.Returning || ev.Breaking || ev.Continuing {
			break
		}
		if err := ev.execStmt(stmt); err != nil {
			bodyErr = err
			break
		}
	}

	deferErr := ev.unwindDefers(savedDeferMarker)

	ev.Heap.DecrefEnv(callEnv)
	ev.Current = savedEnv

	if bodyErr != nil {
		return Value{}, bodyErr
	}
	if deferErr != nil {
		return Value{}, deferErr
	}

	if ev.Returning {
		ev.Returning = false
		return ev.ReturnValue, nil
	}
	return ev.LastValue, nil
}
