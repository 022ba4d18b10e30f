// Package interp implements the Brisk tree-walking evaluator: the value
// model, heap objects, environment chain and expression/statement
// semantics of spec.md §3 and §4.1-§4.3.
//
// Grounded on breadchris-yaegi/interp/interp.go's Interpreter/frame/scope
// shape (see DESIGN.md), generalized from "interpret Go" to "interpret
// Brisk": frame.anc becomes Env.parent, Interpreter.universe becomes the
// builtin-seeded global Env, and the teacher's mutable evaluation state
// (return/break/continue handling, a single error path) becomes the
// Evaluator's latches below.
package interp

import (
	"io"
	"os"

	"github.com/dobrosketchkun/brisk/ast"
	"github.com/dobrosketchkun/brisk/token"
)

type deferEntry struct {
	stmt ast.Node
}

// Evaluator holds all of the interpreter's mutable execution state
// (spec.md §4.3.1): current/global environment, the return and
// last-expression slots, the three control-flow latches, the error latch
// and the defer stack.
type Evaluator struct {
	Heap   *Heap
	Global *Env

	Current *Env

	ReturnValue Value
	LastValue   Value

	Returning, Breaking, Continuing bool

	HadError bool
	Err      *RuntimeError

	Defers []deferEntry

	Stdout, Stderr io.Writer

	Importer Importer
}

// Importer resolves `@import` directives; implemented by package-level
// helpers in import.go, kept as an interface here so the evaluator does
// not have to know about cheader/dynload/ffi directly.
type Importer interface {
	Import(ev *Evaluator, path string, pos token.Position) error
}

// NewEvaluator returns an Evaluator with a fresh heap and global
// environment pre-seeded with builtins (registerBuiltins, builtins.go).
func NewEvaluator() *Evaluator {
	ev := &Evaluator{
		Heap:    NewHeap(),
		Global:  NewGlobalEnv(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	ev.Current = ev.Global
	registerBuiltins(ev)
	return ev
}

// ClearError clears the error latch, as the REPL does between inputs
// (spec.md §7).
func (ev *Evaluator) ClearError() {
	ev.HadError = false
	ev.Err = nil
}

func (ev *Evaluator) fail(e *RuntimeError) {
	ev.HadError = true
	ev.Err = e
}

func (ev *Evaluator) runtimeError(kind ErrKind, pos token.Position, format string, args ...interface{}) *RuntimeError {
	e := newError(kind, pos, format, args...)
	ev.fail(e)
	return e
}

// Run executes prog's top-level statements in the global environment and
// returns the value of the last expression statement, if any.
func (ev *Evaluator) Run(prog *ast.Program) (Value, error) {
	ev.Current = ev.Global
	for _, s := range prog.Stmts {
		if ev.HadError {
			break
		}
		if err := ev.execStmt(s); err != nil {
			return Value{}, err
		}
	}
	if ev.HadError {
		return Value{}, ev.Err
	}
	return ev.LastValue, nil
}

// ---- statements (spec.md §4.3.3) ----

func (ev *Evaluator) execStmt(n ast.Node) error {
	if ev.HadError || ev.Returning || ev.Breaking || ev.Continuing {
		return nil // latched: no-op until consumed
	}
	switch s := n.(type) {
	case *ast.Block:
		return ev.execBlock(s)
	case *ast.VarDecl:
		return ev.execVarDecl(s)
	case *ast.Assignment:
		return ev.execAssignment(s)
	case *ast.ExprStmt:
		v, err := ev.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		ev.LastValue = v
		return nil
	case *ast.IfStmt:
		return ev.execIf(s)
	case *ast.WhileStmt:
		return ev.execWhile(s)
	case *ast.ForStmt:
		return ev.execFor(s)
	case *ast.ReturnStmt:
		return ev.execReturn(s)
	case *ast.BreakStmt:
		ev.Breaking = true
		return nil
	case *ast.ContinueStmt:
		ev.Continuing = true
		return nil
	case *ast.DeferStmt:
		ev.Defers = append(ev.Defers, deferEntry{stmt: s.Stmt})
		return nil
	case *ast.FnDecl:
		return ev.execFnDecl(s)
	case *ast.ImportStmt:
		if ev.Importer == nil {
			return ev.runtimeError(ErrFFI, s.Pos(), "no importer configured")
		}
		return ev.Importer.Import(ev, s.Path, s.Pos())
	case *ast.InlineC:
		// spec.md §9: accepted by the parser, rejected by the evaluator.
		return ev.runtimeError(ErrRuntime, s.Pos(), "inline @c blocks are not implemented")
	default:
		v, err := ev.evalExpr(n)
		if err != nil {
			return err
		}
		ev.LastValue = v
		return nil
	}
}

// execBlock pushes a scope and a defer marker, runs statements in order,
// then unwinds defers pushed since the marker in LIFO order (with latches
// masked) before popping the scope (spec.md §4.3.3, "Block").
func (ev *Evaluator) execBlock(b *ast.Block) error {
	parent := ev.Current
	ev.Current = NewChildEnv(parent)
	marker := len(ev.Defers)

	var stmtErr error
	for _, stmt := range b.Stmts {
		if ev.HadError || ev.Returning || ev.Breaking || ev.Continuing {
			break
		}
		if err := ev.execStmt(stmt); err != nil {
			stmtErr = err
			break
		}
	}

	deferErr := ev.unwindDefers(marker)

	ev.Heap.DecrefEnv(ev.Current)
	ev.Current = parent

	if stmtErr != nil {
		return stmtErr
	}
	return deferErr
}

// unwindDefers runs defers pushed since marker in LIFO order, masking the
// control-flow latches around each one so a deferred return/break/continue
// cannot hijack the outer unwind (spec.md §4.3.3, §7).
func (ev *Evaluator) unwindDefers(marker int) error {
	var firstErr error
	for len(ev.Defers) > marker {
		d := ev.Defers[len(ev.Defers)-1]
		ev.Defers = ev.Defers[:len(ev.Defers)-1]

		savedReturning, savedBreaking, savedContinuing := ev.Returning, ev.Breaking, ev.Continuing
		savedReturnValue := ev.ReturnValue
		ev.Returning, ev.Breaking, ev.Continuing = false, false, false

		err := ev.execStmt(d.stmt)

		ev.Returning, ev.Breaking, ev.Continuing = savedReturning, savedBreaking, savedContinuing
		ev.ReturnValue = savedReturnValue

		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (ev *Evaluator) execVarDecl(s *ast.VarDecl) error {
	v, err := ev.evalExpr(s.Value)
	if err != nil {
		return err
	}
	if !ev.Current.Define(ev.Heap, s.Name, v, s.Const) {
		return ev.runtimeError(ErrName, s.Pos(), "'%s' is already declared in this scope", s.Name)
	}
	return nil
}

func (ev *Evaluator) execAssignment(s *ast.Assignment) error {
	v, err := ev.evalExpr(s.Value)
	if err != nil {
		return err
	}
	switch s.TargetKind {
	case ast.TargetIdent:
		if ev.Current.IsConst(s.Name) {
			return ev.runtimeError(ErrName, s.Pos(), "Cannot assign to constant '%s'", s.Name)
		}
		if !ev.Current.Set(ev.Heap, s.Name, v) {
			return ev.runtimeError(ErrName, s.Pos(), "'%s' is not defined", s.Name)
		}
		return nil
	case ast.TargetIndex:
		container, err := ev.evalExpr(s.Container)
		if err != nil {
			return err
		}
		idx, err := ev.evalExpr(s.Index)
		if err != nil {
			return err
		}
		if container.IsObj(ObjArray) {
			if idx.Kind != KindInt {
				return ev.runtimeError(ErrType, s.Pos(), "array index must be an integer")
			}
			if !ev.Heap.SetArrayElem(container.Obj.Arr, idx.I, v) {
				return ev.runtimeError(ErrIndex, s.Pos(), "array index %d out of bounds", idx.I)
			}
			return nil
		}
		if container.IsObj(ObjTable) {
			if !idx.IsObj(ObjString) {
				return ev.runtimeError(ErrType, s.Pos(), "table key must be a string")
			}
			ev.Heap.Set(container.Obj.Tab, idx.Obj.Str.Value, v, false)
			return nil
		}
		return ev.runtimeError(ErrType, s.Pos(), "cannot index-assign a %s", describe(container))
	case ast.TargetField:
		container, err := ev.evalExpr(s.Container)
		if err != nil {
			return err
		}
		if container.IsObj(ObjCStruct) {
			if err := container.Obj.CStr.SetField(s.Name, v); err != nil {
				return ev.runtimeError(ErrName, s.Pos(), "%v", err)
			}
			return nil
		}
		if !container.IsObj(ObjTable) {
			return ev.runtimeError(ErrType, s.Pos(), "field assignment is only defined for tables and C structs")
		}
		ev.Heap.Set(container.Obj.Tab, s.Name, v, false)
		return nil
	}
	return ev.runtimeError(ErrType, s.Pos(), "invalid assignment target")
}

func (ev *Evaluator) execIf(s *ast.IfStmt) error {
	cond, err := ev.evalExpr(s.Cond)
	if err != nil {
		return err
	}
	if cond.Truthy() {
		return ev.execBlock(s.Then)
	}
	switch els := s.Else.(type) {
	case nil:
		return nil
	case *ast.Block:
		return ev.execBlock(els)
	default:
		return ev.execStmt(els) // chained elif, itself an *ast.IfStmt
	}
}

func (ev *Evaluator) execWhile(s *ast.WhileStmt) error {
	for {
		cond, err := ev.evalExpr(s.Cond)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		if err := ev.execBlock(s.Body); err != nil {
			return err
		}
		if ev.Breaking {
			ev.Breaking = false
			return nil
		}
		if ev.Continuing {
			ev.Continuing = false
			continue
		}
		if ev.Returning || ev.HadError {
			return nil
		}
	}
}

func (ev *Evaluator) execFor(s *ast.ForStmt) error {
	iterable, err := ev.evalExpr(s.Iterable)
	if err != nil {
		return err
	}
	if !iterable.IsObj(ObjArray) {
		return ev.runtimeError(ErrType, s.Pos(), "for ... in requires an array")
	}
	elems := iterable.Obj.Arr.Elems
	for _, elem := range elems {
		parent := ev.Current
		ev.Current = NewChildEnv(parent)
		ev.Current.Define(ev.Heap, s.Iterator, elem, false)

		err := ev.execBlock(s.Body)

		ev.Heap.DecrefEnv(ev.Current)
		ev.Current = parent

		if err != nil {
			return err
		}
		if ev.Breaking {
			ev.Breaking = false
			break
		}
		if ev.Continuing {
			ev.Continuing = false
			continue
		}
		if ev.Returning || ev.HadError {
			break
		}
	}
	return nil
}

func (ev *Evaluator) execReturn(s *ast.ReturnStmt) error {
	if s.Value == nil {
		ev.ReturnValue = Nil()
	} else {
		v, err := ev.evalExpr(s.Value)
		if err != nil {
			return err
		}
		ev.ReturnValue = v
	}
	ev.Returning = true
	return nil
}

func (ev *Evaluator) execFnDecl(s *ast.FnDecl) error {
	fn := ev.Heap.NewFunction(s.Name, s.Params, s.Body, ev.Current)
	if !ev.Current.Define(ev.Heap, s.Name, fn, false) {
		return ev.runtimeError(ErrName, s.Pos(), "'%s' is already declared in this scope", s.Name)
	}
	return nil
}

func describe(v Value) string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindObj:
		return v.Obj.Kind.String()
	}
	return "?"
}
