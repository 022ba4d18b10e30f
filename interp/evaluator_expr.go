package interp

import (
	"math"

	"github.com/dobrosketchkun/brisk/ast"
	"github.com/dobrosketchkun/brisk/token"
)

// evalExpr implements expression semantics per spec.md §4.3.2.
func (ev *Evaluator) evalExpr(n ast.Node) (Value, error) {
	switch e := n.(type) {
	case *ast.IntLit:
		return Int(e.Value), nil
	case *ast.FloatLit:
		return Float(e.Value), nil
	case *ast.StringLit:
		return ev.Heap.Intern(e.Value), nil
	case *ast.BoolLit:
		return Bool(e.Value), nil
	case *ast.NilLit:
		return Nil(), nil
	case *ast.Ident:
		v, ok := ev.Current.Get(e.Name)
		if !ok {
			return Value{}, ev.runtimeError(ErrName, e.Pos(), "'%s' is not defined", e.Name)
		}
		return v, nil
	case *ast.BinaryExpr:
		return ev.evalBinary(e)
	case *ast.UnaryExpr:
		return ev.evalUnary(e)
	case *ast.AddressOf:
		return ev.evalAddressOf(e)
	case *ast.ArrayLit:
		return ev.evalArrayLit(e)
	case *ast.TableLit:
		return ev.evalTableLit(e)
	case *ast.RangeLit:
		return ev.evalRangeLit(e)
	case *ast.IndexExpr:
		return ev.evalIndex(e)
	case *ast.FieldExpr:
		return ev.evalField(e)
	case *ast.CallExpr:
		return ev.evalCall(e)
	case *ast.LambdaExpr:
		return ev.Heap.NewFunction("", e.Params, e.Body, ev.Current), nil
	case *ast.MatchExpr:
		return ev.evalMatch(e)
	}
	return Value{}, ev.runtimeError(ErrRuntime, n.Pos(), "cannot evaluate node")
}

func (ev *Evaluator) evalBinary(e *ast.BinaryExpr) (Value, error) {
	if e.Op == token.AND {
		left, err := ev.evalExpr(e.Left)
		if err != nil {
			return Value{}, err
		}
		if !left.Truthy() {
			return left, nil
		}
		return ev.evalExpr(e.Right)
	}
	if e.Op == token.OR {
		left, err := ev.evalExpr(e.Left)
		if err != nil {
			return Value{}, err
		}
		if left.Truthy() {
			return left, nil
		}
		return ev.evalExpr(e.Right)
	}

	left, err := ev.evalExpr(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := ev.evalExpr(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Op {
	case token.EQ:
		return Bool(left.Equals(right)), nil
	case token.NEQ:
		return Bool(!left.Equals(right)), nil
	case token.PLUS:
		return ev.evalPlus(left, right, e.Pos())
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		return ev.evalArith(e.Op, left, right, e.Pos())
	case token.LT, token.LTE, token.GT, token.GTE:
		return ev.evalCompare(e.Op, left, right, e.Pos())
	}
	return Value{}, ev.runtimeError(ErrType, e.Pos(), "unsupported operator %s", e.Op)
}

// evalPlus implements string concatenation (with right-side coercion) and
// numeric addition (spec.md §4.3.2).
func (ev *Evaluator) evalPlus(left, right Value, pos token.Position) (Value, error) {
	if left.IsObj(ObjString) {
		var rs string
		if right.IsObj(ObjString) {
			rs = right.Obj.Str.Value
		} else {
			rs = right.ToString()
		}
		return ev.Heap.Intern(left.Obj.Str.Value + rs), nil
	}
	return ev.evalArith(token.PLUS, left, right, pos)
}

func (ev *Evaluator) evalArith(op token.Kind, left, right Value, pos token.Position) (Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return Value{}, ev.runtimeError(ErrType, pos, "operands of '%s' must be numeric", op)
	}
	if left.Kind == KindFloat || right.Kind == KindFloat {
		l, r := left.AsFloat(), right.AsFloat()
		switch op {
		case token.PLUS:
			return Float(l + r), nil
		case token.MINUS:
			return Float(l - r), nil
		case token.STAR:
			return Float(l * r), nil
		case token.SLASH:
			if r == 0 {
				return Value{}, ev.runtimeError(ErrRuntime, pos, "division by zero")
			}
			return Float(l / r), nil
		case token.PERCENT:
			if r == 0 {
				return Value{}, ev.runtimeError(ErrRuntime, pos, "modulo by zero")
			}
			return Float(math.Remainder(l, r)), nil
		}
	}
	l, r := left.I, right.I
	switch op {
	case token.PLUS:
		return Int(l + r), nil
	case token.MINUS:
		return Int(l - r), nil
	case token.STAR:
		return Int(l * r), nil
	case token.SLASH:
		if r == 0 {
			return Value{}, ev.runtimeError(ErrRuntime, pos, "division by zero")
		}
		return Int(l / r), nil
	case token.PERCENT:
		if r == 0 {
			return Value{}, ev.runtimeError(ErrRuntime, pos, "modulo by zero")
		}
		return Int(l % r), nil
	}
	return Value{}, ev.runtimeError(ErrType, pos, "unsupported operator %s", op)
}

func (ev *Evaluator) evalCompare(op token.Kind, left, right Value, pos token.Position) (Value, error) {
	if !left.IsNumeric() || !right.IsNumeric() {
		return Value{}, ev.runtimeError(ErrType, pos, "operands of '%s' must be numeric", op)
	}
	l, r := left.AsFloat(), right.AsFloat()
	switch op {
	case token.LT:
		return Bool(l < r), nil
	case token.LTE:
		return Bool(l <= r), nil
	case token.GT:
		return Bool(l > r), nil
	case token.GTE:
		return Bool(l >= r), nil
	}
	return Value{}, ev.runtimeError(ErrType, pos, "unsupported comparator")
}

func (ev *Evaluator) evalUnary(e *ast.UnaryExpr) (Value, error) {
	v, err := ev.evalExpr(e.Operand)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case token.MINUS:
		switch v.Kind {
		case KindInt:
			return Int(-v.I), nil
		case KindFloat:
			return Float(-v.F), nil
		}
		return Value{}, ev.runtimeError(ErrType, e.Pos(), "unary '-' requires a number")
	case token.NOT:
		return Bool(!v.Truthy()), nil
	}
	return Value{}, ev.runtimeError(ErrType, e.Pos(), "unsupported unary operator")
}

// evalAddressOf is defined only for CStruct values (spec.md §4.3.2).
func (ev *Evaluator) evalAddressOf(e *ast.AddressOf) (Value, error) {
	v, err := ev.evalExpr(e.Operand)
	if err != nil {
		return Value{}, err
	}
	if !v.IsObj(ObjCStruct) {
		return Value{}, ev.runtimeError(ErrType, e.Pos(), "'&' is only defined for C struct values")
	}
	return ev.Heap.NewPointer(v.Obj.CStr.Addr(), v.Obj.CStr.Descriptor.Name), nil
}

func (ev *Evaluator) evalArrayLit(e *ast.ArrayLit) (Value, error) {
	arr := ev.Heap.NewArray()
	for _, elemExpr := range e.Elems {
		v, err := ev.evalExpr(elemExpr)
		if err != nil {
			return Value{}, err
		}
		ev.Heap.Push(arr.Obj.Arr, v)
	}
	return arr, nil
}

func (ev *Evaluator) evalTableLit(e *ast.TableLit) (Value, error) {
	tbl := ev.Heap.NewTable()
	for i, key := range e.Keys {
		v, err := ev.evalExpr(e.Values[i])
		if err != nil {
			return Value{}, err
		}
		ev.Heap.Set(tbl.Obj.Tab, key, v, false)
	}
	return tbl, nil
}

// evalRangeLit materializes start..end as a fresh array (spec.md §4.3.2:
// "an intentional simplification").
func (ev *Evaluator) evalRangeLit(e *ast.RangeLit) (Value, error) {
	start, err := ev.evalExpr(e.Start)
	if err != nil {
		return Value{}, err
	}
	end, err := ev.evalExpr(e.End)
	if err != nil {
		return Value{}, err
	}
	if start.Kind != KindInt || end.Kind != KindInt {
		return Value{}, ev.runtimeError(ErrType, e.Pos(), "range bounds must be integers")
	}
	arr := ev.Heap.NewArray()
	if start.I <= end.I {
		for i := start.I; i < end.I; i++ {
			ev.Heap.Push(arr.Obj.Arr, Int(i))
		}
	} else {
		for i := start.I; i > end.I; i-- {
			ev.Heap.Push(arr.Obj.Arr, Int(i))
		}
	}
	return arr, nil
}

func (ev *Evaluator) evalIndex(e *ast.IndexExpr) (Value, error) {
	target, err := ev.evalExpr(e.Target)
	if err != nil {
		return Value{}, err
	}
	idx, err := ev.evalExpr(e.Index)
	if err != nil {
		return Value{}, err
	}
	switch {
	case target.IsObj(ObjArray):
		if idx.Kind != KindInt {
			return Value{}, ev.runtimeError(ErrType, e.Pos(), "array index must be an integer")
		}
		v, ok := target.Obj.Arr.Get(idx.I)
		if !ok {
			return Value{}, ev.runtimeError(ErrIndex, e.Pos(), "array index %d out of bounds", idx.I)
		}
		return v, nil
	case target.IsObj(ObjTable):
		if !idx.IsObj(ObjString) {
			return Value{}, ev.runtimeError(ErrType, e.Pos(), "table key must be a string")
		}
		v, ok := target.Obj.Tab.Get(idx.Obj.Str.Value)
		if !ok {
			return Nil(), nil
		}
		return v, nil
	case target.IsObj(ObjString):
		if idx.Kind != KindInt {
			return Value{}, ev.runtimeError(ErrType, e.Pos(), "string index must be an integer")
		}
		s := target.Obj.Str.Value
		if idx.I < 0 || idx.I >= int64(len(s)) {
			return Value{}, ev.runtimeError(ErrIndex, e.Pos(), "string index %d out of bounds", idx.I)
		}
		return ev.Heap.Intern(string(s[idx.I])), nil
	}
	return Value{}, ev.runtimeError(ErrType, e.Pos(), "cannot index a %s", describe(target))
}

// evalField is defined for tables (equivalent to indexing with a string
// key) and for CStruct values, where it routes through cstruct_get_field
// (spec.md §4.3.2, §4.8).
func (ev *Evaluator) evalField(e *ast.FieldExpr) (Value, error) {
	target, err := ev.evalExpr(e.Target)
	if err != nil {
		return Value{}, err
	}
	if target.IsObj(ObjCStruct) {
		v, err := target.Obj.CStr.GetField(ev, e.Name)
		if err != nil {
			return Value{}, ev.runtimeError(ErrName, e.Pos(), "%v", err)
		}
		return v, nil
	}
	if !target.IsObj(ObjTable) {
		return Value{}, ev.runtimeError(ErrType, e.Pos(), "field access is only defined for tables and C structs")
	}
	v, ok := target.Obj.Tab.Get(e.Name)
	if !ok {
		return Nil(), nil
	}
	return v, nil
}

// evalMatch implements spec.md §4.3.3's match semantics, usable in
// expression position (the value of the taken arm's body becomes the
// MatchExpr's own value as well as ev.LastValue for implicit return).
func (ev *Evaluator) evalMatch(e *ast.MatchExpr) (Value, error) {
	subject, err := ev.evalExpr(e.Subject)
	if err != nil {
		return Value{}, err
	}
	for _, arm := range e.Arms {
		matched, err := ev.armMatches(arm, subject)
		if err != nil {
			return Value{}, err
		}
		if !matched {
			continue
		}
		if arm.IsBlock {
			if err := ev.execBlock(arm.Body.(*ast.Block)); err != nil {
				return Value{}, err
			}
			return ev.LastValue, nil
		}
		v, err := ev.evalExpr(arm.Body)
		if err != nil {
			return Value{}, err
		}
		ev.LastValue = v
		return v, nil
	}
	return ev.LastValue, nil
}

func (ev *Evaluator) armMatches(arm ast.MatchArm, subject Value) (bool, error) {
	if arm.Pattern == nil { // `_` wildcard
		return true, nil
	}
	if rng, ok := arm.Pattern.(*ast.RangeLit); ok && subject.Kind == KindInt {
		start, err := ev.evalExpr(rng.Start)
		if err != nil {
			return false, err
		}
		end, err := ev.evalExpr(rng.End)
		if err != nil {
			return false, err
		}
		return start.I <= subject.I && subject.I < end.I, nil
	}
	pv, err := ev.evalExpr(arm.Pattern)
	if err != nil {
		return false, err
	}
	return pv.Equals(subject), nil
}
