package ast

import "github.com/dobrosketchkun/brisk/token"

// Constructors, one per node kind, following clarete-langlang's NewXNode
// convention (grammar_ast.go) of a small factory per struct.

func NewIntLit(v int64, p token.Position) *IntLit       { return &IntLit{base{p}, v} }
func NewFloatLit(v float64, p token.Position) *FloatLit { return &FloatLit{base{p}, v} }
func NewStringLit(v string, p token.Position) *StringLit { return &StringLit{base{p}, v} }
func NewBoolLit(v bool, p token.Position) *BoolLit       { return &BoolLit{base{p}, v} }
func NewNilLit(p token.Position) *NilLit                 { return &NilLit{base{p}} }
func NewIdent(name string, p token.Position) *Ident      { return &Ident{base{p}, name} }

func NewBinaryExpr(op token.Kind, l, r Node, p token.Position) *BinaryExpr {
	return &BinaryExpr{base{p}, op, l, r}
}

func NewUnaryExpr(op token.Kind, operand Node, p token.Position) *UnaryExpr {
	return &UnaryExpr{base{p}, op, operand}
}

func NewAddressOf(operand Node, p token.Position) *AddressOf {
	return &AddressOf{base{p}, operand}
}

func NewArrayLit(elems []Node, p token.Position) *ArrayLit { return &ArrayLit{base{p}, elems} }

func NewTableLit(keys []string, values []Node, p token.Position) *TableLit {
	return &TableLit{base{p}, keys, values}
}

func NewRangeLit(start, end Node, p token.Position) *RangeLit {
	return &RangeLit{base{p}, start, end}
}

func NewIndexExpr(target, index Node, p token.Position) *IndexExpr {
	return &IndexExpr{base{p}, target, index}
}

func NewFieldExpr(target Node, name string, p token.Position) *FieldExpr {
	return &FieldExpr{base{p}, target, name}
}

func NewCallExpr(callee Node, args []Node, p token.Position) *CallExpr {
	return &CallExpr{base{p}, callee, args}
}

func NewLambdaExpr(params []string, body *Block, p token.Position) *LambdaExpr {
	return &LambdaExpr{base{p}, params, body}
}

func NewMatchExpr(subject Node, arms []MatchArm, p token.Position) *MatchExpr {
	return &MatchExpr{base{p}, subject, arms}
}

func NewBlock(stmts []Node, p token.Position) *Block { return &Block{base{p}, stmts} }

func NewVarDecl(name string, isConst bool, value Node, p token.Position) *VarDecl {
	return &VarDecl{base{p}, name, isConst, value}
}

func NewAssignment(kind AssignTarget, name string, container, index, value Node, p token.Position) *Assignment {
	return &Assignment{base{p}, kind, name, container, index, value}
}

func NewExprStmt(expr Node, p token.Position) *ExprStmt { return &ExprStmt{base{p}, expr} }

func NewIfStmt(cond Node, then *Block, els Node, p token.Position) *IfStmt {
	return &IfStmt{base{p}, cond, then, els}
}

func NewWhileStmt(cond Node, body *Block, p token.Position) *WhileStmt {
	return &WhileStmt{base{p}, cond, body}
}

func NewForStmt(iterator string, iterable Node, body *Block, p token.Position) *ForStmt {
	return &ForStmt{base{p}, iterator, iterable, body}
}

func NewReturnStmt(value Node, p token.Position) *ReturnStmt { return &ReturnStmt{base{p}, value} }
func NewBreakStmt(p token.Position) *BreakStmt               { return &BreakStmt{base{p}} }
func NewContinueStmt(p token.Position) *ContinueStmt         { return &ContinueStmt{base{p}} }

func NewDeferStmt(stmt Node, p token.Position) *DeferStmt { return &DeferStmt{base{p}, stmt} }

func NewFnDecl(name string, params []string, body *Block, p token.Position) *FnDecl {
	return &FnDecl{base{p}, name, params, body}
}

func NewImportStmt(path string, p token.Position) *ImportStmt { return &ImportStmt{base{p}, path} }

func NewInlineC(source string, p token.Position) *InlineC { return &InlineC{base{p}, source} }

func NewProgram(stmts []Node, p token.Position) *Program { return &Program{base{p}, stmts} }
