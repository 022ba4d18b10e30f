// Package ast defines the Brisk abstract syntax tree: a discriminated
// union expressed the idiomatic Go way, one interface plus one struct per
// node kind, in the style of clarete-langlang's AstNode/one-struct-per-kind
// tree rather than a single generic node-with-children record.
package ast

import "github.com/dobrosketchkun/brisk/token"

// Node is implemented by every AST node. Function values hold ordinary Go
// pointers into this tree (shared, GC-managed ownership) rather than the
// borrowed raw pointers the reference implementation uses.
type Node interface {
	Pos() token.Position
	astNode()
}

type base struct{ pos token.Position }

func (b base) Pos() token.Position { return b.pos }
func (base) astNode()              {}

// ---- expressions ----

type IntLit struct {
	base
	Value int64
}

type FloatLit struct {
	base
	Value float64
}

type StringLit struct {
	base
	Value string
}

type BoolLit struct {
	base
	Value bool
}

type NilLit struct{ base }

type Ident struct {
	base
	Name string
}

type BinaryExpr struct {
	base
	Op          token.Kind
	Left, Right Node
}

type UnaryExpr struct {
	base
	Op      token.Kind
	Operand Node
}

type AddressOf struct {
	base
	Operand Node
}

type ArrayLit struct {
	base
	Elems []Node
}

type TableLit struct {
	base
	Keys   []string
	Values []Node
}

type RangeLit struct {
	base
	Start, End Node
}

type IndexExpr struct {
	base
	Target, Index Node
}

type FieldExpr struct {
	base
	Target Node
	Name   string
}

type CallExpr struct {
	base
	Callee Node
	Args   []Node
}

type LambdaExpr struct {
	base
	Params []string
	Body   *Block
}

// MatchArm is one `pattern => body` clause of a match expression.
type MatchArm struct {
	Pattern Node // nil for the `_` wildcard
	IsBlock bool
	Body    Node // expression, or *Block when IsBlock
}

type MatchExpr struct {
	base
	Subject Node
	Arms    []MatchArm
}

// ---- statements ----

type Block struct {
	base
	Stmts []Node
}

type VarDecl struct {
	base
	Name  string
	Const bool
	Value Node
}

// AssignTarget distinguishes the three legal assignment targets: a name,
// an index (array or table), and a field.
type AssignTarget int

const (
	TargetIdent AssignTarget = iota
	TargetIndex
	TargetField
)

type Assignment struct {
	base
	TargetKind  AssignTarget
	Name        string // TargetIdent, TargetField
	Container   Node   // TargetIndex, TargetField
	Index       Node   // TargetIndex
	Value       Node
}

type ExprStmt struct {
	base
	Expr Node
}

type IfStmt struct {
	base
	Cond       Node
	Then       *Block
	Else       Node // *Block or *IfStmt, or nil
}

type WhileStmt struct {
	base
	Cond Node
	Body *Block
}

type ForStmt struct {
	base
	Iterator string
	Iterable Node
	Body     *Block
}

type ReturnStmt struct {
	base
	Value Node // nil means implicit nil
}

type BreakStmt struct{ base }
type ContinueStmt struct{ base }

type DeferStmt struct {
	base
	Stmt Node
}

type FnDecl struct {
	base
	Name   string
	Params []string
	Body   *Block
}

type ImportStmt struct {
	base
	Path string
}

// InlineC represents an `@c { ... }` block: parsed but rejected by the
// evaluator (spec.md §9 — accepted by the parser, unimplemented in
// evaluation).
type InlineC struct {
	base
	Source string
}

type Program struct {
	base
	Stmts []Node
}
