package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dobrosketchkun/brisk/token"
)

func TestConstructors_CarryPosition(t *testing.T) {
	pos := token.Position{Line: 3, Col: 7}

	tests := []struct {
		name string
		node Node
	}{
		{"int", NewIntLit(1, pos)},
		{"float", NewFloatLit(1.5, pos)},
		{"string", NewStringLit("s", pos)},
		{"bool", NewBoolLit(true, pos)},
		{"nil", NewNilLit(pos)},
		{"ident", NewIdent("x", pos)},
		{"binary", NewBinaryExpr(token.PLUS, NewIntLit(1, pos), NewIntLit(2, pos), pos)},
		{"unary", NewUnaryExpr(token.MINUS, NewIntLit(1, pos), pos)},
		{"addressof", NewAddressOf(NewIdent("x", pos), pos)},
		{"array", NewArrayLit(nil, pos)},
		{"table", NewTableLit(nil, nil, pos)},
		{"range", NewRangeLit(NewIntLit(0, pos), NewIntLit(1, pos), pos)},
		{"index", NewIndexExpr(NewIdent("a", pos), NewIntLit(0, pos), pos)},
		{"field", NewFieldExpr(NewIdent("t", pos), "f", pos)},
		{"call", NewCallExpr(NewIdent("f", pos), nil, pos)},
		{"lambda", NewLambdaExpr(nil, NewBlock(nil, pos), pos)},
		{"match", NewMatchExpr(NewIdent("s", pos), nil, pos)},
		{"block", NewBlock(nil, pos)},
		{"vardecl", NewVarDecl("x", false, NewIntLit(1, pos), pos)},
		{"exprstmt", NewExprStmt(NewIdent("x", pos), pos)},
		{"if", NewIfStmt(NewIdent("c", pos), NewBlock(nil, pos), nil, pos)},
		{"while", NewWhileStmt(NewIdent("c", pos), NewBlock(nil, pos), pos)},
		{"for", NewForStmt("i", NewIdent("xs", pos), NewBlock(nil, pos), pos)},
		{"return", NewReturnStmt(nil, pos)},
		{"break", NewBreakStmt(pos)},
		{"continue", NewContinueStmt(pos)},
		{"defer", NewDeferStmt(NewExprStmt(NewIdent("x", pos), pos), pos)},
		{"fndecl", NewFnDecl("f", nil, NewBlock(nil, pos), pos)},
		{"import", NewImportStmt("x.brisk", pos)},
		{"inlinec", NewInlineC("int x;", pos)},
		{"program", NewProgram(nil, pos)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, pos, tt.node.Pos())
		})
	}
}

func TestAssignment_Targets(t *testing.T) {
	pos := token.Position{}
	a := NewAssignment(TargetIndex, "", NewIdent("a", pos), NewIntLit(0, pos), NewIntLit(1, pos), pos)
	assert.Equal(t, TargetIndex, a.TargetKind)
	assert.NotNil(t, a.Container)
	assert.NotNil(t, a.Index)
}

func TestMatchArm_WildcardHasNilPattern(t *testing.T) {
	arm := MatchArm{Pattern: nil, IsBlock: false, Body: NewIntLit(1, token.Position{})}
	assert.Nil(t, arm.Pattern)
}
