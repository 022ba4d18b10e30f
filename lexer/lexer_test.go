package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrosketchkun/brisk/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	lx := New(src)
	var ks []token.Kind
	for {
		tok := lx.Next()
		ks = append(ks, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	return ks
}

func TestLexer_Punctuation(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []token.Kind
	}{
		{"walrus", ":=", []token.Kind{token.DEFINE, token.EOF}},
		{"const-decl", "::", []token.Kind{token.CONST, token.EOF}},
		{"eq-vs-assign", "== =", []token.Kind{token.EQ, token.ASSIGN, token.EOF}},
		{"arrow", "=>", []token.Kind{token.ARROW, token.EOF}},
		{"neq-vs-not", "!= !", []token.Kind{token.NEQ, token.NOT, token.EOF}},
		{"lte-vs-lt", "<= <", []token.Kind{token.LTE, token.LT, token.EOF}},
		{"gte-vs-gt", ">= >", []token.Kind{token.GTE, token.GT, token.EOF}},
		{"range-vs-dot", ".. .", []token.Kind{token.DOTDOT, token.DOT, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, kinds(t, tt.src))
		})
	}
}

func TestLexer_Comments(t *testing.T) {
	toks := kinds(t, "1 # a trailing comment\n2")
	assert.Equal(t, []token.Kind{token.INT, token.INT, token.EOF}, toks)
}

func TestLexer_Number(t *testing.T) {
	lx := New("42 3.14")
	tok := lx.Next()
	require.Equal(t, token.INT, tok.Kind)
	assert.Equal(t, "42", tok.Literal)
	tok = lx.Next()
	require.Equal(t, token.FLOAT, tok.Kind)
	assert.Equal(t, "3.14", tok.Literal)
}

func TestLexer_Keywords(t *testing.T) {
	toks := kinds(t, "fn if else while for match defer true false nil")
	expected := []token.Kind{
		token.FN, token.IF, token.ELSE, token.WHILE, token.FOR, token.MATCH,
		token.DEFER, token.TRUE, token.FALSE, token.NIL, token.EOF,
	}
	assert.Equal(t, expected, toks)
}

func TestLexer_StringEscapes(t *testing.T) {
	lx := New(`"a\nb\t\"c\\d"`)
	tok := lx.Next()
	require.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, "a\nb\t\"c\\d", tok.Literal)
}

func TestLexer_Positions(t *testing.T) {
	lx := New("a\nb")
	first := lx.Next()
	second := lx.Next()
	assert.Equal(t, 1, first.Pos.Line)
	assert.Equal(t, 2, second.Pos.Line)
}
