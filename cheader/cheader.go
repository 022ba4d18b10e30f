// Package cheader implements the tolerant, single-pass C header
// recognizer the importer uses to discover functions, enumerators and
// macro constants without invoking a real C preprocessor or front end
// (spec.md §4.7).
//
// Style grounded on lexer.go/parser.go's hand-rolled recursive-descent
// pairing (token-free, direct byte-cursor scanning with save/restore
// lookahead), generalized from Brisk source text to C header text.
package cheader

import (
	"github.com/dobrosketchkun/brisk/cstruct"
	"github.com/dobrosketchkun/brisk/ctype"
)

// FunctionDecl is a recognized C function prototype.
type FunctionDecl struct {
	Name       string
	ReturnType ctype.Kind
	ParamTypes []ctype.Kind
	Variadic   bool
}

// MacroKind tags the three possible `#define` value shapes (spec.md §4.7).
type MacroKind int

const (
	MacroInt MacroKind = iota
	MacroFloat
	MacroString
)

// MacroConst is a recognized object-like `#define`.
type MacroConst struct {
	Name   string
	Kind   MacroKind
	IValue int64
	FValue float64
	SValue string
}

// EnumConst is one `NAME [ = value ]` entry from an enum body.
type EnumConst struct {
	Name  string
	Value int64
}

// Parsed is the pool of declarations extracted from one header (spec.md
// §4.5 step 2: "parse the header into a pool of function, enum,
// macro-constant, and typedef declarations").
type Parsed struct {
	Functions []FunctionDecl
	Enums     []EnumConst
	Macros    []MacroConst

	// Structs holds one finalized descriptor per named struct declaration
	// recognized in source order (spec.md §4.4, §4.8): a top-level
	// `struct Tag { ... };` or a `typedef struct { ... } Alias;`. An
	// inline struct/union field nested inside another struct's body is
	// approximated as an opaque pointer-sized slot rather than recursed
	// into (the recognizer remains tolerant, not a full C front end).
	Structs []*cstruct.Descriptor

	// Typedefs maps a recognized alias name to the C kind it resolves to.
	// Feeds back into the type recognizer so that, unlike the reference
	// (spec.md §9), a typedef of a recognized base type is not silently
	// treated as `int`.
	Typedefs map[string]ctype.Kind
}

// Parse recognizes src's top-level declarations. It never fails: any
// construct it cannot make sense of is skipped, guaranteeing forward
// progress (spec.md §4.7, "Robustness").
func Parse(src string) *Parsed {
	p := newParser(src)
	p.run()
	return &Parsed{
		Functions: p.functions,
		Enums:     p.enums,
		Macros:    p.macros,
		Structs:   p.structs,
		Typedefs:  p.typedefs,
	}
}
