package cheader

import (
	"strconv"
	"strings"

	"github.com/dobrosketchkun/brisk/cstruct"
	"github.com/dobrosketchkun/brisk/ctype"
)

// maxIterations bounds the top-level production loop (spec.md §4.7,
// "on the order of 100 000 productions").
const maxIterations = 100000

type parser struct {
	src string
	pos int

	typedefs  map[string]ctype.Kind
	functions []FunctionDecl
	enums     []EnumConst
	macros    []MacroConst
	structs   []*cstruct.Descriptor

	// structTags maps a struct tag name to its descriptor, so a later
	// by-value field or parameter typed `struct Tag` can thread through
	// the same layout (spec.md §4.4, "optional nested-struct descriptor").
	structTags map[string]*cstruct.Descriptor
}

func newParser(src string) *parser {
	return &parser{
		src:        src,
		typedefs:   map[string]ctype.Kind{},
		structTags: map[string]*cstruct.Descriptor{},
	}
}

// run drives the top-level production loop, guaranteeing at least one
// byte of progress per iteration (spec.md §4.7, "Robustness").
func (p *parser) run() {
	for i := 0; i < maxIterations; i++ {
		p.skipTrivia()
		if p.atEnd() {
			return
		}
		before := p.pos
		p.topLevel()
		if p.pos == before {
			p.pos++
		}
	}
}

// ---- byte-cursor primitives ----

func (p *parser) atEnd() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) byte {
	if p.pos+off >= len(p.src) {
		return 0
	}
	return p.src[p.pos+off]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool { return isIdentStart(b) || (b >= '0' && b <= '9') }

// skipTrivia skips whitespace, comments, and any `#`-directive line other
// than `#define` (includes are ignored per spec.md §4.7).
func (p *parser) skipTrivia() {
	for {
		start := p.pos
		for !p.atEnd() && isSpace(p.peek()) {
			p.pos++
		}
		if p.hasPrefix("//") {
			for !p.atEnd() && p.peek() != '\n' {
				p.pos++
			}
			continue
		}
		if p.hasPrefix("/*") {
			p.pos += 2
			for !p.atEnd() && !p.hasPrefix("*/") {
				p.pos++
			}
			if p.hasPrefix("*/") {
				p.pos += 2
			}
			continue
		}
		if p.peek() == '#' {
			save := p.pos
			p.pos++
			p.skipHSpace()
			if p.matchWord("define") {
				p.pos = save
				return // handled as a production at the top level
			}
			p.skipDirectiveLine()
			continue
		}
		if p.pos == start {
			return
		}
	}
}

func (p *parser) skipHSpace() {
	for !p.atEnd() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

// skipDirectiveLine consumes the rest of a non-`#define` preprocessor
// line, honoring backslash line continuation.
func (p *parser) skipDirectiveLine() {
	for !p.atEnd() {
		if p.peek() == '\\' && p.peekAt(1) == '\n' {
			p.pos += 2
			continue
		}
		if p.peek() == '\n' {
			p.pos++
			return
		}
		p.pos++
	}
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// matchWord consumes an exact identifier token w at the cursor (word
// boundary on both sides), returning whether it matched.
func (p *parser) matchWord(w string) bool {
	if !p.hasPrefix(w) {
		return false
	}
	end := p.pos + len(w)
	if end < len(p.src) && isIdentChar(p.src[end]) {
		return false
	}
	p.pos = end
	return true
}

// peekWord reports whether w appears at the cursor without consuming it.
func (p *parser) peekWord(w string) bool {
	save := p.pos
	ok := p.matchWord(w)
	p.pos = save
	return ok
}

func (p *parser) readIdent() (string, bool) {
	if !isIdentStart(p.peek()) {
		return "", false
	}
	start := p.pos
	for isIdentChar(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos], true
}

func (p *parser) skipStringLiteral() {
	if p.peek() != '"' {
		return
	}
	p.pos++
	for !p.atEnd() && p.peek() != '"' {
		if p.peek() == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.peek() == '"' {
		p.pos++
	}
}

// skipBalanced consumes a balanced (open, close) group; the cursor must
// be positioned at open.
func (p *parser) skipBalanced(open, close byte) {
	if p.peek() != open {
		return
	}
	depth := 0
	for !p.atEnd() {
		b := p.peek()
		switch {
		case b == '"' || b == '\'':
			p.skipQuoted(b)
			continue
		case b == open:
			depth++
		case b == close:
			depth--
		}
		p.pos++
		if depth == 0 {
			return
		}
	}
}

func (p *parser) skipQuoted(q byte) {
	p.pos++
	for !p.atEnd() && p.peek() != q {
		if p.peek() == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.peek() == q {
		p.pos++
	}
}

// skipGNUAttrs skips `__attribute__((...))`, `__asm__(...)` and bare
// `__`-prefixed keywords (with an optional parenthesized argument list)
// wherever they occur (spec.md §4.7, "GNU extensions").
func (p *parser) skipGNUAttrs() {
	for {
		p.skipTrivia()
		save := p.pos
		name, ok := p.readIdent()
		if !ok {
			return
		}
		switch name {
		case "__attribute__", "__asm__", "__asm", "__extension__",
			"__inline__", "__inline", "inline",
			"__restrict__", "__restrict", "restrict",
			"__THROW", "__volatile__", "__const":
			p.skipTrivia()
			if p.peek() == '(' {
				p.skipBalanced('(', ')')
			}
			continue
		}
		if strings.HasPrefix(name, "__") {
			p.skipTrivia()
			if p.peek() == '(' {
				p.skipBalanced('(', ')')
			}
			continue
		}
		p.pos = save
		return
	}
}

// consumeStars counts `*` tokens (interleaved with `const`/`restrict`
// qualifiers), per the type recognizer's trailing-pointer syntax.
func (p *parser) consumeStars() int {
	stars := 0
	for {
		p.skipTrivia()
		if p.peek() == '*' {
			p.pos++
			stars++
			continue
		}
		save := p.pos
		if p.matchWord("const") || p.matchWord("restrict") || p.matchWord("volatile") {
			continue
		}
		p.pos = save
		return stars
	}
}

// ---- top-level dispatch ----

func (p *parser) topLevel() {
	switch {
	case p.peek() == ';':
		p.pos++
	case p.peek() == '}':
		// closes an `extern "C" {` block opened without a matching nested
		// group (spec.md §4.7: "continue parsing the body at the top
		// level rather than as a nested group").
		p.pos++
	case p.peek() == '#':
		p.parseDefine()
	case p.peekWord("extern"):
		p.parseExternOrDecl()
	case p.peekWord("typedef"):
		p.matchWord("typedef")
		p.parseTypedef()
	case p.peekWord("enum"):
		p.parseEnum()
	case p.peekWord("struct"):
		p.parseStruct()
	case p.peekWord("union"):
		p.skipUnion()
	default:
		p.skipGNUAttrs()
		p.parseFunctionOrSkip()
	}
}

// parseExternOrDecl recognizes `extern "C" {`; anything else starting
// with `extern` falls through to ordinary declaration handling (the type
// recognizer strips the bare qualifier).
func (p *parser) parseExternOrDecl() {
	save := p.pos
	p.matchWord("extern")
	p.skipTrivia()
	if p.peek() == '"' {
		p.skipStringLiteral()
		p.skipTrivia()
		if p.peek() == '{' {
			p.pos++
			return
		}
	}
	p.pos = save
	p.parseFunctionOrSkip()
}

// ---- #define ----

func (p *parser) parseDefine() {
	save := p.pos
	p.pos++ // '#'
	p.skipHSpace()
	if !p.matchWord("define") {
		p.pos = save
		p.skipDirectiveLine()
		return
	}
	p.skipHSpace()
	name, ok := p.readIdent()
	if !ok {
		p.skipDirectiveLine()
		return
	}
	if p.peek() == '(' {
		// function-like macro: skipped entirely (spec.md §4.7).
		p.skipDirectiveLine()
		return
	}
	p.skipHSpace()
	start := p.pos
	for !p.atEnd() {
		if p.peek() == '\\' && p.peekAt(1) == '\n' {
			p.pos += 2
			continue
		}
		if p.peek() == '\n' {
			break
		}
		p.pos++
	}
	raw := strings.TrimSpace(p.src[start:p.pos])
	if idx := strings.Index(raw, "//"); idx >= 0 {
		raw = strings.TrimSpace(raw[:idx])
	}
	if p.peek() == '\n' {
		p.pos++
	}
	if raw == "" {
		return // include-guard style `#define NAME` with no value
	}
	p.macros = append(p.macros, parseMacroValue(name, raw))
}

// parseMacroValue implements spec.md §4.7's attempt order: integer
// (including `0x...` hex), then float, then string.
func parseMacroValue(name, raw string) MacroConst {
	intText := strings.TrimRight(raw, "uUlL")
	base := 0
	if iv, err := strconv.ParseInt(intText, base, 64); err == nil {
		return MacroConst{Name: name, Kind: MacroInt, IValue: iv}
	}
	floatText := strings.TrimRight(raw, "fF")
	if fv, err := strconv.ParseFloat(floatText, 64); err == nil {
		return MacroConst{Name: name, Kind: MacroFloat, FValue: fv}
	}
	s := raw
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return MacroConst{Name: name, Kind: MacroString, SValue: s}
}

// ---- enum ----

func (p *parser) parseEnum() {
	p.matchWord("enum")
	p.skipTrivia()
	p.readIdent() // optional tag name, discarded
	p.skipTrivia()
	p.skipGNUAttrs()
	if p.peek() != '{' {
		// forward declaration: `enum Color;`
		p.skipStatementOrDecl()
		return
	}
	p.pos++ // '{'

	var next int64
	for {
		p.skipTrivia()
		if p.atEnd() || p.peek() == '}' {
			break
		}
		name, ok := p.readIdent()
		if !ok {
			break
		}
		p.skipTrivia()
		value := next
		if p.peek() == '=' {
			p.pos++
			p.skipTrivia()
			value = p.parseIntExpr(next)
		}
		p.enums = append(p.enums, EnumConst{Name: name, Value: value})
		next = value + 1
		p.skipTrivia()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	p.skipTrivia()
	if p.peek() == '}' {
		p.pos++
	}
	p.skipTrivia()
	// `enum { ... } Alias;` trailing alias name(s)
	for {
		if _, ok := p.readIdent(); !ok {
			break
		}
		p.skipTrivia()
		if p.peek() == ',' {
			p.pos++
			p.skipTrivia()
			continue
		}
		break
	}
	if p.peek() == ';' {
		p.pos++
	}
}

// parseIntExpr reads a bare integer literal or a previously-seen enum
// name up to the next `,`/`}`; anything fancier (shifts, bitwise-or
// combinations) falls back to fallback, a tolerant approximation rather
// than a real constant-expression evaluator.
func (p *parser) parseIntExpr(fallback int64) int64 {
	start := p.pos
	depth := 0
	for !p.atEnd() {
		b := p.peek()
		if depth == 0 && (b == ',' || b == '}') {
			break
		}
		if b == '(' {
			depth++
		}
		if b == ')' {
			depth--
		}
		p.pos++
	}
	text := strings.TrimSpace(p.src[start:p.pos])
	if iv, err := strconv.ParseInt(text, 0, 64); err == nil {
		return iv
	}
	for _, e := range p.enums {
		if e.Name == text {
			return e.Value
		}
	}
	return fallback
}

// ---- typedef ----

func (p *parser) parseTypedef() {
	p.skipTrivia()
	if p.peekWord("struct") {
		p.parseTypedefStruct()
		return
	}
	if p.peekWord("union") || p.peekWord("enum") {
		p.skipStructOrUnionBodyOnly()
		p.skipTrivia()
		for {
			alias, ok := p.readIdent()
			if !ok {
				break
			}
			p.typedefs[alias] = ctype.Struct
			p.skipTrivia()
			if p.peek() == ',' {
				p.pos++
				p.skipTrivia()
				continue
			}
			break
		}
		if p.peek() == ';' {
			p.pos++
		}
		return
	}

	kind, ok := p.recognizeType()
	if !ok {
		p.skipStatementOrDecl()
		return
	}
	p.skipTrivia()
	alias, ok := p.readIdent()
	if !ok {
		p.skipStatementOrDecl()
		return
	}
	p.typedefs[alias] = kind
	p.skipTrivia()
	p.skipGNUAttrs()
	if p.peek() == ';' {
		p.pos++
	} else {
		p.skipStatementOrDecl()
	}
}

// ---- struct / union ----

// skipUnion discards a top-level union declaration whole (spec.md §4.7:
// union layout is out of scope for cstruct's natural-alignment model).
func (p *parser) skipUnion() {
	p.skipStructOrUnionBodyOnly()
	p.skipTrivia()
	for {
		if _, ok := p.readIdent(); !ok {
			break
		}
		p.skipTrivia()
		if p.peek() == ',' {
			p.pos++
			p.skipTrivia()
			continue
		}
		break
	}
	if p.peek() == ';' {
		p.pos++
	}
}

// parseStruct recognizes a top-level `struct Tag { fields... } [alias,
// ...];` (or a bare forward declaration, left unregistered), building a
// cstruct.Descriptor from the field list so the struct becomes a usable
// Brisk value (spec.md §4.4, §4.8).
func (p *parser) parseStruct() {
	p.matchWord("struct")
	p.skipTrivia()
	tag, hasTag := p.readIdent()
	p.skipTrivia()
	p.skipGNUAttrs()
	if p.peek() != '{' {
		// forward declaration only: nothing to register yet.
		p.skipStatementOrDecl()
		return
	}
	d := p.parseStructFields(tag)
	if hasTag {
		p.structTags[tag] = d
	}
	p.skipTrivia()
	var lastAlias string
	for {
		alias, ok := p.readIdent()
		if !ok {
			break
		}
		lastAlias = alias
		p.skipTrivia()
		if p.peek() == ',' {
			p.pos++
			p.skipTrivia()
			continue
		}
		break
	}
	if p.peek() == ';' {
		p.pos++
	}
	if d.Name == "" {
		d.Name = lastAlias
	}
	p.registerStruct(d)
}

// parseTypedefStruct recognizes `typedef struct [Tag] { fields... }
// Alias[, Alias2...];`, building a Descriptor and registering it under
// the tag name (if any) and every alias (spec.md §4.4, §4.8).
func (p *parser) parseTypedefStruct() {
	p.matchWord("struct")
	p.skipTrivia()
	tag, hasTag := p.readIdent()
	p.skipTrivia()
	p.skipGNUAttrs()
	if p.peek() != '{' {
		p.skipStatementOrDecl()
		return
	}
	d := p.parseStructFields(tag)
	if hasTag {
		p.structTags[tag] = d
	}
	p.skipTrivia()
	var lastAlias string
	for {
		alias, ok := p.readIdent()
		if !ok {
			break
		}
		lastAlias = alias
		p.typedefs[alias] = ctype.Struct
		p.skipTrivia()
		if p.peek() == ',' {
			p.pos++
			p.skipTrivia()
			continue
		}
		break
	}
	if p.peek() == ';' {
		p.pos++
	}
	if d.Name == "" {
		d.Name = lastAlias
	}
	p.registerStruct(d)
}

// registerStruct appends d to the recognized struct pool, tagging it in
// structTags too, provided it ended up with a usable name.
func (p *parser) registerStruct(d *cstruct.Descriptor) {
	if d.Name == "" {
		return
	}
	p.structTags[d.Name] = d
	p.structs = append(p.structs, d)
}

// parseStructFields parses a struct body `{ fieldDecl; ... }` into a
// freshly finalized Descriptor; the cursor must be positioned at the
// opening `{`.
func (p *parser) parseStructFields(name string) *cstruct.Descriptor {
	d := cstruct.NewDescriptor(name)
	p.pos++ // '{'
	for {
		p.skipTrivia()
		if p.atEnd() || p.peek() == '}' {
			break
		}
		before := p.pos
		typ, nested, ok := p.recognizeFieldType()
		if !ok {
			p.skipStatementOrDecl()
			if p.pos == before {
				p.pos++
			}
			continue
		}
		p.skipTrivia()
		p.skipGNUAttrs()
		for {
			fname, ok := p.readIdent()
			if !ok {
				break
			}
			fieldType := typ
			p.skipTrivia()
			for p.peek() == '[' {
				p.skipBalanced('[', ']')
				fieldType = ctype.Pointer // array field decays to a pointer-sized slot
			}
			d.AddField(fname, fieldType, nested)
			p.skipTrivia()
			if p.peek() == ',' {
				p.pos++
				p.skipTrivia()
				continue
			}
			break
		}
		p.skipTrivia()
		if p.peek() == ';' {
			p.pos++
		}
	}
	if p.peek() == '}' {
		p.pos++
	}
	d.Finalize()
	return d
}

// recognizeFieldType parses one struct member's type. A nested field
// naming a previously-declared tagged struct threads through that
// struct's own descriptor; an inline struct/union body or an untagged
// reference approximates to an opaque ctype.Struct slot (spec.md §4.7's
// tolerant-recognizer style, extended rather than abandoned).
func (p *parser) recognizeFieldType() (ctype.Kind, *cstruct.Descriptor, bool) {
	if p.peekWord("struct") || p.peekWord("union") {
		save := p.pos
		p.matchWord("struct")
		p.matchWord("union")
		p.skipTrivia()
		tag, hasTag := p.readIdent()
		p.skipTrivia()
		if p.peek() == '{' {
			p.pos = save
			p.skipStructOrUnionBodyOnly()
			p.skipTrivia()
			p.consumeStars()
			return ctype.Struct, nil, true
		}
		p.consumeStars()
		if hasTag {
			if nested, ok := p.structTags[tag]; ok {
				return ctype.Struct, nested, true
			}
		}
		return ctype.Struct, nil, true
	}
	kind, ok := p.recognizeType()
	return kind, nil, ok
}

// skipStructOrUnionBodyOnly consumes `struct|union [tag] { ... }` (or, for
// a bare forward declaration with no body, just the tag); it does not
// consume a trailing `;` or alias list.
func (p *parser) skipStructOrUnionBodyOnly() {
	p.matchWord("struct")
	p.matchWord("union")
	p.skipTrivia()
	p.readIdent() // optional tag
	p.skipTrivia()
	p.skipGNUAttrs()
	if p.peek() == '{' {
		p.skipBalanced('{', '}')
	}
}

// ---- type recognizer (spec.md §4.7, "The type recognizer") ----

func (p *parser) skipQualifiers() {
	for {
		save := p.pos
		p.skipTrivia()
		if p.matchWord("const") || p.matchWord("volatile") || p.matchWord("static") ||
			p.matchWord("extern") || p.matchWord("inline") || p.matchWord("register") {
			continue
		}
		p.pos = save
		return
	}
}

// recognizeType parses a C type expression: qualifiers, an optional
// unsigned/signed, a base type (struct/union/enum, a recognized scalar
// name, or a typedef alias — otherwise defaulting to int per spec.md §9,
// mitigated here by consulting p.typedefs first), then zero or more `*`.
func (p *parser) recognizeType() (ctype.Kind, bool) {
	start := p.pos
	p.skipQualifiers()

	if p.peekWord("struct") || p.peekWord("union") {
		p.skipStructOrUnionBodyOnly()
		p.skipTrivia()
		p.consumeStars()
		return ctype.Struct, true
	}
	if p.peekWord("enum") {
		p.matchWord("enum")
		p.skipTrivia()
		p.readIdent()
		p.skipTrivia()
		p.consumeStars()
		return ctype.Int, true
	}

	unsigned, signed := false, false
	for {
		if p.matchWord("unsigned") {
			unsigned = true
			p.skipTrivia()
			continue
		}
		if p.matchWord("signed") {
			signed = true
			p.skipTrivia()
			continue
		}
		break
	}

	name, ok := p.readIdent()
	if !ok {
		if unsigned || signed {
			stars := p.consumeStars()
			if stars > 0 {
				return ctype.Pointer, true
			}
			if unsigned {
				return ctype.UInt, true
			}
			return ctype.Int, true
		}
		p.pos = start
		return 0, false
	}

	kind, recognized := ctype.FromName(name)
	switch name {
	case "long":
		save := p.pos
		p.skipTrivia()
		if p.matchWord("long") {
			kind, recognized = ctype.LongLong, true
			p.skipTrivia()
			p.matchWord("int")
		} else if p.matchWord("int") {
			kind, recognized = ctype.Long, true
		} else if p.matchWord("double") {
			kind, recognized = ctype.Double, true // long double approximated
		} else {
			p.pos = save
		}
	case "short":
		save := p.pos
		p.skipTrivia()
		if !p.matchWord("int") {
			p.pos = save
		}
	}

	if !recognized {
		if alias, ok := p.typedefs[name]; ok {
			kind, recognized = alias, true
		} else {
			kind, recognized = ctype.Int, true // §9 documented hazard
		}
	}

	if unsigned {
		switch kind {
		case ctype.Int:
			kind = ctype.UInt
		case ctype.Short:
			kind = ctype.UShort
		case ctype.Long:
			kind = ctype.ULong
		case ctype.LongLong:
			kind = ctype.ULongLong
		case ctype.Char:
			kind = ctype.UChar
		}
	}

	p.skipTrivia()
	stars := p.consumeStars()
	if name == "char" && stars == 1 {
		return ctype.CString, true // `char*`/`const char*` elevated to string
	}
	if stars > 0 {
		return ctype.Pointer, true
	}
	return kind, true
}

// ---- function declarations ----

func (p *parser) parseFunctionOrSkip() {
	save := p.pos
	ret, ok := p.recognizeType()
	if !ok {
		p.skipStatementOrDecl()
		return
	}
	p.skipTrivia()
	p.skipGNUAttrs()
	name, ok := p.readIdent()
	if !ok {
		p.pos = save
		p.skipStatementOrDecl()
		return
	}
	p.skipTrivia()
	p.skipGNUAttrs()
	if p.peek() != '(' {
		p.pos = save
		p.skipStatementOrDecl()
		return
	}
	p.pos++ // '('
	params, variadic := p.parseParamList()
	p.skipTrivia()
	if p.peek() != ')' {
		p.pos = save
		p.skipStatementOrDecl()
		return
	}
	p.pos++ // ')'
	p.skipTrivia()
	p.skipGNUAttrs()
	switch p.peek() {
	case '{':
		p.skipBalanced('{', '}')
	case ';':
		p.pos++
	default:
		p.pos = save
		p.skipStatementOrDecl()
		return
	}
	p.functions = append(p.functions, FunctionDecl{
		Name: name, ReturnType: ret, ParamTypes: params, Variadic: variadic,
	})
}

func (p *parser) parseParamList() ([]ctype.Kind, bool) {
	var params []ctype.Kind
	variadic := false
	p.skipTrivia()
	if p.peek() == ')' {
		return nil, false
	}
	for {
		p.skipTrivia()
		if p.hasPrefix("...") {
			p.pos += 3
			variadic = true
			p.skipTrivia()
			break
		}
		typ, ok := p.recognizeType()
		if !ok {
			// unrecognized parameter token: skip it and default to int,
			// preserving forward progress.
			if !p.atEnd() && p.peek() != ')' && p.peek() != ',' {
				p.pos++
			}
			typ = ctype.Int
		}
		p.skipTrivia()
		p.skipGNUAttrs()
		p.readIdent() // optional parameter name, discarded
		p.skipTrivia()
		for p.peek() == '[' {
			p.skipBalanced('[', ']')
			typ = ctype.Pointer // array parameter decays to pointer
			p.skipTrivia()
		}
		p.skipGNUAttrs()
		params = append(params, typ)
		p.skipTrivia()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if len(params) == 1 && params[0] == ctype.Void {
		params = nil
	}
	return params, variadic
}

// ---- generic recovery ----

// skipStatementOrDecl is the tolerant fallback for any top-level
// construct the recognizer does not understand: it scans forward,
// respecting nesting, until a top-level `;` (consumed) or a top-level
// `{...}` block (skipped, with an optional trailing `;`).
func (p *parser) skipStatementOrDecl() {
	depth := 0
	for !p.atEnd() {
		b := p.peek()
		switch {
		case b == '"' || b == '\'':
			p.skipQuoted(b)
			continue
		case p.hasPrefix("//"):
			for !p.atEnd() && p.peek() != '\n' {
				p.pos++
			}
			continue
		case p.hasPrefix("/*"):
			p.pos += 2
			for !p.atEnd() && !p.hasPrefix("*/") {
				p.pos++
			}
			if p.hasPrefix("*/") {
				p.pos += 2
			}
			continue
		case b == '(' || b == '[':
			depth++
		case b == ')' || b == ']':
			depth--
		case depth == 0 && b == '{':
			p.skipBalanced('{', '}')
			p.skipTrivia()
			if p.peek() == ';' {
				p.pos++
			}
			return
		case depth == 0 && b == ';':
			p.pos++
			return
		}
		p.pos++
	}
}
