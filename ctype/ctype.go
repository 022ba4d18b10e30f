// Package ctype enumerates the C scalar/pointer kinds Brisk's FFI layer
// understands (spec.md §4.4), with their byte sizes.
//
// Style grounded on nevermosby-ebpf/types.go's enumeration-plus-comment
// idiom (an exhaustive const block naming every kind the surrounding
// system recognizes, each with a short one-line doc comment).
package ctype

// Kind is one of the C scalar/pointer kinds spec.md §4.4 requires.
type Kind int

const (
	Void Kind = iota
	Char
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
	Float
	Double
	Bool
	SizeT
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Pointer // generic void*
	CString // char* (NUL-terminated string), elevated per spec.md §4.7
	Struct  // opaque struct, marshaled as pointer-to-struct by default
)

var names = map[Kind]string{
	Void: "void", Char: "char", UChar: "unsigned char", Short: "short",
	UShort: "unsigned short", Int: "int", UInt: "unsigned int", Long: "long",
	ULong: "unsigned long", LongLong: "long long", ULongLong: "unsigned long long",
	Float: "float", Double: "double", Bool: "bool", SizeT: "size_t",
	Int8: "int8_t", Int16: "int16_t", Int32: "int32_t", Int64: "int64_t",
	UInt8: "uint8_t", UInt16: "uint16_t", UInt32: "uint32_t", UInt64: "uint64_t",
	Pointer: "pointer", CString: "char*", Struct: "struct",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// sizes gives each kind's fixed byte size on the target (pointers 8,
// size_t 8) per spec.md §4.4.
var sizes = map[Kind]int{
	Void: 0, Char: 1, UChar: 1, Short: 2, UShort: 2, Int: 4, UInt: 4,
	Long: 8, ULong: 8, LongLong: 8, ULongLong: 8, Float: 4, Double: 8,
	Bool: 1, SizeT: 8, Int8: 1, Int16: 2, Int32: 4, Int64: 8,
	UInt8: 1, UInt16: 2, UInt32: 4, UInt64: 8,
	Pointer: 8, CString: 8, Struct: 8, // struct passed by pointer (spec.md §4.4)
}

// Size returns k's fixed byte size.
func (k Kind) Size() int { return sizes[k] }

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool {
	switch k {
	case Char, Short, Int, Long, LongLong, Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool {
	switch k {
	case UChar, UShort, UInt, ULong, ULongLong, UInt8, UInt16, UInt32, UInt64, SizeT, Bool:
		return true
	}
	return false
}

// IsInteger reports whether k is any integer kind (signed or unsigned).
func (k Kind) IsInteger() bool { return k.IsSigned() || k.IsUnsigned() }

// IsFloat reports whether k is float or double.
func (k Kind) IsFloat() bool { return k == Float || k == Double }

// IsPointerLike reports whether k marshals as an address.
func (k Kind) IsPointerLike() bool { return k == Pointer || k == CString || k == Struct }

// FromName maps a recognized C type-name token to a Kind, used by the
// header parser's type recognizer (spec.md §4.7). Unknown names are the
// caller's responsibility (typedef lookup, then default to Int).
var byName = map[string]Kind{
	"void": Void, "char": Char, "short": Short, "int": Int, "long": Long,
	"float": Float, "double": Double, "bool": Bool, "_Bool": Bool,
	"size_t": SizeT,
	"int8_t": Int8, "int16_t": Int16, "int32_t": Int32, "int64_t": Int64,
	"uint8_t": UInt8, "uint16_t": UInt16, "uint32_t": UInt32, "uint64_t": UInt64,
}

// FromName looks up a bare (unsigned/signed-stripped) base type name.
func FromName(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}
