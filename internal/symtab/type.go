// Package symtab provides the minimal symbol-table and type-size
// machinery the constant folder needs for sizeof-over-type (spec.md
// §4.6). It is deliberately not a full type checker: spec.md §1 scopes
// that out, and only operand-size lookup is specified here. Grounded on
// the teacher's lang/yparse/types.go and symtab.go.
package symtab

import "fmt"

// TypeKind is the kind of a Type value.
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypeVoid
	TypeBase
	TypePointer
	TypeArray
	TypeStruct
)

// BaseKind enumerates the built-in scalar base types the language's type
// keywords can name.
type BaseKind int

const (
	BaseInvalid BaseKind = iota
	BaseChar
	BaseShort
	BaseInt
	BaseLong
	BaseFloat
	BaseDouble
	BaseUnsignedChar
	BaseUnsignedShort
	BaseUnsignedInt
	BaseUnsignedLong
)

// Type describes a C-like type: a scalar base type, a pointer, an array,
// or a named struct/union.
type Type struct {
	Kind       TypeKind
	Base       BaseKind
	Pointee    *Type  // when Kind == TypePointer
	ElemType   *Type  // when Kind == TypeArray
	ArrayLen   int    // when Kind == TypeArray
	StructName string // when Kind == TypeStruct
}

// Well-known scalar types, shared to avoid re-allocating on every lookup.
var (
	Void          = &Type{Kind: TypeVoid}
	Char          = &Type{Kind: TypeBase, Base: BaseChar}
	Short         = &Type{Kind: TypeBase, Base: BaseShort}
	Int           = &Type{Kind: TypeBase, Base: BaseInt}
	Long          = &Type{Kind: TypeBase, Base: BaseLong}
	Float         = &Type{Kind: TypeBase, Base: BaseFloat}
	Double        = &Type{Kind: TypeBase, Base: BaseDouble}
	UnsignedChar  = &Type{Kind: TypeBase, Base: BaseUnsignedChar}
	UnsignedShort = &Type{Kind: TypeBase, Base: BaseUnsignedShort}
	UnsignedInt   = &Type{Kind: TypeBase, Base: BaseUnsignedInt}
	UnsignedLong  = &Type{Kind: TypeBase, Base: BaseUnsignedLong}
	CharPointer   = &Type{Kind: TypePointer, Pointee: Char}
)

// SizeofLiteralKind returns the sizeof of the implementation's literal
// kinds, per spec.md §4.6's unary-sizeof-over-expression rule: integer
// -> int, float -> double, char -> char, string -> char pointer.
func SizeofLiteralKind(kind LiteralKind) int {
	switch kind {
	case LiteralInt:
		return Int.Size(nil)
	case LiteralFloat:
		return Double.Size(nil)
	case LiteralChar:
		return Char.Size(nil)
	case LiteralString:
		return CharPointer.Size(nil)
	default:
		return -1
	}
}

// LiteralKind distinguishes the literal kinds sizeof(expr) must
// recognize, independent of the folder's own LitKind to keep this
// package free of an ast import.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralChar
	LiteralString
)

// NewPointer constructs a pointer-to-pointee type.
func NewPointer(pointee *Type) *Type {
	return &Type{Kind: TypePointer, Pointee: pointee}
}

// NewArray constructs a fixed-length array type.
func NewArray(elem *Type, length int) *Type {
	return &Type{Kind: TypeArray, ElemType: elem, ArrayLen: length}
}

// NewStruct constructs a reference to a named struct/union type; the
// actual layout is looked up in Table.Structs at Size/Alignment time.
func NewStruct(name string) *Type {
	return &Type{Kind: TypeStruct, StructName: name}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeVoid:
		return "void"
	case TypeBase:
		return t.Base.String()
	case TypePointer:
		return t.Pointee.String() + "*"
	case TypeArray:
		return fmt.Sprintf("%s[%d]", t.ElemType.String(), t.ArrayLen)
	case TypeStruct:
		return t.StructName
	default:
		return "<invalid>"
	}
}

func (b BaseKind) String() string {
	switch b {
	case BaseChar:
		return "char"
	case BaseShort:
		return "short"
	case BaseInt:
		return "int"
	case BaseLong:
		return "long"
	case BaseFloat:
		return "float"
	case BaseDouble:
		return "double"
	case BaseUnsignedChar:
		return "unsigned char"
	case BaseUnsignedShort:
		return "unsigned short"
	case BaseUnsignedInt:
		return "unsigned int"
	case BaseUnsignedLong:
		return "unsigned long"
	default:
		return "<invalid>"
	}
}

// Size returns the ABI size in bytes of a base type.
func (b BaseKind) Size() int {
	switch b {
	case BaseChar, BaseUnsignedChar:
		return 1
	case BaseShort, BaseUnsignedShort:
		return 2
	case BaseInt, BaseUnsignedInt, BaseFloat:
		return 4
	case BaseLong, BaseUnsignedLong, BaseDouble:
		return 8
	default:
		return -1
	}
}

// Alignment returns the alignment requirement in bytes of a base type;
// on this ABI, scalars are self-aligned.
func (b BaseKind) Alignment() int {
	return b.Size()
}

// Size returns the size in bytes of t, given the struct table needed to
// resolve named struct/union types. Returns -1 if the size cannot be
// determined (e.g. an unknown struct name).
func (t *Type) Size(structs map[string]*StructDef) int {
	if t == nil {
		return -1
	}
	switch t.Kind {
	case TypeVoid:
		return 0
	case TypeBase:
		return t.Base.Size()
	case TypePointer:
		return 8 // pointer-sized on this target
	case TypeArray:
		elemSize := t.ElemType.Size(structs)
		if elemSize < 0 {
			return -1
		}
		return elemSize * t.ArrayLen
	case TypeStruct:
		if def, ok := structs[t.StructName]; ok {
			return def.Size
		}
		return -1
	default:
		return -1
	}
}

// Alignment returns the alignment requirement in bytes of t.
func (t *Type) Alignment(structs map[string]*StructDef) int {
	if t == nil {
		return 1
	}
	switch t.Kind {
	case TypeVoid:
		return 1
	case TypeBase:
		return t.Base.Alignment()
	case TypePointer:
		return 8
	case TypeArray:
		return t.ElemType.Alignment(structs)
	case TypeStruct:
		if def, ok := structs[t.StructName]; ok {
			return def.Align
		}
		return 8
	default:
		return 1
	}
}

// IsIntegral reports whether t is one of the integral base types.
func (t *Type) IsIntegral() bool {
	if t == nil || t.Kind != TypeBase {
		return false
	}
	switch t.Base {
	case BaseChar, BaseShort, BaseInt, BaseLong,
		BaseUnsignedChar, BaseUnsignedShort, BaseUnsignedInt, BaseUnsignedLong:
		return true
	default:
		return false
	}
}

// IsFloating reports whether t is float or double.
func (t *Type) IsFloating() bool {
	return t != nil && t.Kind == TypeBase && (t.Base == BaseFloat || t.Base == BaseDouble)
}
