package symtab

import "fmt"

// StructDef holds a struct/union's field layout, size, and alignment,
// computed once at definition time. Grounded on lang/yparse/symtab.go's
// DefineStruct.
type StructDef struct {
	Name   string
	Fields []FieldDef
	Size   int
	Align  int
}

// FieldDef is one field of a struct/union definition.
type FieldDef struct {
	Name     string
	Type     *Type
	ArrayLen int
	Offset   int
}

// Table is the symbol table the validator fills from top-level
// struct/union declarations and consults for sizeof(type). It is
// intentionally minimal: spec.md §1 scopes a full type-checker out, and
// this exists only to answer "how big is this type" and "is this name a
// struct".
type Table struct {
	Structs map[string]*StructDef
	Unions  map[string]*StructDef
}

// New creates an empty symbol table.
func New() *Table {
	return &Table{
		Structs: make(map[string]*StructDef),
		Unions:  make(map[string]*StructDef),
	}
}

// DefineStruct computes field offsets, size and alignment for a struct
// and registers it. Re-definition of an existing name is an error.
func (t *Table) DefineStruct(name string, fields []FieldDef) (*StructDef, error) {
	return defineAggregate(t.Structs, name, fields)
}

// DefineUnion computes the layout for a union: every field starts at
// offset 0, and the union's size is its largest field (rounded up to
// its alignment), matching standard C union layout.
func (t *Table) DefineUnion(name string, fields []FieldDef) (*StructDef, error) {
	if _, exists := t.Unions[name]; exists {
		return nil, fmt.Errorf("redefinition of union '%s'", name)
	}
	def := &StructDef{Name: name, Fields: make([]FieldDef, len(fields)), Align: 1}
	size := 0
	for i, f := range fields {
		align := f.Type.Alignment(t.Structs)
		if align > def.Align {
			def.Align = align
		}
		fieldSize := f.Type.Size(t.Structs)
		if f.ArrayLen > 0 {
			fieldSize *= f.ArrayLen
		}
		if fieldSize > size {
			size = fieldSize
		}
		def.Fields[i] = FieldDef{Name: f.Name, Type: f.Type, ArrayLen: f.ArrayLen, Offset: 0}
	}
	def.Size = alignUp(size, def.Align)
	t.Unions[name] = def
	return def, nil
}

func defineAggregate(into map[string]*StructDef, name string, fields []FieldDef) (*StructDef, error) {
	if _, exists := into[name]; exists {
		return nil, fmt.Errorf("redefinition of struct '%s'", name)
	}
	def := &StructDef{Name: name, Fields: make([]FieldDef, len(fields)), Align: 1}
	offset := 0
	for i, f := range fields {
		align := f.Type.Alignment(into)
		if align > def.Align {
			def.Align = align
		}
		offset = alignUp(offset, align)
		def.Fields[i] = FieldDef{Name: f.Name, Type: f.Type, ArrayLen: f.ArrayLen, Offset: offset}
		size := f.Type.Size(into)
		if f.ArrayLen > 0 {
			size *= f.ArrayLen
		}
		offset += size
	}
	def.Size = alignUp(offset, def.Align)
	into[name] = def
	return def, nil
}

// LookupStruct looks up a struct definition by name.
func (t *Table) LookupStruct(name string) (*StructDef, bool) {
	def, ok := t.Structs[name]
	return def, ok
}

// LookupUnion looks up a union definition by name.
func (t *Table) LookupUnion(name string) (*StructDef, bool) {
	def, ok := t.Unions[name]
	return def, ok
}

// SizeofType returns sizeof(typ) using this table's struct/union
// definitions to resolve named aggregate types, or -1 if the size
// cannot be determined (e.g. an undefined struct name).
func (t *Table) SizeofType(typ *Type) int {
	if typ != nil && typ.Kind == TypeStruct {
		if def, ok := t.Unions[typ.StructName]; ok {
			if _, isStruct := t.Structs[typ.StructName]; !isStruct {
				return def.Size
			}
		}
	}
	return typ.Size(t.Structs)
}

func alignUp(n, align int) int {
	if align <= 0 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}
