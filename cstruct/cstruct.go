// Package cstruct implements C struct descriptors and instances (spec.md
// §4.4, §4.8): field layout computed by natural alignment, zero-initialized
// instance allocation, and field read/write by name.
package cstruct

import (
	"fmt"

	"github.com/dobrosketchkun/brisk/ctype"
)

// Field describes one struct member: name, C type, and its computed byte
// offset/size. Nested is set for struct-typed fields.
type Field struct {
	Name   string
	Type   ctype.Kind
	Offset int
	Size   int
	Nested *Descriptor
}

// Descriptor is the runtime metadata for a C struct type (spec.md §4.4):
// name, ordered fields, computed total size and alignment.
type Descriptor struct {
	Name      string
	Fields    []Field
	Size      int
	Alignment int
	finalized bool
}

// NewDescriptor returns an unfinalized descriptor; call Finalize once all
// fields have been appended via AddField.
func NewDescriptor(name string) *Descriptor {
	return &Descriptor{Name: name}
}

// AddField appends a field in source order, type and (if nested) struct
// descriptor.
func (d *Descriptor) AddField(name string, typ ctype.Kind, nested *Descriptor) {
	size := typ.Size()
	if nested != nil {
		size = nested.Size
	}
	d.Fields = append(d.Fields, Field{Name: name, Type: typ, Size: size, Nested: nested})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func alignUp(offset, align int) int {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) / align * align
}

// Finalize computes each field's offset and the struct's total size and
// alignment, per spec.md §4.4: "align each field up to min(size_of_field,
// 8) before placing it; round the total size up to the struct's maximum
// field alignment."
func (d *Descriptor) Finalize() {
	offset := 0
	maxAlign := 1
	for i := range d.Fields {
		f := &d.Fields[i]
		align := min(f.Size, 8)
		if align == 0 {
			align = 1
		}
		offset = alignUp(offset, align)
		f.Offset = offset
		offset += f.Size
		if align > maxAlign {
			maxAlign = align
		}
	}
	d.Size = alignUp(offset, maxAlign)
	d.Alignment = maxAlign
	d.finalized = true
}

// Field looks up a field descriptor by name (linear scan, spec.md §4.8).
func (d *Descriptor) Field(name string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// Instance is a zero-initialized raw memory buffer laid out according to
// a Descriptor (spec.md §3, "CStruct").
type Instance struct {
	Descriptor *Descriptor
	Data       []byte
}

// Create allocates a zeroed instance of d (spec.md §4.8, cstruct_create).
func Create(d *Descriptor) *Instance {
	if !d.finalized {
		d.Finalize()
	}
	return &Instance{Descriptor: d, Data: make([]byte, d.Size)}
}

// Get returns the raw bytes backing field name.
func (in *Instance) Get(name string) ([]byte, *Field, error) {
	f, ok := in.Descriptor.Field(name)
	if !ok {
		return nil, nil, fmt.Errorf("no such field %q on struct %s", name, in.Descriptor.Name)
	}
	return in.Data[f.Offset : f.Offset+f.Size], f, nil
}

// Set overwrites field name's raw bytes with data, which must be exactly
// the field's size (spec.md §4.8, cstruct_set_field).
func (in *Instance) Set(name string, data []byte) (*Field, error) {
	f, ok := in.Descriptor.Field(name)
	if !ok {
		return nil, fmt.Errorf("no such field %q on struct %s", name, in.Descriptor.Name)
	}
	if len(data) != f.Size {
		return nil, fmt.Errorf("field %q is %d bytes, got %d", name, f.Size, len(data))
	}
	copy(in.Data[f.Offset:f.Offset+f.Size], data)
	return f, nil
}
