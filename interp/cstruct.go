package interp

import (
	"fmt"

	"github.com/dobrosketchkun/brisk/cstruct"
)

// CStructObj wraps a struct descriptor and a freshly allocated,
// zero-initialized raw memory buffer (spec.md §3, "CStruct"; §4.8).
type CStructObj struct {
	Descriptor *cstruct.Descriptor
	Data       []byte
	instance   *cstruct.Instance
}

// Addr returns the address of the struct's raw data, for `&struct`
// (spec.md §4.3.2, "Address-of").
func (c *CStructObj) Addr() uintptr {
	if len(c.Data) == 0 {
		return 0
	}
	return dataAddr(c.Data)
}

// NewCStruct allocates a zeroed instance of d (spec.md §4.8,
// cstruct_create).
func (h *Heap) NewCStruct(d *cstruct.Descriptor) Value {
	inst := cstruct.Create(d)
	o := newObj(h, ObjCStruct, int64(len(inst.Data)))
	o.CStr = &CStructObj{Descriptor: inst.Descriptor, Data: inst.Data, instance: inst}
	return objValue(o)
}

// GetField locates field name by linear scan and marshals its raw bytes
// into a Brisk value (spec.md §4.8, cstruct_get_field).
func (c *CStructObj) GetField(ev *Evaluator, name string) (Value, error) {
	data, f, err := c.instance.Get(name)
	if err != nil {
		return Value{}, err
	}
	return ev.marshalFromC(data, f.Type), nil
}

// SetField marshals v to C per field name's declared type and writes the
// result into the struct's backing buffer at the field's offset (spec.md
// §4.8, cstruct_set_field).
func (c *CStructObj) SetField(name string, v Value) error {
	f, ok := c.Descriptor.Field(name)
	if !ok {
		return fmt.Errorf("no such field %q on struct %s", name, c.Descriptor.Name)
	}
	buf := make([]byte, f.Size)
	if err := marshalToC(v, f.Type, buf); err != nil {
		return err
	}
	_, err := c.instance.Set(name, buf)
	return err
}
