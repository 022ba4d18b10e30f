package interp

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/dobrosketchkun/brisk/cfunc"
	"github.com/dobrosketchkun/brisk/ctype"
	"github.com/dobrosketchkun/brisk/internal/ffi"
)

// ffiSlotSize is the per-argument/result buffer size (spec.md §4.6 step
// 3 and §9: "16 bytes per argument regardless of type; this is sound for
// every declared scalar and pointer").
const ffiSlotSize = 16

// callCFunction implements the FFI bridge's call contract (spec.md §4.6).
func (ev *Evaluator) callCFunction(cf *CFunctionObj, args []Value) (Value, error) {
	d := cf.Descriptor
	if err := ev.prepareCIF(d); err != nil {
		return Nil(), err
	}

	declared := len(d.ParamTypes)
	if d.Variadic {
		if len(args) < declared {
			return Nil(), fmt.Errorf("%s: expected at least %d arguments, got %d", d.Name, declared, len(args))
		}
	} else if len(args) != declared {
		return Nil(), fmt.Errorf("%s: expected %d arguments, got %d", d.Name, declared, len(args))
	}

	argSlots := make([][]byte, len(args))
	for i, v := range args {
		typ := ev.argTypeFor(d, i, v)
		slot := make([]byte, ffiSlotSize)
		if err := marshalToC(v, typ, slot); err != nil {
			return Nil(), fmt.Errorf("%s: argument %d: %w", d.Name, i, err)
		}
		argSlots[i] = slot
	}

	resultSlot := make([]byte, ffiSlotSize)
	cif := d.CIF.(*ffi.CIF)
	if err := cif.Call(d.Addr, argSlots, resultSlot); err != nil {
		return Nil(), fmt.Errorf("%s: %w", d.Name, err)
	}

	return ev.marshalFromC(resultSlot, d.ReturnType), nil
}

func (ev *Evaluator) prepareCIF(d *cfunc.Descriptor) error {
	if d.Prepared {
		return nil
	}
	var cif *ffi.CIF
	var err error
	if d.Variadic {
		// spec.md §4.6 step 1's sanctioned simplification: prepare once
		// with fixed=declared, total=declared.
		cif, err = ffi.PrepareVariadic(d.ReturnType, d.ParamTypes, len(d.ParamTypes), len(d.ParamTypes))
	} else {
		cif, err = ffi.Prepare(d.ReturnType, d.ParamTypes)
	}
	if err != nil {
		return fmt.Errorf("%s: FFI preparation failed: %w", d.Name, err)
	}
	d.CIF = cif
	d.Prepared = true
	return nil
}

// argTypeFor determines an argument's target C type: the declared
// parameter type if within the declared list, otherwise a type inferred
// from the Brisk value (spec.md §4.6 step 4).
func (ev *Evaluator) argTypeFor(d *cfunc.Descriptor, i int, v Value) ctype.Kind {
	if i < len(d.ParamTypes) {
		return d.ParamTypes[i]
	}
	switch v.Kind {
	case KindInt:
		return ctype.Int
	case KindFloat:
		return ctype.Double
	case KindObj:
		switch v.Obj.Kind {
		case ObjString:
			return ctype.CString
		case ObjPointer:
			return ctype.Pointer
		}
	}
	return ctype.Int
}

// marshalToC implements spec.md §4.6 step 5.
func marshalToC(v Value, typ ctype.Kind, slot []byte) error {
	switch {
	case v.Kind == KindNil && typ.IsPointerLike():
		binary.LittleEndian.PutUint64(slot, 0)
		return nil
	case v.Kind == KindInt && typ.IsInteger():
		putInt(slot, v.I, typ)
		return nil
	case v.Kind == KindInt && typ.IsPointerLike():
		// "reinterpret the integer as an address", spec.md §4.6 step 5.
		binary.LittleEndian.PutUint64(slot, uint64(v.I))
		return nil
	case v.Kind == KindBool && typ == ctype.Bool:
		if v.B {
			slot[0] = 1
		}
		return nil
	case (v.Kind == KindFloat || v.Kind == KindInt) && typ == ctype.Float:
		binary.LittleEndian.PutUint32(slot, math.Float32bits(float32(v.AsFloat())))
		return nil
	case (v.Kind == KindFloat || v.Kind == KindInt) && typ == ctype.Double:
		binary.LittleEndian.PutUint64(slot, math.Float64bits(v.AsFloat()))
		return nil
	case v.IsObj(ObjString) && typ == ctype.CString:
		buf := append([]byte(v.Obj.Str.Value), 0)
		binary.LittleEndian.PutUint64(slot, uint64(uintptr(unsafe.Pointer(&buf[0]))))
		return nil
	case v.IsObj(ObjPointer) && typ.IsPointerLike():
		binary.LittleEndian.PutUint64(slot, uint64(v.Obj.Ptr.Addr))
		return nil
	case v.IsObj(ObjCStruct) && typ == ctype.Struct:
		binary.LittleEndian.PutUint64(slot, uint64(v.Obj.CStr.Addr()))
		return nil
	}
	return fmt.Errorf("cannot marshal a %s as C %s", describe(v), typ)
}

func putInt(slot []byte, i int64, typ ctype.Kind) {
	switch typ.Size() {
	case 1:
		slot[0] = byte(i)
	case 2:
		binary.LittleEndian.PutUint16(slot, uint16(i))
	case 4:
		binary.LittleEndian.PutUint32(slot, uint32(i))
	default:
		binary.LittleEndian.PutUint64(slot, uint64(i))
	}
}

// marshalFromC implements spec.md §4.6 step 7.
func (ev *Evaluator) marshalFromC(slot []byte, typ ctype.Kind) Value {
	switch {
	case typ == ctype.Void:
		return Nil()
	case typ == ctype.Bool:
		return Bool(slot[0] != 0)
	case typ == ctype.Float:
		return Float(float64(math.Float32frombits(binary.LittleEndian.Uint32(slot))))
	case typ == ctype.Double:
		return Float(math.Float64frombits(binary.LittleEndian.Uint64(slot)))
	case typ == ctype.CString:
		addr := uintptr(binary.LittleEndian.Uint64(slot))
		if addr == 0 {
			return Nil()
		}
		return ev.Heap.Intern(goStringFromCString(addr))
	case typ.IsPointerLike():
		addr := uintptr(binary.LittleEndian.Uint64(slot))
		if addr == 0 {
			return Nil()
		}
		return ev.Heap.NewPointer(addr, typ.String())
	case typ.IsInteger():
		return Int(readInt(slot, typ))
	default:
		return Int(readInt(slot, typ))
	}
}

// readInt sign- or zero-extends the slot's leading typ.Size() bytes,
// per spec.md §4.6 step 7 ("sign-extending for signed kinds").
//
// Unsigned 64-bit results are reinterpreted as signed (two's complement),
// so values above INT64_MAX come back as negative Brisk Ints: Value has no
// unsigned-integer kind (spec.md §3 only defines a signed 64-bit Int).
func readInt(slot []byte, typ ctype.Kind) int64 {
	switch typ.Size() {
	case 1:
		if typ.IsSigned() {
			return int64(int8(slot[0]))
		}
		return int64(slot[0])
	case 2:
		v := binary.LittleEndian.Uint16(slot)
		if typ.IsSigned() {
			return int64(int16(v))
		}
		return int64(v)
	case 4:
		v := binary.LittleEndian.Uint32(slot)
		if typ.IsSigned() {
			return int64(int32(v))
		}
		return int64(v)
	default:
		v := binary.LittleEndian.Uint64(slot)
		return int64(v)
	}
}
