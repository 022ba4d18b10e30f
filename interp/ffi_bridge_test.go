package interp

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobrosketchkun/brisk/ctype"
)

func TestMarshalToC_IntWritesLittleEndian(t *testing.T) {
	slot := make([]byte, ffiSlotSize)
	require.NoError(t, marshalToC(Int(42), ctype.Int, slot))
	assert.Equal(t, uint32(42), binary.LittleEndian.Uint32(slot))
}

func TestMarshalToC_DoubleWritesBits(t *testing.T) {
	slot := make([]byte, ffiSlotSize)
	require.NoError(t, marshalToC(Float(3.5), ctype.Double, slot))
	assert.Equal(t, 3.5, math.Float64frombits(binary.LittleEndian.Uint64(slot)))
}

func TestMarshalToC_BoolWritesOneByte(t *testing.T) {
	slot := make([]byte, ffiSlotSize)
	require.NoError(t, marshalToC(Bool(true), ctype.Bool, slot))
	assert.Equal(t, byte(1), slot[0])
}

func TestMarshalToC_NilAsPointerIsNull(t *testing.T) {
	slot := make([]byte, ffiSlotSize)
	require.NoError(t, marshalToC(Nil(), ctype.Pointer, slot))
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(slot))
}

func TestMarshalToC_IntReinterpretedAsPointer(t *testing.T) {
	slot := make([]byte, ffiSlotSize)
	require.NoError(t, marshalToC(Int(0x1000), ctype.Pointer, slot))
	assert.Equal(t, uint64(0x1000), binary.LittleEndian.Uint64(slot))
}

func TestMarshalToC_UnsupportedCombinationErrors(t *testing.T) {
	slot := make([]byte, ffiSlotSize)
	err := marshalToC(Bool(true), ctype.CString, slot)
	assert.Error(t, err)
}

func TestMarshalFromC_DoubleReadsBits(t *testing.T) {
	ev := NewEvaluator()
	slot := make([]byte, ffiSlotSize)
	binary.LittleEndian.PutUint64(slot, math.Float64bits(4.0))
	v := ev.marshalFromC(slot, ctype.Double)
	assert.Equal(t, KindFloat, v.Kind)
	assert.Equal(t, 4.0, v.F)
}

func TestMarshalFromC_SignedIntSignExtends(t *testing.T) {
	ev := NewEvaluator()
	slot := make([]byte, ffiSlotSize)
	slot[0] = 0xFF // -1 as int8
	v := ev.marshalFromC(slot, ctype.Char)
	assert.Equal(t, int64(-1), v.I)
}

func TestMarshalFromC_UnsignedByteZeroExtends(t *testing.T) {
	ev := NewEvaluator()
	slot := make([]byte, ffiSlotSize)
	slot[0] = 0xFF
	v := ev.marshalFromC(slot, ctype.UChar)
	assert.Equal(t, int64(255), v.I)
}

func TestMarshalFromC_NullPointerIsNil(t *testing.T) {
	ev := NewEvaluator()
	slot := make([]byte, ffiSlotSize)
	v := ev.marshalFromC(slot, ctype.Pointer)
	assert.True(t, v.IsNil())
}

func TestMarshalFromC_Void(t *testing.T) {
	ev := NewEvaluator()
	v := ev.marshalFromC(make([]byte, ffiSlotSize), ctype.Void)
	assert.True(t, v.IsNil())
}
