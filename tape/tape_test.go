package tape_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt/tape"
)

func TestElementU8Payload(t *testing.T) {
	e := tape.NewWithU8(tape.KindByte, 0x7F)
	require.Equal(t, tape.KindByte, e.Kind())
	require.Equal(t, uint8(0x7F), e.U8())
}

func TestElementApproxLenAndOffsetPacking(t *testing.T) {
	// mirrors the reference packed-u64 layout: top byte cut off, next 24
	// bits the length, low 32 bits the offset.
	e := tape.NewWithApproxLenAndOffset(tape.KindCompound, 0x5678, 0x9abcdef0)
	length, offset := e.ApproxLenAndOffset()
	require.Equal(t, uint32(0x5678), length)
	require.Equal(t, uint32(0x9abcdef0), offset)
}

func TestApproxLenSaturates(t *testing.T) {
	e := tape.NewWithApproxLenAndOffset(tape.KindCompound, 0xFFFFFFFF, 0)
	length, _ := e.ApproxLenAndOffset()
	require.Equal(t, uint32(1<<24-1), length)
}

func TestSetOffsetBackPatch(t *testing.T) {
	e := tape.NewWithApproxLenAndOffset(tape.KindCompound, 3, 0)
	e.SetOffset(42)
	length, offset := e.ApproxLenAndOffset()
	require.Equal(t, uint32(3), length)
	require.Equal(t, uint32(42), offset)
}

func TestSkipOffsetForLongAndDouble(t *testing.T) {
	require.Equal(t, 2, tape.NewEmpty(tape.KindLong).SkipOffset())
	require.Equal(t, 2, tape.NewEmpty(tape.KindDouble).SkipOffset())
}

func TestSkipOffsetForScalar(t *testing.T) {
	require.Equal(t, 1, tape.NewWithU8(tape.KindByte, 1).SkipOffset())
}

func TestSkipOffsetForContainerUsesOffset(t *testing.T) {
	e := tape.NewWithApproxLenAndOffset(tape.KindListList, 2, 7)
	require.Equal(t, 7, e.SkipOffset())
}

func TestIsList(t *testing.T) {
	require.True(t, tape.KindIntList.IsList())
	require.True(t, tape.KindEmptyList.IsList())
	require.False(t, tape.KindInt.IsList())
}

func TestMainTapePushGetSet(t *testing.T) {
	mt := tape.NewMainTape()
	idx := mt.Push(tape.NewWithU32(tape.KindInt, 100))
	require.Equal(t, 0, idx)
	require.Equal(t, 1, mt.Len())
	require.Equal(t, uint32(100), mt.Get(0).U32())

	mt.Set(0, tape.NewWithU32(tape.KindInt, 200))
	require.Equal(t, uint32(200), mt.Get(0).U32())
}

func TestExtrasSlice(t *testing.T) {
	ex := tape.NewExtras()
	ex.Push(tape.ExtraEntry{Offset: 0, Length: 4})
	ex.Push(tape.ExtraEntry{Offset: 4, Length: 8})
	ex.Push(tape.ExtraEntry{Offset: 12, Length: 2})

	s := ex.Slice(1, 2)
	require.Len(t, s, 2)
	require.Equal(t, uint32(4), s[0].Offset)
	require.Equal(t, uint32(12), s[1].Offset)
}
