package nbt_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt"
)

func TestHelloWorld(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "hello world")
	buf.WriteByte(0x08) // TAG_String child
	writeMutf8(&buf, "name")
	writeMutf8(&buf, "Bananrama")
	buf.WriteByte(0x00) // TAG_End

	doc, err := nbt.Read(buf.Bytes())
	require.NoError(t, err)
	require.True(t, doc.IsSome())

	base := doc.Unwrap()
	require.Equal(t, "hello world", base.Name().String())

	s, ok := base.Compound().Str("name")
	require.True(t, ok)
	require.Equal(t, "Bananrama", s.String())
}

func TestListOfInts(t *testing.T) {
	const n = 1023
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	buf.WriteByte(0x09) // TAG_List child
	writeMutf8(&buf, "")
	buf.WriteByte(0x03) // element type: Int
	binary.Write(&buf, binary.BigEndian, int32(n))
	for i := int32(0); i < n; i++ {
		binary.Write(&buf, binary.BigEndian, i)
	}
	buf.WriteByte(0x00) // TAG_End

	doc, err := nbt.Read(buf.Bytes())
	require.NoError(t, err)
	require.True(t, doc.IsSome())

	list, ok := doc.Unwrap().Compound().ListField("")
	require.True(t, ok)
	require.Equal(t, n, list.Len())

	ints, ok := list.IntList()
	require.True(t, ok)
	require.Equal(t, n, ints.Len())
	native := ints.ToNativeVec()
	for i := int32(0); i < n; i++ {
		require.Equal(t, i, native[i])
	}
}

func TestCompoundEOF(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x0A, 0x00, 0x00}
	_, err := nbt.Read(data)
	require.ErrorIs(t, err, nbt.ErrUnexpectedEOF)
}

func TestNullRoot(t *testing.T) {
	doc, err := nbt.Read([]byte{0x00})
	require.NoError(t, err)
	require.True(t, doc.IsNone())
}

func TestInvalidRootType(t *testing.T) {
	_, err := nbt.Read([]byte{0x01, 0x00})
	var target *nbt.InvalidRootTypeError
	require.ErrorAs(t, err, &target)
	require.Equal(t, byte(1), target.ID)
}

func TestUnknownTagID(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	buf.WriteByte(0xFE) // not a known tag id
	writeMutf8(&buf, "weird")

	_, err := nbt.Read(buf.Bytes())
	var target *nbt.UnknownTagIDError
	require.ErrorAs(t, err, &target)
	require.Equal(t, byte(0xFE), target.ID)
}

func TestMaxDepthBoundary(t *testing.T) {
	_, err := nbt.Read(nestedCompoundBytes(512))
	require.NoError(t, err)

	_, err = nbt.ReadOptions(nestedCompoundBytes(513), nbt.DefaultOptions())
	var target *nbt.MaxDepthExceededError
	require.ErrorAs(t, err, &target)
}

func TestReadUnnamed(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	buf.WriteByte(0x01) // TAG_Byte child
	writeMutf8(&buf, "b")
	buf.WriteByte(42)
	buf.WriteByte(0x00)

	doc, err := nbt.ReadUnnamed(buf.Bytes())
	require.NoError(t, err)
	require.True(t, doc.IsSome())

	v, ok := doc.Unwrap().Compound().Byte("b")
	require.True(t, ok)
	require.Equal(t, int8(42), v)
}

// writeMutf8 appends an NBT string field (u16 big-endian byte length
// followed by the bytes themselves) for ASCII-only input.
func writeMutf8(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

// nestedCompoundBytes builds a document whose root compound contains a
// single named compound child, which itself contains a single named
// compound child, and so on, to exactly totalFrames levels deep
// (including the root), closing every level in turn.
func nestedCompoundBytes(totalFrames int) []byte {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	for i := 1; i < totalFrames; i++ {
		buf.WriteByte(0x0A)
		writeMutf8(&buf, "")
	}
	for i := 0; i < totalFrames; i++ {
		buf.WriteByte(0x00)
	}
	return buf.Bytes()
}
