package nbt_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt"
)

func TestReadValidateAcceptsHelloWorld(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "hello world")
	buf.WriteByte(0x08)
	writeMutf8(&buf, "name")
	writeMutf8(&buf, "Bananrama")
	buf.WriteByte(0x00)

	require.NoError(t, nbt.ReadValidate(buf.Bytes()))
}

func TestReadValidateRejectsTruncation(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x0A, 0x00, 0x00}
	require.ErrorIs(t, nbt.ReadValidate(data), nbt.ErrUnexpectedEOF)
}

func TestReadValidateRejectsUnknownTagID(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	buf.WriteByte(0xFE)
	writeMutf8(&buf, "weird")

	var target *nbt.UnknownTagIDError
	require.ErrorAs(t, nbt.ReadValidate(buf.Bytes()), &target)
}

func TestReadValidateAcceptsNullRoot(t *testing.T) {
	require.NoError(t, nbt.ReadValidate([]byte{0x00}))
}

func TestReadValidateMaxDepth(t *testing.T) {
	require.NoError(t, nbt.ReadValidate(nestedCompoundBytes(512)))

	var target *nbt.MaxDepthExceededError
	require.ErrorAs(t, nbt.ReadValidate(nestedCompoundBytes(513)), &target)
}

func TestReadTagValidateByte(t *testing.T) {
	require.NoError(t, nbt.ReadTagValidate([]byte{7}, 1))
}

func TestReadTagValidateIntArray(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, int32(3))
	binary.Write(&buf, binary.BigEndian, int32(1))
	binary.Write(&buf, binary.BigEndian, int32(2))
	binary.Write(&buf, binary.BigEndian, int32(3))

	require.NoError(t, nbt.ReadTagValidate(buf.Bytes(), 11))
}

func TestReadOptionalTagValidateAcceptsEnd(t *testing.T) {
	require.NoError(t, nbt.ReadOptionalTagValidate(nil, 0))
}

func TestReadCompoundValidate(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x01) // TAG_Byte child
	writeMutf8(&buf, "b")
	buf.WriteByte(9)
	buf.WriteByte(0x00) // TAG_End

	require.NoError(t, nbt.ReadCompoundValidate(buf.Bytes()))
}
