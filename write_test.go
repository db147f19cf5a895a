package nbt_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt"
)

func TestWriteRoundTripsHelloWorld(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "hello world")
	buf.WriteByte(0x08)
	writeMutf8(&buf, "name")
	writeMutf8(&buf, "Bananrama")
	buf.WriteByte(0x00)
	original := buf.Bytes()

	doc, err := nbt.Read(original)
	require.NoError(t, err)
	require.Equal(t, original, doc.Write())
}

func TestWriteRoundTripsListOfInts(t *testing.T) {
	const n = 1023
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	buf.WriteByte(0x09)
	writeMutf8(&buf, "ints")
	buf.WriteByte(0x03)
	binary.Write(&buf, binary.BigEndian, int32(n))
	for i := int32(0); i < n; i++ {
		binary.Write(&buf, binary.BigEndian, i)
	}
	buf.WriteByte(0x00)
	original := buf.Bytes()

	doc, err := nbt.Read(original)
	require.NoError(t, err)
	require.Equal(t, original, doc.Write())
}

func TestWriteRoundTripsMixedCompound(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "root")

	buf.WriteByte(0x01) // Byte
	writeMutf8(&buf, "b")
	buf.WriteByte(7)

	buf.WriteByte(0x04) // Long
	writeMutf8(&buf, "l")
	binary.Write(&buf, binary.BigEndian, int64(-1234567890123))

	buf.WriteByte(0x06) // Double
	writeMutf8(&buf, "d")
	binary.Write(&buf, binary.BigEndian, 3.14159265358979)

	buf.WriteByte(0x07) // ByteArray
	writeMutf8(&buf, "ba")
	binary.Write(&buf, binary.BigEndian, int32(3))
	buf.Write([]byte{1, 2, 3})

	buf.WriteByte(0x0B) // IntArray
	writeMutf8(&buf, "ia")
	binary.Write(&buf, binary.BigEndian, int32(2))
	binary.Write(&buf, binary.BigEndian, int32(100))
	binary.Write(&buf, binary.BigEndian, int32(-100))

	buf.WriteByte(0x0C) // LongArray
	writeMutf8(&buf, "la")
	binary.Write(&buf, binary.BigEndian, int32(1))
	binary.Write(&buf, binary.BigEndian, int64(42))

	buf.WriteByte(0x09) // List of String
	writeMutf8(&buf, "strs")
	buf.WriteByte(0x08)
	binary.Write(&buf, binary.BigEndian, int32(2))
	writeMutf8(&buf, "alpha")
	writeMutf8(&buf, "beta")

	buf.WriteByte(0x09) // List of Compound
	writeMutf8(&buf, "nested")
	buf.WriteByte(0x0A)
	binary.Write(&buf, binary.BigEndian, int32(2))
	// first compound: one byte field
	buf.WriteByte(0x01)
	writeMutf8(&buf, "x")
	buf.WriteByte(1)
	buf.WriteByte(0x00)
	// second compound: empty
	buf.WriteByte(0x00)

	buf.WriteByte(0x00) // end root

	original := buf.Bytes()

	doc, err := nbt.Read(original)
	require.NoError(t, err)
	require.Equal(t, original, doc.Write())
}

func TestWriteRoundTripsNullRoot(t *testing.T) {
	original := []byte{0x00}
	doc, err := nbt.Read(original)
	require.NoError(t, err)
	require.Equal(t, original, doc.Write())
}

func TestWriteToMatchesWrite(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	buf.WriteByte(0x00)
	original := buf.Bytes()

	doc, err := nbt.Read(original)
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := doc.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(len(original)), n)
	require.Equal(t, doc.Write(), out.Bytes())
}
