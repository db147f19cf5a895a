package reader_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt/internal/reader"
)

func TestReadPrimitives(t *testing.T) {
	data := []byte{
		0x01,             // u8
		0x12, 0x34,       // u16
		0x00, 0x00, 0x01, 0x00, // u32
		0, 0, 0, 0, 0, 0, 0, 42, // u64
	}
	r := reader.New(data)

	u8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, byte(1), u8)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(256), u32)

	u64, err := r.ReadU64()
	require.NoError(t, err)
	require.Equal(t, uint64(42), u64)

	require.Equal(t, 0, r.Remaining())
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := reader.New([]byte{0xAB, 0xCD})
	b, err := r.PeekU8()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b)

	b2, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, b, b2)
}

func TestUnexpectedEOF(t *testing.T) {
	r := reader.New([]byte{0x01})
	_, err := r.ReadU32()
	require.ErrorIs(t, err, reader.ErrUnexpectedEOF)
}

func TestReadSliceIsZeroCopy(t *testing.T) {
	data := []byte("hello world")
	r := reader.New(data)
	s, err := r.ReadSlice(5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(s))
	// mutating the returned slice must be visible in the original buffer
	s[0] = 'H'
	require.Equal(t, byte('H'), data[0])
}

func TestReadWithU16Length(t *testing.T) {
	r := reader.New([]byte{0x00, 0x03, 'a', 'b', 'c'})
	s, err := r.ReadWithU16Length(1)
	require.NoError(t, err)
	require.Equal(t, "abc", string(s))
}

func TestReadWithU32LengthRejectsOversizedClaim(t *testing.T) {
	r := reader.New([]byte{0x7F, 0xFF, 0xFF, 0xFF, 0x01})
	_, err := r.ReadWithU32Length(4)
	require.ErrorIs(t, err, reader.ErrUnexpectedEOF)
}

func TestReadF32F64(t *testing.T) {
	r := reader.New([]byte{0x3F, 0x80, 0x00, 0x00, 0x3F, 0xF0, 0, 0, 0, 0, 0, 0})
	f32, err := r.ReadF32()
	require.NoError(t, err)
	require.Equal(t, float32(1), f32)

	f64, err := r.ReadF64()
	require.NoError(t, err)
	require.Equal(t, float64(1), f64)
}

func TestSkip(t *testing.T) {
	r := reader.New([]byte{1, 2, 3, 4})
	require.NoError(t, r.Skip(2))
	b, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, byte(3), b)

	require.ErrorIs(t, r.Skip(10), reader.ErrUnexpectedEOF)
}
