package rawlist_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt/internal/rawlist"
)

func TestSwapEndianness16(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03, 0x04}
	out := rawlist.SwapEndiannessAsU8(in, 2)
	require.Equal(t, []byte{0x02, 0x01, 0x04, 0x03}, out)
	// original must be untouched
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, in)
}

func TestSwapEndianness32(t *testing.T) {
	in := []byte{0x00, 0x00, 0x01, 0x00}
	out := rawlist.SwapEndiannessAsU8(in, 4)
	require.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, out)
}

func TestSwapEndianness64(t *testing.T) {
	in := []byte{0, 0, 0, 0, 0, 0, 0, 42}
	out := rawlist.SwapEndiannessAsU8(in, 8)
	require.Equal(t, []byte{42, 0, 0, 0, 0, 0, 0, 0}, out)
}

func TestRawListIntArrayRoundTrip(t *testing.T) {
	// big-endian [1, -1, 1023]
	be := []byte{
		0, 0, 0, 1,
		0xFF, 0xFF, 0xFF, 0xFF,
		0, 0, 0x03, 0xFF,
	}
	l := rawlist.New[int32](be)
	require.Equal(t, 3, l.Len())
	require.Equal(t, []int32{1, -1, 1023}, l.ToNativeVec())
	require.Equal(t, be, l.AsBigEndian())
}

func TestRawListLongArray(t *testing.T) {
	be := []byte{
		0, 0, 0, 0, 0, 0, 0x04, 0x00, // 1024
	}
	l := rawlist.New[int64](be)
	require.Equal(t, 1, l.Len())
	require.Equal(t, int64(1024), l.Get(0))
}

func TestRawListEmpty(t *testing.T) {
	l := rawlist.New[int32](nil)
	require.True(t, l.IsEmpty())
	require.Equal(t, 0, l.Len())
}

func TestOddLengthTailIsSwapped(t *testing.T) {
	// 3 elements of width 4 = 12 bytes, not a multiple of any SIMD lane,
	// must still each swap correctly via the scalar tail.
	in := make([]byte, 12)
	for i := range in {
		in[i] = byte(i)
	}
	out := rawlist.SwapEndiannessAsU8(in, 4)
	require.Equal(t, []byte{3, 2, 1, 0, 7, 6, 5, 4, 11, 10, 9, 8}, out)
}
