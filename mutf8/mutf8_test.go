package mutf8_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt/mutf8"
)

func TestSameAsUTF8(t *testing.T) {
	str := "Hello, world!"
	require.Equal(t, []byte(str), mutf8.FromString(str))
	require.Equal(t, str, mutf8.FromBytes([]byte(str)).String())
}

func TestSurrogatePair(t *testing.T) {
	str := "\U00010401"
	wire := []byte{0xED, 0xA0, 0x81, 0xED, 0xB0, 0x81}
	require.Equal(t, str, mutf8.FromBytes(wire).String())
	require.Equal(t, wire, mutf8.FromString(str))
}

func TestNullByte(t *testing.T) {
	wire := []byte{0xC0, 0x80}
	require.Equal(t, "\x00", mutf8.FromBytes(wire).String())
	require.Equal(t, wire, mutf8.FromString("\x00"))
}

func TestEqualComparesRawBytes(t *testing.T) {
	a := mutf8.FromBytes([]byte("steve"))
	b := mutf8.FromBytes([]byte("steve"))
	c := mutf8.FromBytes([]byte("alex"))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestEmpty(t *testing.T) {
	var s mutf8.Str
	require.True(t, s.IsEmpty())
	require.Equal(t, 0, s.Len())
	require.Equal(t, "", s.String())
}

func TestRoundTripMixedContent(t *testing.T) {
	str := "plain \x00 null \U00010401 surrogate"
	wire := mutf8.FromString(str)
	require.Equal(t, str, mutf8.FromBytes(wire).String())
}
