package owned_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-nbt/nbt/mutf8"
	"github.com/go-nbt/nbt/owned"
)

func writeMutf8(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

func TestReadHelloWorld(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "hello world")
	buf.WriteByte(0x08)
	writeMutf8(&buf, "name")
	writeMutf8(&buf, "Bananrama")
	buf.WriteByte(0x00)

	doc, err := owned.Read(buf.Bytes())
	require.NoError(t, err)
	require.True(t, doc.IsSome())
	require.Equal(t, "hello world", doc.Name().String())

	s, ok := doc.Compound().Str("name")
	require.True(t, ok)
	require.Equal(t, "Bananrama", s.String())
}

func TestCompoundMutation(t *testing.T) {
	c := owned.NewEmptyCompound()
	require.True(t, c.IsEmpty())

	old, existed := c.Insert("hp", owned.NewInt(20))
	require.False(t, existed)
	require.Equal(t, owned.Tag{}, old)
	require.Equal(t, 1, c.Len())

	v, ok := c.Int("hp")
	require.True(t, ok)
	require.Equal(t, int32(20), v)

	mut, ok := c.GetMut("hp")
	require.True(t, ok)
	mut.SetInt(99)
	v, ok = c.Int("hp")
	require.True(t, ok)
	require.Equal(t, int32(99), v)

	taken, ok := c.Take("hp")
	require.True(t, ok)
	tv, _ := taken.Int()
	require.Equal(t, int32(99), tv)
	require.True(t, c.Contains("hp")) // key remains, placeholder value
	_, ok = c.Int("hp")
	require.False(t, ok) // placeholder no longer reads as an Int

	removed, ok := c.Remove("hp")
	require.True(t, ok)
	require.Equal(t, owned.KindEnd, removed.Kind())
	require.False(t, c.Contains("hp"))
	require.True(t, c.IsEmpty())
}

func TestListTaggedUnion(t *testing.T) {
	l := owned.NewIntList([]int32{1, 2, 3})
	require.Equal(t, owned.KindInt, l.ElementKind())
	require.Equal(t, 3, l.Len())

	ints, ok := l.Ints()
	require.True(t, ok)
	require.Equal(t, []int32{1, 2, 3}, ints)

	_, ok = l.Strings()
	require.False(t, ok)
}

func TestRoundTripThroughWrite(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	buf.WriteByte(0x09) // List of Int
	writeMutf8(&buf, "ints")
	buf.WriteByte(0x03)
	binary.Write(&buf, binary.BigEndian, int32(3))
	binary.Write(&buf, binary.BigEndian, int32(10))
	binary.Write(&buf, binary.BigEndian, int32(20))
	binary.Write(&buf, binary.BigEndian, int32(30))
	buf.WriteByte(0x00)
	original := buf.Bytes()

	doc, err := owned.Read(original)
	require.NoError(t, err)
	require.Equal(t, original, doc.Write())
}

func TestRoundTripNestedCompoundList(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x0A)
	writeMutf8(&buf, "")
	buf.WriteByte(0x09)
	writeMutf8(&buf, "items")
	buf.WriteByte(0x0A)
	binary.Write(&buf, binary.BigEndian, int32(2))
	buf.WriteByte(0x01)
	writeMutf8(&buf, "id")
	buf.WriteByte(1)
	buf.WriteByte(0x00)
	buf.WriteByte(0x01)
	writeMutf8(&buf, "id")
	buf.WriteByte(2)
	buf.WriteByte(0x00)
	buf.WriteByte(0x00)
	original := buf.Bytes()

	doc, err := owned.Read(original)
	require.NoError(t, err)
	require.Equal(t, original, doc.Write())

	list, ok := doc.Compound().ListField("items")
	require.True(t, ok)
	compounds, ok := list.Compounds()
	require.True(t, ok)
	require.Len(t, compounds, 2)
	id, ok := compounds[1].Byte("id")
	require.True(t, ok)
	require.Equal(t, int8(2), id)
}

func TestCompoundStructuralEquality(t *testing.T) {
	build := func() *owned.Compound {
		c := owned.NewEmptyCompound()
		c.Insert("hp", owned.NewInt(20))
		c.Insert("tags", owned.NewList(owned.NewStringList([]mutf8.Str{mutf8.Str("a"), mutf8.Str("b")})))
		inner := owned.NewEmptyCompound()
		inner.Insert("x", owned.NewByte(1))
		c.Insert("pos", owned.NewCompound(inner))
		return c
	}

	a, b := build(), build()
	if diff := cmp.Diff(a, b, cmp.Comparer(func(x, y *owned.Compound) bool { return x.Equal(y) })); diff != "" {
		t.Fatalf("identically-built compounds differ (-a +b):\n%s", diff)
	}

	b.Insert("hp", owned.NewInt(1))
	if diff := cmp.Diff(a, b, cmp.Comparer(func(x, y *owned.Compound) bool { return x.Equal(y) })); diff == "" {
		t.Fatal("expected a mutated compound to differ, got no diff")
	}
}

func TestMaxDepthExceeded(t *testing.T) {
	var buf bytes.Buffer
	const depth = 600
	for i := 0; i < depth; i++ {
		buf.WriteByte(0x0A)
		writeMutf8(&buf, "")
	}
	for i := 0; i < depth; i++ {
		buf.WriteByte(0x00)
	}

	_, err := owned.Read(buf.Bytes())
	var target *owned.MaxDepthExceededError
	require.ErrorAs(t, err, &target)
}
