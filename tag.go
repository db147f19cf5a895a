package nbt

import (
	"math"

	"github.com/go-nbt/nbt/internal/rawlist"
	"github.com/go-nbt/nbt/mutf8"
	"github.com/go-nbt/nbt/tape"
)

// beU32At reads a big-endian uint32 ending at offset (i.e. the 4 bytes
// immediately before it), the wire length prefix that is never
// duplicated onto the tape since it can always be recovered this way.
func beU32At(data []byte, offset int) uint32 {
	b := data[offset-4 : offset]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// beU16At reads a big-endian uint16 ending at offset.
func beU16At(data []byte, offset int) uint16 {
	b := data[offset-2 : offset]
	return uint16(b[0])<<8 | uint16(b[1])
}

// Tag is a handle to a single parsed value: a compound's named child, a
// list element, or the root compound itself. Its zero value is not
// meaningful; obtain one from Compound.Get or List iteration.
type Tag struct {
	doc   *document
	index int
}

// Kind returns the kind of value this tag holds.
func (t Tag) Kind() tape.TagKind {
	return t.doc.tape.Get(t.index).Kind()
}

func (t Tag) elem() tape.Element {
	return t.doc.tape.Get(t.index)
}

// Byte returns the tag's value if it is a Byte tag.
func (t Tag) Byte() (int8, bool) {
	if t.Kind() != tape.KindByte {
		return 0, false
	}
	return int8(t.elem().U8()), true
}

// Short returns the tag's value if it is a Short tag.
func (t Tag) Short() (int16, bool) {
	if t.Kind() != tape.KindShort {
		return 0, false
	}
	return int16(t.elem().U16()), true
}

// Int returns the tag's value if it is an Int tag.
func (t Tag) Int() (int32, bool) {
	if t.Kind() != tape.KindInt {
		return 0, false
	}
	return int32(t.elem().U32()), true
}

// Long returns the tag's value if it is a Long tag. Long values occupy
// two tape cells; the value lives in the continuation cell immediately
// after the header.
func (t Tag) Long() (int64, bool) {
	if t.Kind() != tape.KindLong {
		return 0, false
	}
	return int64(t.doc.tape.Get(t.index + 1).U64()), true
}

// Float returns the tag's value if it is a Float tag.
func (t Tag) Float() (float32, bool) {
	if t.Kind() != tape.KindFloat {
		return 0, false
	}
	return t.elem().Float32(), true
}

// Double returns the tag's value if it is a Double tag.
func (t Tag) Double() (float64, bool) {
	if t.Kind() != tape.KindDouble {
		return 0, false
	}
	return math.Float64frombits(t.doc.tape.Get(t.index + 1).U64()), true
}

// ByteArray returns the tag's raw bytes if it is a Byte Array tag. The
// returned slice aliases the buffer Read was called with.
func (t Tag) ByteArray() ([]byte, bool) {
	if t.Kind() != tape.KindByteArray {
		return nil, false
	}
	start := int(t.elem().Ptr())
	n := beU32At(t.doc.data, start)
	return t.doc.data[start : start+int(n)], true
}

// Str returns the tag's value if it is a String tag, as a borrowed
// MUTF-8 string.
func (t Tag) Str() (mutf8.Str, bool) {
	if t.Kind() != tape.KindString {
		return nil, false
	}
	start := int(t.elem().Ptr())
	n := beU16At(t.doc.data, start)
	return mutf8.FromBytes(t.doc.data[start : start+int(n)]), true
}

// IntArray returns the tag's value as a borrowed, still-big-endian
// RawList if it is an Int Array tag.
func (t Tag) IntArray() (rawlist.RawList[int32], bool) {
	if t.Kind() != tape.KindIntArray {
		return rawlist.RawList[int32]{}, false
	}
	start := int(t.elem().Ptr())
	n := beU32At(t.doc.data, start)
	return rawlist.New[int32](t.doc.data[start : start+int(n)*4]), true
}

// LongArray returns the tag's value as a borrowed, still-big-endian
// RawList if it is a Long Array tag.
func (t Tag) LongArray() (rawlist.RawList[int64], bool) {
	if t.Kind() != tape.KindLongArray {
		return rawlist.RawList[int64]{}, false
	}
	start := int(t.elem().Ptr())
	n := beU32At(t.doc.data, start)
	return rawlist.New[int64](t.doc.data[start : start+int(n)*8]), true
}

// Compound returns the tag's value if it is a Compound tag.
func (t Tag) Compound() (Compound, bool) {
	if t.Kind() != tape.KindCompound {
		return Compound{}, false
	}
	return Compound{doc: t.doc, header: t.index}, true
}

// List returns the tag's value if it is a List tag.
func (t Tag) List() (List, bool) {
	if !t.Kind().IsList() {
		return List{}, false
	}
	return List{doc: t.doc, header: t.index}, true
}

// Compound is a borrowed view over a parsed TAG_Compound: its direct
// children can be looked up by name, in O(children) time, without
// copying or walking into nested compounds.
type Compound struct {
	doc    *document
	header int // tape index of this compound's own container token
}

// span returns the number of tape slots this compound (including its
// own header token) occupies.
func (c Compound) span() int {
	return c.doc.tape.Get(c.header).SkipOffset()
}

// Get looks up a direct child by name.
func (c Compound) Get(name string) (Tag, bool) {
	target := mutf8.FromBytes(mutf8.FromString(name))
	i := c.header + 1
	end := c.header + c.span()
	for i < end {
		if c.doc.tape.NameAt(i).Equal(target) {
			return Tag{doc: c.doc, index: i}, true
		}
		i += c.doc.tape.Get(i).SkipOffset()
	}
	return Tag{}, false
}

// Contains reports whether a direct child with the given name exists.
func (c Compound) Contains(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Len returns the number of direct children. It is linear in the number
// of children (it must walk the tape to skip over each one), not O(1),
// since a compound's tape token carries no child count.
func (c Compound) Len() int {
	n := 0
	i := c.header + 1
	end := c.header + c.span()
	for i < end {
		n++
		i += c.doc.tape.Get(i).SkipOffset()
	}
	return n
}

// IsEmpty reports whether the compound has no direct children.
func (c Compound) IsEmpty() bool {
	return c.span() == 1
}

// Keys returns the names of the compound's direct children, in wire
// order.
func (c Compound) Keys() []mutf8.Str {
	var keys []mutf8.Str
	i := c.header + 1
	end := c.header + c.span()
	for i < end {
		keys = append(keys, c.doc.tape.NameAt(i))
		i += c.doc.tape.Get(i).SkipOffset()
	}
	return keys
}

// Each calls fn for every direct child, in wire order, stopping early
// if fn returns false.
func (c Compound) Each(fn func(name mutf8.Str, tag Tag) bool) {
	i := c.header + 1
	end := c.header + c.span()
	for i < end {
		if !fn(c.doc.tape.NameAt(i), Tag{doc: c.doc, index: i}) {
			return
		}
		i += c.doc.tape.Get(i).SkipOffset()
	}
}

// Byte looks up a direct child and returns its value if it is a Byte tag.
func (c Compound) Byte(name string) (int8, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Byte()
}

// Short looks up a direct child and returns its value if it is a Short tag.
func (c Compound) Short(name string) (int16, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Short()
}

// Int looks up a direct child and returns its value if it is an Int tag.
func (c Compound) Int(name string) (int32, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Int()
}

// Long looks up a direct child and returns its value if it is a Long tag.
func (c Compound) Long(name string) (int64, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Long()
}

// Float looks up a direct child and returns its value if it is a Float tag.
func (c Compound) Float(name string) (float32, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Float()
}

// Double looks up a direct child and returns its value if it is a Double tag.
func (c Compound) Double(name string) (float64, bool) {
	t, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return t.Double()
}

// ByteArray looks up a direct child and returns its value if it is a
// Byte Array tag.
func (c Compound) ByteArray(name string) ([]byte, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	return t.ByteArray()
}

// Str looks up a direct child and returns its value if it is a
// String tag.
func (c Compound) Str(name string) (mutf8.Str, bool) {
	t, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	return t.Str()
}

// CompoundField looks up a direct child and returns its value if it is a
// Compound tag.
func (c Compound) CompoundField(name string) (Compound, bool) {
	t, ok := c.Get(name)
	if !ok {
		return Compound{}, false
	}
	return t.Compound()
}

// ListField looks up a direct child and returns its value if it is a List tag.
func (c Compound) ListField(name string) (List, bool) {
	t, ok := c.Get(name)
	if !ok {
		return List{}, false
	}
	return t.List()
}

// IntArray looks up a direct child and returns its value if it is an
// Int Array tag.
func (c Compound) IntArray(name string) (rawlist.RawList[int32], bool) {
	t, ok := c.Get(name)
	if !ok {
		return rawlist.RawList[int32]{}, false
	}
	return t.IntArray()
}

// LongArray looks up a direct child and returns its value if it is a
// Long Array tag.
func (c Compound) LongArray(name string) (rawlist.RawList[int64], bool) {
	t, ok := c.Get(name)
	if !ok {
		return rawlist.RawList[int64]{}, false
	}
	return t.LongArray()
}

// List is a borrowed view over a parsed TAG_List: a homogeneous
// sequence whose element kind is fixed for the whole list.
type List struct {
	doc    *document
	header int // tape index of this list's own token
}

// ElementKind reports the kind of TagKind this list's elements have on
// the tape (e.g. KindIntList for a List of Int). A list whose element
// type byte is TAG_End reports KindEmptyList; a zero-length list of any
// other element type reports that type's list kind.
func (l List) ElementKind() tape.TagKind {
	return l.doc.tape.Get(l.header).Kind()
}

// Len returns the number of elements.
func (l List) Len() int {
	e := l.doc.tape.Get(l.header)
	switch e.Kind() {
	case tape.KindEmptyList:
		return 0
	case tape.KindByteList, tape.KindShortList, tape.KindIntList, tape.KindFloatList,
		tape.KindLongList, tape.KindDoubleList:
		start := int(e.Ptr())
		return int(beU32At(l.doc.data, start)) // element count, not byte count
	case tape.KindByteArrayList, tape.KindStringList, tape.KindIntArrayList, tape.KindLongArrayList:
		n, _ := e.ApproxLenAndOffset()
		return int(n)
	case tape.KindListList, tape.KindCompoundList:
		n, _ := e.ApproxLenAndOffset()
		if n < 1<<24-1 {
			return int(n)
		}
		// saturated: fall back to walking the tape to get an exact count.
		return l.walkCount()
	default:
		return 0
	}
}

func (l List) walkCount() int {
	e := l.doc.tape.Get(l.header)
	_, offset := e.ApproxLenAndOffset()
	end := l.header + int(offset)
	n := 0
	i := l.header + 1
	for i < end {
		n++
		i += l.doc.tape.Get(i).SkipOffset()
	}
	return n
}

// IsEmpty reports whether the list has zero elements.
func (l List) IsEmpty() bool {
	return l.Len() == 0
}

// ByteList returns a freshly allocated copy of a List of Byte's elements
// as int8 values, if this list holds that element kind.
func (l List) ByteList() ([]int8, bool) {
	if l.ElementKind() != tape.KindByteList {
		return nil, false
	}
	start := int(l.doc.tape.Get(l.header).Ptr())
	n := int(beU32At(l.doc.data, start))
	raw := l.doc.data[start : start+n]
	out := make([]int8, n)
	for i, b := range raw {
		out[i] = int8(b)
	}
	return out, true
}

// ShortList returns a RawList of this list's elements if it holds
// Short values.
func (l List) ShortList() (rawlist.RawList[int16], bool) {
	return listRaw[int16](l, tape.KindShortList, 2)
}

// IntList returns a RawList of this list's elements if it holds Int
// values.
func (l List) IntList() (rawlist.RawList[int32], bool) {
	return listRaw[int32](l, tape.KindIntList, 4)
}

// LongList returns a RawList of this list's elements if it holds Long
// values.
func (l List) LongList() (rawlist.RawList[int64], bool) {
	return listRaw[int64](l, tape.KindLongList, 8)
}

// FloatList returns a RawList of this list's elements if it holds
// Float values.
func (l List) FloatList() (rawlist.RawList[float32], bool) {
	return listRaw[float32](l, tape.KindFloatList, 4)
}

// DoubleList returns a RawList of this list's elements if it holds
// Double values.
func (l List) DoubleList() (rawlist.RawList[float64], bool) {
	return listRaw[float64](l, tape.KindDoubleList, 8)
}

func listRaw[T rawlist.Swappable](l List, want tape.TagKind, width int) (rawlist.RawList[T], bool) {
	if l.ElementKind() != want {
		return rawlist.RawList[T]{}, false
	}
	start := int(l.doc.tape.Get(l.header).Ptr())
	n := int(beU32At(l.doc.data, start))
	return rawlist.New[T](l.doc.data[start : start+n*width]), true
}

// CompoundAt returns the element at index i if this is a List of
// Compound.
func (l List) CompoundAt(i int) (Compound, bool) {
	if l.ElementKind() != tape.KindCompoundList {
		return Compound{}, false
	}
	idx := l.nthChildIndex(i)
	if idx < 0 {
		return Compound{}, false
	}
	return Compound{doc: l.doc, header: idx}, true
}

// ListAt returns the element at index i if this is a List of List.
func (l List) ListAt(i int) (List, bool) {
	if l.ElementKind() != tape.KindListList {
		return List{}, false
	}
	idx := l.nthChildIndex(i)
	if idx < 0 {
		return List{}, false
	}
	return List{doc: l.doc, header: idx}, true
}

func (l List) nthChildIndex(i int) int {
	_, offset := l.doc.tape.Get(l.header).ApproxLenAndOffset()
	end := l.header + int(offset)
	idx := l.header + 1
	for n := 0; idx < end; n++ {
		if n == i {
			return idx
		}
		idx += l.doc.tape.Get(idx).SkipOffset()
	}
	return -1
}

// ByteArrayAt returns the element at index i if this is a List of Byte
// Array.
func (l List) ByteArrayAt(i int) ([]byte, bool) {
	if l.ElementKind() != tape.KindByteArrayList {
		return nil, false
	}
	entry, ok := l.extraEntry(i)
	if !ok {
		return nil, false
	}
	return l.doc.data[entry.Offset : entry.Offset+entry.Length], true
}

// StringAt returns the element at index i if this is a List of String.
func (l List) StringAt(i int) (mutf8.Str, bool) {
	if l.ElementKind() != tape.KindStringList {
		return nil, false
	}
	entry, ok := l.extraEntry(i)
	if !ok {
		return nil, false
	}
	return mutf8.FromBytes(l.doc.data[entry.Offset : entry.Offset+entry.Length]), true
}

// IntArrayAt returns the element at index i if this is a List of Int
// Array.
func (l List) IntArrayAt(i int) (rawlist.RawList[int32], bool) {
	if l.ElementKind() != tape.KindIntArrayList {
		return rawlist.RawList[int32]{}, false
	}
	entry, ok := l.extraEntry(i)
	if !ok {
		return rawlist.RawList[int32]{}, false
	}
	return rawlist.New[int32](l.doc.data[entry.Offset : entry.Offset+entry.Length*4]), true
}

// LongArrayAt returns the element at index i if this is a List of Long
// Array.
func (l List) LongArrayAt(i int) (rawlist.RawList[int64], bool) {
	if l.ElementKind() != tape.KindLongArrayList {
		return rawlist.RawList[int64]{}, false
	}
	entry, ok := l.extraEntry(i)
	if !ok {
		return rawlist.RawList[int64]{}, false
	}
	return rawlist.New[int64](l.doc.data[entry.Offset : entry.Offset+entry.Length*8]), true
}

func (l List) extraEntry(i int) (tape.ExtraEntry, bool) {
	_, start := l.doc.tape.Get(l.header).ApproxLenAndOffset()
	n := l.Len()
	if i < 0 || i >= n {
		return tape.ExtraEntry{}, false
	}
	return l.doc.extras.Get(int(start) + i), true
}
