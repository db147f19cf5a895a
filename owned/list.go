package owned

import "github.com/go-nbt/nbt/mutf8"

// List is a mutable, owned tagged union mirroring NBT's List tag: exactly
// one element kind per list, plus an Empty variant for a list with no
// elements (which carries no element kind of its own on the wire).
type List struct {
	kind      Kind
	bytes     []int8
	shorts    []int16
	ints      []int32
	longs     []int64
	floats    []float32
	doubles   []float64
	byteArrs  [][]int8
	strs      []mutf8.Str
	lists     []List
	compounds []Compound
	intArrs   [][]int32
	longArrs  [][]int64
}

// ElementKind returns the kind shared by every element of the list, or
// KindEnd for an empty list.
func (l List) ElementKind() Kind { return l.kind }

// Equal reports whether l and other hold the same element kind and
// elements, recursively for nested lists and compounds.
func (l List) Equal(other List) bool {
	if l.kind != other.kind {
		return false
	}
	switch l.kind {
	case KindByte:
		return equalSlice(l.bytes, other.bytes)
	case KindShort:
		return equalSlice(l.shorts, other.shorts)
	case KindInt:
		return equalSlice(l.ints, other.ints)
	case KindLong:
		return equalSlice(l.longs, other.longs)
	case KindFloat:
		return equalSlice(l.floats, other.floats)
	case KindDouble:
		return equalSlice(l.doubles, other.doubles)
	case KindByteArray:
		return equalNestedSlice(l.byteArrs, other.byteArrs)
	case KindIntArray:
		return equalNestedSlice(l.intArrs, other.intArrs)
	case KindLongArray:
		return equalNestedSlice(l.longArrs, other.longArrs)
	case KindString:
		if len(l.strs) != len(other.strs) {
			return false
		}
		for i := range l.strs {
			if !l.strs[i].Equal(other.strs[i]) {
				return false
			}
		}
		return true
	case KindList:
		if len(l.lists) != len(other.lists) {
			return false
		}
		for i := range l.lists {
			if !l.lists[i].Equal(other.lists[i]) {
				return false
			}
		}
		return true
	case KindCompound:
		if len(l.compounds) != len(other.compounds) {
			return false
		}
		for i := range l.compounds {
			if !l.compounds[i].Equal(&other.compounds[i]) {
				return false
			}
		}
		return true
	default:
		return true // KindEnd: both empty
	}
}

func equalNestedSlice[T comparable](a, b [][]T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalSlice(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of elements.
func (l List) Len() int {
	switch l.kind {
	case KindByte:
		return len(l.bytes)
	case KindShort:
		return len(l.shorts)
	case KindInt:
		return len(l.ints)
	case KindLong:
		return len(l.longs)
	case KindFloat:
		return len(l.floats)
	case KindDouble:
		return len(l.doubles)
	case KindByteArray:
		return len(l.byteArrs)
	case KindString:
		return len(l.strs)
	case KindList:
		return len(l.lists)
	case KindCompound:
		return len(l.compounds)
	case KindIntArray:
		return len(l.intArrs)
	case KindLongArray:
		return len(l.longArrs)
	default:
		return 0
	}
}

// IsEmpty reports whether the list has no elements.
func (l List) IsEmpty() bool { return l.Len() == 0 }

func NewEmptyList() List { return List{kind: KindEnd} }

func NewByteList(v []int8) List        { return List{kind: KindByte, bytes: v} }
func NewShortList(v []int16) List      { return List{kind: KindShort, shorts: v} }
func NewIntList(v []int32) List        { return List{kind: KindInt, ints: v} }
func NewLongList(v []int64) List       { return List{kind: KindLong, longs: v} }
func NewFloatList(v []float32) List    { return List{kind: KindFloat, floats: v} }
func NewDoubleList(v []float64) List   { return List{kind: KindDouble, doubles: v} }
func NewByteArrayList(v [][]int8) List { return List{kind: KindByteArray, byteArrs: v} }
func NewStringList(v []mutf8.Str) List { return List{kind: KindString, strs: v} }
func NewListList(v []List) List        { return List{kind: KindList, lists: v} }
func NewCompoundList(v []Compound) List {
	return List{kind: KindCompound, compounds: v}
}
func NewIntArrayList(v [][]int32) List  { return List{kind: KindIntArray, intArrs: v} }
func NewLongArrayList(v [][]int64) List { return List{kind: KindLongArray, longArrs: v} }

func (l List) Bytes() ([]int8, bool)        { return l.bytes, l.kind == KindByte }
func (l List) Shorts() ([]int16, bool)      { return l.shorts, l.kind == KindShort }
func (l List) Ints() ([]int32, bool)        { return l.ints, l.kind == KindInt }
func (l List) Longs() ([]int64, bool)       { return l.longs, l.kind == KindLong }
func (l List) Floats() ([]float32, bool)    { return l.floats, l.kind == KindFloat }
func (l List) Doubles() ([]float64, bool)   { return l.doubles, l.kind == KindDouble }
func (l List) ByteArrays() ([][]int8, bool) { return l.byteArrs, l.kind == KindByteArray }
func (l List) Strings() ([]mutf8.Str, bool) { return l.strs, l.kind == KindString }
func (l List) Lists() ([]List, bool)        { return l.lists, l.kind == KindList }
func (l List) Compounds() ([]Compound, bool) {
	return l.compounds, l.kind == KindCompound
}
func (l List) IntArrays() ([][]int32, bool)  { return l.intArrs, l.kind == KindIntArray }
func (l List) LongArrays() ([][]int64, bool) { return l.longArrs, l.kind == KindLongArray }
