// Package owned implements a mutable, fully-materialized mirror of an NBT
// document: every string and array is copied out of its source buffer, so
// values in this package outlive the bytes they were read from and can be
// edited in place. Callers that only need to inspect a document should
// prefer the zero-copy accessors in the root package; this package exists
// for callers that build or mutate a tree (tool ports, world editors,
// anything that round-trips through a save).
package owned

import (
	"math"

	"github.com/go-nbt/nbt/mutf8"
)

// Kind identifies what a Tag or List holds. The numeric values line up
// with the wire tag IDs used elsewhere in this module; KindEnd doubles as
// the element kind of an empty List and as the kind of the zero Tag.
type Kind uint8

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

// Tag is a mutable, owned tagged union holding exactly one NBT value.
// The zero Tag is KindEnd, used as Compound.Take's placeholder.
type Tag struct {
	kind      Kind
	i64       int64
	f64       uint64
	str       mutf8.Str
	byteArray []int8
	intArray  []int32
	longArray []int64
	list      List
	compound  *Compound
}

// Kind returns the tag's kind.
func (t Tag) Kind() Kind { return t.kind }

// Equal reports whether t and other hold the same kind and value. It
// exists so go-cmp (and anything else that respects an Equal method) can
// compare trees built through this package's constructors without
// reflecting into the unexported union fields.
func (t Tag) Equal(other Tag) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindByte, KindShort, KindInt, KindLong:
		return t.i64 == other.i64
	case KindFloat, KindDouble:
		return t.f64 == other.f64
	case KindByteArray:
		return equalSlice(t.byteArray, other.byteArray)
	case KindString:
		return t.str.Equal(other.str)
	case KindIntArray:
		return equalSlice(t.intArray, other.intArray)
	case KindLongArray:
		return equalSlice(t.longArray, other.longArray)
	case KindList:
		return t.list.Equal(other.list)
	case KindCompound:
		return t.compound.Equal(other.compound)
	default:
		return true // KindEnd: both are the Take placeholder
	}
}

func equalSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func NewByte(v int8) Tag   { return Tag{kind: KindByte, i64: int64(v)} }
func NewShort(v int16) Tag { return Tag{kind: KindShort, i64: int64(v)} }
func NewInt(v int32) Tag   { return Tag{kind: KindInt, i64: int64(v)} }
func NewLong(v int64) Tag  { return Tag{kind: KindLong, i64: v} }

func NewFloat(v float32) Tag  { return Tag{kind: KindFloat, f64: uint64(math.Float32bits(v))} }
func NewDouble(v float64) Tag { return Tag{kind: KindDouble, f64: math.Float64bits(v)} }

func NewByteArray(v []int8) Tag { return Tag{kind: KindByteArray, byteArray: v} }
func NewString(v mutf8.Str) Tag { return Tag{kind: KindString, str: v} }
func NewIntArray(v []int32) Tag { return Tag{kind: KindIntArray, intArray: v} }
func NewLongArray(v []int64) Tag {
	return Tag{kind: KindLongArray, longArray: v}
}
func NewList(v List) Tag           { return Tag{kind: KindList, list: v} }
func NewCompound(v *Compound) Tag  { return Tag{kind: KindCompound, compound: v} }

func (t Tag) Byte() (int8, bool) {
	if t.kind != KindByte {
		return 0, false
	}
	return int8(t.i64), true
}

func (t Tag) Short() (int16, bool) {
	if t.kind != KindShort {
		return 0, false
	}
	return int16(t.i64), true
}

func (t Tag) Int() (int32, bool) {
	if t.kind != KindInt {
		return 0, false
	}
	return int32(t.i64), true
}

func (t Tag) Long() (int64, bool) {
	if t.kind != KindLong {
		return 0, false
	}
	return t.i64, true
}

func (t Tag) Float() (float32, bool) {
	if t.kind != KindFloat {
		return 0, false
	}
	return math.Float32frombits(uint32(t.f64)), true
}

func (t Tag) Double() (float64, bool) {
	if t.kind != KindDouble {
		return 0, false
	}
	return math.Float64frombits(t.f64), true
}

func (t Tag) ByteArray() ([]int8, bool) {
	if t.kind != KindByteArray {
		return nil, false
	}
	return t.byteArray, true
}

func (t Tag) Str() (mutf8.Str, bool) {
	if t.kind != KindString {
		return nil, false
	}
	return t.str, true
}

func (t Tag) IntArray() ([]int32, bool) {
	if t.kind != KindIntArray {
		return nil, false
	}
	return t.intArray, true
}

func (t Tag) LongArray() ([]int64, bool) {
	if t.kind != KindLongArray {
		return nil, false
	}
	return t.longArray, true
}

func (t Tag) List() (List, bool) {
	if t.kind != KindList {
		return List{}, false
	}
	return t.list, true
}

func (t Tag) Compound() (*Compound, bool) {
	if t.kind != KindCompound {
		return nil, false
	}
	return t.compound, true
}

// SetByte overwrites t in place with a new Byte value, changing its kind
// if necessary. It is the "mut" half of the typed getters: call GetMut to
// obtain a *Tag, then mutate it with the Set method matching its kind.
func (t *Tag) SetByte(v int8) { *t = NewByte(v) }

// SetShort overwrites t in place with a new Short value.
func (t *Tag) SetShort(v int16) { *t = NewShort(v) }

// SetInt overwrites t in place with a new Int value.
func (t *Tag) SetInt(v int32) { *t = NewInt(v) }

// SetLong overwrites t in place with a new Long value.
func (t *Tag) SetLong(v int64) { *t = NewLong(v) }

// SetFloat overwrites t in place with a new Float value.
func (t *Tag) SetFloat(v float32) { *t = NewFloat(v) }

// SetDouble overwrites t in place with a new Double value.
func (t *Tag) SetDouble(v float64) { *t = NewDouble(v) }
