package nbt

import (
	"github.com/go-nbt/nbt/mutf8"
	"github.com/go-nbt/nbt/owned"
	"github.com/go-nbt/nbt/tape"
)

// ToOwned performs a deep copy of a parsed tree into the owned package's
// mutable representation, copying every borrowed string and array out
// of the original buffer. Callers that need to hold onto a document
// after its source bytes go away, or that want to mutate it, should
// convert once here rather than re-parsing.
func (n Nbt) ToOwned() owned.Nbt {
	if n.IsNone() {
		return owned.Nbt{}
	}
	base := n.Unwrap()
	name := append([]byte(nil), base.Name().Bytes()...)
	return owned.FromParts(name, toOwnedCompound(base.Compound()))
}

// ToOwned performs a deep copy of this compound into the owned package's
// mutable representation.
func (c Compound) ToOwned() *owned.Compound {
	return toOwnedCompound(c)
}

func toOwnedCompound(c Compound) *owned.Compound {
	oc := owned.NewEmptyCompound()
	c.Each(func(name mutf8.Str, t Tag) bool {
		oc.Insert(name.String(), toOwnedTag(t))
		return true
	})
	return oc
}

func toOwnedTag(t Tag) owned.Tag {
	switch t.Kind() {
	case tape.KindByte:
		v, _ := t.Byte()
		return owned.NewByte(v)
	case tape.KindShort:
		v, _ := t.Short()
		return owned.NewShort(v)
	case tape.KindInt:
		v, _ := t.Int()
		return owned.NewInt(v)
	case tape.KindLong:
		v, _ := t.Long()
		return owned.NewLong(v)
	case tape.KindFloat:
		v, _ := t.Float()
		return owned.NewFloat(v)
	case tape.KindDouble:
		v, _ := t.Double()
		return owned.NewDouble(v)
	case tape.KindByteArray:
		v, _ := t.ByteArray()
		return owned.NewByteArray(bytesToInt8s(v))
	case tape.KindString:
		v, _ := t.Str()
		return owned.NewString(append([]byte(nil), v.Bytes()...))
	case tape.KindCompound:
		v, _ := t.Compound()
		return owned.NewCompound(toOwnedCompound(v))
	default:
		if t.Kind().IsList() {
			l, _ := t.List()
			return owned.NewList(toOwnedList(l))
		}
		return owned.Tag{}
	}
}

func toOwnedList(l List) owned.List {
	switch l.ElementKind() {
	case tape.KindEmptyList:
		return owned.NewEmptyList()
	case tape.KindByteList:
		v, _ := l.ByteList()
		return owned.NewByteList(append([]int8(nil), v...))
	case tape.KindShortList:
		v, _ := l.ShortList()
		return owned.NewShortList(v.ToNativeVec())
	case tape.KindIntList:
		v, _ := l.IntList()
		return owned.NewIntList(v.ToNativeVec())
	case tape.KindLongList:
		v, _ := l.LongList()
		return owned.NewLongList(v.ToNativeVec())
	case tape.KindFloatList:
		v, _ := l.FloatList()
		return owned.NewFloatList(v.ToNativeVec())
	case tape.KindDoubleList:
		v, _ := l.DoubleList()
		return owned.NewDoubleList(v.ToNativeVec())
	case tape.KindByteArrayList:
		n := l.Len()
		out := make([][]int8, n)
		for i := 0; i < n; i++ {
			b, _ := l.ByteArrayAt(i)
			out[i] = bytesToInt8s(b)
		}
		return owned.NewByteArrayList(out)
	case tape.KindStringList:
		n := l.Len()
		out := make([]mutf8.Str, n)
		for i := 0; i < n; i++ {
			s, _ := l.StringAt(i)
			out[i] = append([]byte(nil), s.Bytes()...)
		}
		return owned.NewStringList(out)
	case tape.KindListList:
		n := l.Len()
		out := make([]owned.List, n)
		for i := 0; i < n; i++ {
			child, _ := l.ListAt(i)
			out[i] = toOwnedList(child)
		}
		return owned.NewListList(out)
	case tape.KindCompoundList:
		n := l.Len()
		out := make([]owned.Compound, n)
		for i := 0; i < n; i++ {
			child, _ := l.CompoundAt(i)
			out[i] = *toOwnedCompound(child)
		}
		return owned.NewCompoundList(out)
	case tape.KindIntArrayList:
		n := l.Len()
		out := make([][]int32, n)
		for i := 0; i < n; i++ {
			a, _ := l.IntArrayAt(i)
			out[i] = a.ToNativeVec()
		}
		return owned.NewIntArrayList(out)
	case tape.KindLongArrayList:
		n := l.Len()
		out := make([][]int64, n)
		for i := 0; i < n; i++ {
			a, _ := l.LongArrayAt(i)
			out[i] = a.ToNativeVec()
		}
		return owned.NewLongArrayList(out)
	default:
		return owned.List{}
	}
}

func bytesToInt8s(b []byte) []int8 {
	v := make([]int8, len(b))
	for i, c := range b {
		v[i] = int8(c)
	}
	return v
}
