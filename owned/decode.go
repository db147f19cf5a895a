package owned

import (
	"github.com/go-nbt/nbt/internal/reader"
	"github.com/go-nbt/nbt/mutf8"
)

// Nbt is the result of Read: either a present document rooted at a named
// compound, or an absent one, mirroring the single TAG_End byte a writer
// emits for "nothing here."
type Nbt struct {
	present bool
	name    mutf8.Str
	root    *Compound
}

// IsSome reports whether the document is present.
func (n Nbt) IsSome() bool { return n.present }

// IsNone reports whether the document is absent.
func (n Nbt) IsNone() bool { return !n.present }

// Name returns the name written alongside the root compound.
func (n Nbt) Name() mutf8.Str { return n.name }

// Compound returns the root compound. It panics if the document is
// absent.
func (n Nbt) Compound() *Compound {
	if !n.present {
		panic("owned: called Compound on an absent document")
	}
	return n.root
}

// FromParts builds an Nbt directly from an already-materialized name and
// root compound, the entry point ToOwned conversions use instead of
// re-parsing bytes.
func FromParts(name []byte, root *Compound) Nbt {
	return Nbt{present: true, name: mutf8.FromBytes(name), root: root}
}

// Read parses data into a fully-materialized owned tree, copying every
// string and array out of data so the result owns its own memory.
func Read(data []byte) (Nbt, error) {
	r := reader.New(data)
	rootType, err := r.ReadU8()
	if err != nil {
		return Nbt{}, ErrUnexpectedEOF
	}
	if rootType == endID {
		return Nbt{}, nil
	}
	if rootType != compoundID {
		return Nbt{}, &InvalidRootTypeError{ID: rootType}
	}
	name, err := readMutf8String(&r)
	if err != nil {
		return Nbt{}, err
	}
	root, err := readCompoundBody(&r, 1)
	if err != nil {
		return Nbt{}, err
	}
	return Nbt{present: true, name: name, root: root}, nil
}

// ReadUnnamed parses data the way Read does, except the root compound
// carries no name field on the wire (the variant used on the network).
func ReadUnnamed(data []byte) (Nbt, error) {
	r := reader.New(data)
	rootType, err := r.ReadU8()
	if err != nil {
		return Nbt{}, ErrUnexpectedEOF
	}
	if rootType == endID {
		return Nbt{}, nil
	}
	if rootType != compoundID {
		return Nbt{}, &InvalidRootTypeError{ID: rootType}
	}
	root, err := readCompoundBody(&r, 1)
	if err != nil {
		return Nbt{}, err
	}
	return Nbt{present: true, root: root}, nil
}

func readMutf8String(r *reader.Reader) (mutf8.Str, error) {
	n, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	b, err := r.ReadSlice(int(n))
	if err != nil {
		return nil, err
	}
	return mutf8.FromBytes(append([]byte(nil), b...)), nil
}

// readCompoundBody reads a compound's fields up to and including its
// closing TAG_End, at the given recursion depth.
func readCompoundBody(r *reader.Reader, depth int) (*Compound, error) {
	if depth > maxDepth {
		return nil, &MaxDepthExceededError{}
	}
	c := NewEmptyCompound()
	for {
		tagType, err := r.ReadU8()
		if err != nil {
			return nil, ErrUnexpectedEOF
		}
		if tagType == endID {
			return c, nil
		}
		name, err := readMutf8String(r)
		if err != nil {
			return nil, err
		}
		tag, err := readTagBody(r, tagType, depth)
		if err != nil {
			return nil, err
		}
		c.entries = append(c.entries, entry{name: name, tag: tag})
	}
}

func readTagBody(r *reader.Reader, tagType byte, depth int) (Tag, error) {
	switch tagType {
	case byteID:
		v, err := r.ReadI8()
		return NewByte(v), err
	case shortID:
		v, err := r.ReadI16()
		return NewShort(v), err
	case intID:
		v, err := r.ReadI32()
		return NewInt(v), err
	case longID:
		v, err := r.ReadI64()
		return NewLong(v), err
	case floatID:
		v, err := r.ReadF32()
		return NewFloat(v), err
	case doubleID:
		v, err := r.ReadF64()
		return NewDouble(v), err
	case byteArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return Tag{}, err
		}
		b, err := r.ReadSlice(int(n))
		if err != nil {
			return Tag{}, err
		}
		return NewByteArray(bytesToInt8s(b)), nil
	case stringID:
		s, err := readMutf8String(r)
		return NewString(s), err
	case listID:
		l, err := readListBody(r, depth+1)
		return NewList(l), err
	case compoundID:
		c, err := readCompoundBody(r, depth+1)
		if err != nil {
			return Tag{}, err
		}
		return NewCompound(c), nil
	case intArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return Tag{}, err
		}
		v := make([]int32, n)
		for i := range v {
			e, err := r.ReadI32()
			if err != nil {
				return Tag{}, err
			}
			v[i] = e
		}
		return NewIntArray(v), nil
	case longArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return Tag{}, err
		}
		v := make([]int64, n)
		for i := range v {
			e, err := r.ReadI64()
			if err != nil {
				return Tag{}, err
			}
			v[i] = e
		}
		return NewLongArray(v), nil
	default:
		return Tag{}, &UnknownTagIDError{ID: tagType}
	}
}

func readListBody(r *reader.Reader, depth int) (List, error) {
	if depth > maxDepth {
		return List{}, &MaxDepthExceededError{}
	}
	elemType, err := r.ReadU8()
	if err != nil {
		return List{}, ErrUnexpectedEOF
	}
	n, err := r.ReadU32()
	if err != nil {
		return List{}, err
	}

	switch elemType {
	case endID:
		return NewEmptyList(), nil
	case byteID:
		v := make([]int8, n)
		for i := range v {
			e, err := r.ReadI8()
			if err != nil {
				return List{}, err
			}
			v[i] = e
		}
		return NewByteList(v), nil
	case shortID:
		v := make([]int16, n)
		for i := range v {
			e, err := r.ReadI16()
			if err != nil {
				return List{}, err
			}
			v[i] = e
		}
		return NewShortList(v), nil
	case intID:
		v := make([]int32, n)
		for i := range v {
			e, err := r.ReadI32()
			if err != nil {
				return List{}, err
			}
			v[i] = e
		}
		return NewIntList(v), nil
	case longID:
		v := make([]int64, n)
		for i := range v {
			e, err := r.ReadI64()
			if err != nil {
				return List{}, err
			}
			v[i] = e
		}
		return NewLongList(v), nil
	case floatID:
		v := make([]float32, n)
		for i := range v {
			e, err := r.ReadF32()
			if err != nil {
				return List{}, err
			}
			v[i] = e
		}
		return NewFloatList(v), nil
	case doubleID:
		v := make([]float64, n)
		for i := range v {
			e, err := r.ReadF64()
			if err != nil {
				return List{}, err
			}
			v[i] = e
		}
		return NewDoubleList(v), nil
	case byteArrayID:
		v := make([][]int8, n)
		for i := range v {
			an, err := r.ReadU32()
			if err != nil {
				return List{}, err
			}
			b, err := r.ReadSlice(int(an))
			if err != nil {
				return List{}, err
			}
			v[i] = bytesToInt8s(b)
		}
		return NewByteArrayList(v), nil
	case stringID:
		v := make([]mutf8.Str, n)
		for i := range v {
			s, err := readMutf8String(r)
			if err != nil {
				return List{}, err
			}
			v[i] = s
		}
		return NewStringList(v), nil
	case listID:
		return readNestedListList(r, n, depth)
	case compoundID:
		v := make([]Compound, n)
		for i := range v {
			c, err := readCompoundBody(r, depth+1)
			if err != nil {
				return List{}, err
			}
			v[i] = *c
		}
		return NewCompoundList(v), nil
	case intArrayID:
		v := make([][]int32, n)
		for i := range v {
			an, err := r.ReadU32()
			if err != nil {
				return List{}, err
			}
			elems := make([]int32, an)
			for j := range elems {
				e, err := r.ReadI32()
				if err != nil {
					return List{}, err
				}
				elems[j] = e
			}
			v[i] = elems
		}
		return NewIntArrayList(v), nil
	case longArrayID:
		v := make([][]int64, n)
		for i := range v {
			an, err := r.ReadU32()
			if err != nil {
				return List{}, err
			}
			elems := make([]int64, an)
			for j := range elems {
				e, err := r.ReadI64()
				if err != nil {
					return List{}, err
				}
				elems[j] = e
			}
			v[i] = elems
		}
		return NewLongArrayList(v), nil
	default:
		return List{}, &UnknownTagIDError{ID: elemType}
	}
}

// readNestedListList reads the n elements of a List of Lists: each
// element is a nested list with its own element-type byte and count, the
// same shape readListBody itself parses, so it recurses directly.
func readNestedListList(r *reader.Reader, n uint32, depth int) (List, error) {
	v := make([]List, n)
	for i := range v {
		l, err := readListBody(r, depth+1)
		if err != nil {
			return List{}, err
		}
		v[i] = l
	}
	return NewListList(v), nil
}

func bytesToInt8s(b []byte) []int8 {
	v := make([]int8, len(b))
	for i, c := range b {
		v[i] = int8(c)
	}
	return v
}
