package nbt

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/go-nbt/nbt/internal/pstack"
	"github.com/go-nbt/nbt/internal/reader"
	"github.com/go-nbt/nbt/mutf8"
	"github.com/go-nbt/nbt/tape"
)

// Options configures a single Read/ReadOptions call. The zero value is
// not ready to use; call DefaultOptions and override what you need.
type Options struct {
	// Logger receives one structured event for each terminal failure a
	// caller would want to correlate with a specific input: an invalid
	// root type or a max-depth abort. It is never consulted on the
	// success path, so it has no effect on decode throughput.
	Logger zerolog.Logger
	// MaxDepth overrides internal/pstack.MaxDepth downward, letting
	// tests exercise the depth limit without constructing genuinely
	// deep input. Zero (the default) means "use the compiled-in limit."
	MaxDepth int
	// Unnamed, when true, parses the root compound without the name
	// field Read expects, the form used on Minecraft's network
	// protocol.
	Unnamed bool
}

// DefaultOptions returns the Options Read and ReadUnnamed use: no
// logging, the compiled-in depth limit.
func DefaultOptions() Options {
	return Options{Logger: zerolog.Nop()}
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 || o.MaxDepth > pstack.MaxDepth {
		return pstack.MaxDepth
	}
	return o.MaxDepth
}

// Read parses a complete NBT document from data. The returned Nbt
// borrows slices of data directly for every string and array payload;
// data must outlive the returned value and must not be mutated while it
// is in use.
//
// Read returns Nbt{present: false} (no error) for a document that is
// exactly one TAG_End byte, the wire representation of "nothing here".
func Read(data []byte) (Nbt, error) {
	return ReadOptions(data, DefaultOptions())
}

// ReadUnnamed parses a document the same way Read does, except that no
// name is read after the root tag byte: the bytes immediately following
// the root TAG_Compound (or TAG_End) byte are the compound's own
// entries. This is the form used by contexts that transmit NBT without
// a name, such as Minecraft's network protocol.
func ReadUnnamed(data []byte) (Nbt, error) {
	opts := DefaultOptions()
	opts.Unnamed = true
	return ReadOptions(data, opts)
}

// ReadOptions parses a complete NBT document from data the way Read
// does, with behavior overridden by opts instead of hidden package
// state.
func ReadOptions(data []byte, opts Options) (Nbt, error) {
	r := reader.New(data)
	rootType, err := r.ReadU8()
	if err != nil {
		return Nbt{}, ErrUnexpectedEOF
	}
	if rootType == endID {
		return Nbt{}, nil
	}
	if rootType != compoundID {
		opts.Logger.Warn().Int("root_type", int(rootType)).Msg("nbt: invalid root tag type")
		return Nbt{}, &InvalidRootTypeError{ID: rootType}
	}

	var name mutf8.Str
	if !opts.Unnamed {
		name, err = readMutf8String(&r)
		if err != nil {
			return Nbt{}, err
		}
	}

	doc, root, err := decodeRootCompound(&r, data, opts)
	if err != nil {
		return Nbt{}, err
	}

	return Nbt{present: true, base: BaseNbt{doc: doc, name: name, root: root}}, nil
}

// readMutf8String reads NBT's string encoding: a big-endian uint16
// byte-length prefix followed by that many MUTF-8 bytes, returned
// without copying.
func readMutf8String(r *reader.Reader) (mutf8.Str, error) {
	b, err := r.ReadWithU16Length(1)
	if err != nil {
		return nil, ErrUnexpectedEOF
	}
	return mutf8.FromBytes(b), nil
}

// decodeRootCompound drives the iterative parse of the root compound's
// body (and everything nested under it) using a bounded stack instead
// of recursion, producing the tape and extras tables a document's
// accessors read from.
func decodeRootCompound(r *reader.Reader, data []byte, opts Options) (*document, int, error) {
	mt := tape.NewMainTape()
	ex := tape.NewExtras()
	st := pstack.New()

	root := mt.PushNamed(tape.NewWithApproxLenAndOffset(tape.KindCompound, 0, 0), nil)
	if err := pushFrame(&st, pstack.Frame{Kind: pstack.FrameCompound, TapeIndex: root}, opts); err != nil {
		return nil, 0, err
	}

	for !st.Empty() {
		top := st.Top()
		switch top.Kind {
		case pstack.FrameCompound:
			if err := stepCompound(&mt, &ex, r, &st, opts); err != nil {
				return nil, 0, err
			}
		case pstack.FrameListOfCompounds:
			top.Remaining--
			idx := mt.PushNamed(tape.NewWithApproxLenAndOffset(tape.KindCompound, 0, 0), nil)
			if err := pushFrame(&st, pstack.Frame{Kind: pstack.FrameCompound, TapeIndex: idx}, opts); err != nil {
				return nil, 0, err
			}
		case pstack.FrameListOfLists:
			top.Remaining--
			if err := pushListToken(&mt, &ex, r, &st, nil, opts); err != nil {
				return nil, 0, err
			}
			if err := closeExhaustedLists(&mt, &st); err != nil {
				return nil, 0, err
			}
		}
	}

	return &document{data: data, tape: mt, extras: ex}, root, nil
}

// pushFrame pushes f onto st, translating the internal max-depth
// sentinel into the package's own MaxDepthExceededError so callers never
// need to import internal/pstack to recognize it, and enforcing opts'
// (possibly lowered) depth limit on top of the compiled-in one.
func pushFrame(st *pstack.Stack, f pstack.Frame, opts Options) error {
	if st.Depth() >= opts.maxDepth() {
		opts.Logger.Warn().Int("depth", st.Depth()).Msg("nbt: max depth exceeded")
		return &MaxDepthExceededError{}
	}
	if err := st.Push(f); err != nil {
		opts.Logger.Warn().Int("depth", st.Depth()).Msg("nbt: max depth exceeded")
		return &MaxDepthExceededError{}
	}
	return nil
}

// stepCompound processes one tag of the compound currently on top of
// the stack: either TAG_End, closing it (and cascading into any list of
// compounds/lists this was the last pending element of), or a name plus
// a tag body.
func stepCompound(mt *tape.MainTape, ex *tape.Extras, r *reader.Reader, st *pstack.Stack, opts Options) error {
	tagType, err := r.ReadU8()
	if err != nil {
		return ErrUnexpectedEOF
	}
	if tagType == endID {
		closeTop(mt, st)
		return closeExhaustedLists(mt, st)
	}

	name, err := readMutf8String(r)
	if err != nil {
		return err
	}
	return readNamedTag(mt, ex, r, st, tagType, name, opts)
}

// closeTop back-patches the skip-offset of the container whose frame is
// on top of the stack, then pops it.
func closeTop(mt *tape.MainTape, st *pstack.Stack) pstack.Frame {
	f := st.Pop()
	e := mt.Get(f.TapeIndex)
	e.SetOffset(uint32(mt.Len() - f.TapeIndex))
	mt.Set(f.TapeIndex, e)
	return f
}

// closeExhaustedLists closes every list-of-compounds/list-of-lists
// frame on top of the stack whose Remaining has reached zero, cascading
// upward: closing one such frame may itself be the last pending element
// of its own enclosing list.
func closeExhaustedLists(mt *tape.MainTape, st *pstack.Stack) error {
	for !st.Empty() {
		top := st.Top()
		if top.Kind == pstack.FrameCompound {
			return nil
		}
		if top.Remaining > 0 {
			return nil
		}
		closeTop(mt, st)
	}
	return nil
}

// readNamedTag reads the body of a single named tag (a compound's
// direct child) and pushes its token onto the tape, opening a new stack
// frame when the tag is itself a compound or a non-empty list of
// compounds/lists.
func readNamedTag(mt *tape.MainTape, ex *tape.Extras, r *reader.Reader, st *pstack.Stack, tagType byte, name mutf8.Str, opts Options) error {
	switch tagType {
	case byteID:
		v, err := r.ReadI8()
		if err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithU8(tape.KindByte, uint8(v)), name)
	case shortID:
		v, err := r.ReadI16()
		if err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithU16(tape.KindShort, uint16(v)), name)
	case intID:
		v, err := r.ReadI32()
		if err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithU32(tape.KindInt, uint32(v)), name)
	case longID:
		v, err := r.ReadI64()
		if err != nil {
			return err
		}
		mt.PushNamed(tape.NewEmpty(tape.KindLong), name)
		mt.Push(tape.NewRaw(uint64(v)))
	case floatID:
		v, err := r.ReadF32()
		if err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithU32(tape.KindFloat, float32Bits(v)), name)
	case doubleID:
		v, err := r.ReadF64()
		if err != nil {
			return err
		}
		mt.PushNamed(tape.NewEmpty(tape.KindDouble), name)
		mt.Push(tape.NewRaw(float64Bits(v)))
	case byteArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		start := r.Pos()
		if _, err := r.ReadSlice(int(n)); err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithPtr(tape.KindByteArray, uint64(start)), name)
	case stringID:
		s, err := readMutf8String(r)
		if err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithPtr(tape.KindString, uint64(bytePos(r, s))), name)
	case listID:
		return pushListToken(mt, ex, r, st, name, opts)
	case compoundID:
		idx := mt.PushNamed(tape.NewWithApproxLenAndOffset(tape.KindCompound, 0, 0), name)
		return pushFrame(st, pstack.Frame{Kind: pstack.FrameCompound, TapeIndex: idx}, opts)
	case intArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		start := r.Pos()
		if err := r.Skip(int(n) * 4); err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithPtr(tape.KindIntArray, uint64(start)), name)
	case longArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		start := r.Pos()
		if err := r.Skip(int(n) * 8); err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithPtr(tape.KindLongArray, uint64(start)), name)
	default:
		return &UnknownTagIDError{ID: tagType}
	}
	return nil
}

// pushListToken reads a List's element-type byte and body, and pushes
// the resulting token. Lists of compounds or lists with at least one
// element open a new stack frame for their first child; empty lists of
// either kind close immediately since no element will ever decrement
// their Remaining counter.
func pushListToken(mt *tape.MainTape, ex *tape.Extras, r *reader.Reader, st *pstack.Stack, name mutf8.Str, opts Options) error {
	elemType, err := r.ReadU8()
	if err != nil {
		return ErrUnexpectedEOF
	}

	switch elemType {
	case endID:
		if err := r.Skip(4); err != nil {
			return err
		}
		mt.PushNamed(tape.NewEmpty(tape.KindEmptyList), name)
		return nil
	case byteID, shortID, intID, floatID, longID, doubleID:
		width := map[byte]int{byteID: 1, shortID: 2, intID: 4, floatID: 4, longID: 8, doubleID: 8}[elemType]
		kind := map[byte]tape.TagKind{
			byteID: tape.KindByteList, shortID: tape.KindShortList, intID: tape.KindIntList,
			floatID: tape.KindFloatList, longID: tape.KindLongList, doubleID: tape.KindDoubleList,
		}[elemType]
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		start := r.Pos()
		if err := r.Skip(int(n) * width); err != nil {
			return err
		}
		mt.PushNamed(tape.NewWithPtr(kind, uint64(start)), name)
		return nil
	case byteArrayID:
		return pushArrayOfArraysList(mt, ex, r, name, tape.KindByteArrayList, readByteArrayExtra)
	case stringID:
		return pushArrayOfArraysList(mt, ex, r, name, tape.KindStringList, readStringExtra)
	case intArrayID:
		return pushArrayOfArraysList(mt, ex, r, name, tape.KindIntArrayList, readIntArrayExtra)
	case longArrayID:
		return pushArrayOfArraysList(mt, ex, r, name, tape.KindLongArrayList, readLongArrayExtra)
	case listID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		idx := mt.PushNamed(tape.NewWithApproxLenAndOffset(tape.KindListList, n, 0), name)
		if n == 0 {
			closeEmptyContainer(mt, idx)
			return nil
		}
		return pushFrame(st, pstack.Frame{Kind: pstack.FrameListOfLists, TapeIndex: idx, Remaining: int(n)}, opts)
	case compoundID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		idx := mt.PushNamed(tape.NewWithApproxLenAndOffset(tape.KindCompoundList, n, 0), name)
		if n == 0 {
			closeEmptyContainer(mt, idx)
			return nil
		}
		return pushFrame(st, pstack.Frame{Kind: pstack.FrameListOfCompounds, TapeIndex: idx, Remaining: int(n)}, opts)
	default:
		return &UnknownTagIDError{ID: elemType}
	}
}

// closeEmptyContainer back-patches a zero-length List of Lists or List
// of Compounds container, whose skip-offset is always exactly 1 (itself
// and nothing else) since it never gets a stack frame to close it.
func closeEmptyContainer(mt *tape.MainTape, idx int) {
	e := mt.Get(idx)
	e.SetOffset(1)
	mt.Set(idx, e)
}

// pushArrayOfArraysList reads a List of Byte Array, String, Int Array,
// or Long Array: a count followed by that many independently
// length-prefixed elements, each recorded in the extras side tape since
// they are leaf byte ranges rather than further tape tokens.
func pushArrayOfArraysList(mt *tape.MainTape, ex *tape.Extras, r *reader.Reader, name mutf8.Str, kind tape.TagKind, readOne func(*reader.Reader) (tape.ExtraEntry, error)) error {
	n, err := r.ReadU32()
	if err != nil {
		return err
	}
	start := ex.Len()
	for i := uint32(0); i < n; i++ {
		entry, err := readOne(r)
		if err != nil {
			return err
		}
		ex.Push(entry)
	}
	mt.PushNamed(tape.NewWithApproxLenAndOffset(kind, n, uint32(start)), name)
	return nil
}

func readByteArrayExtra(r *reader.Reader) (tape.ExtraEntry, error) {
	n, err := r.ReadU32()
	if err != nil {
		return tape.ExtraEntry{}, err
	}
	start := r.Pos()
	if _, err := r.ReadSlice(int(n)); err != nil {
		return tape.ExtraEntry{}, err
	}
	return tape.ExtraEntry{Offset: uint32(start), Length: n}, nil
}

func readStringExtra(r *reader.Reader) (tape.ExtraEntry, error) {
	n, err := r.ReadU16()
	if err != nil {
		return tape.ExtraEntry{}, err
	}
	start := r.Pos()
	if _, err := r.ReadSlice(int(n)); err != nil {
		return tape.ExtraEntry{}, err
	}
	return tape.ExtraEntry{Offset: uint32(start), Length: uint32(n)}, nil
}

func readIntArrayExtra(r *reader.Reader) (tape.ExtraEntry, error) {
	n, err := r.ReadU32()
	if err != nil {
		return tape.ExtraEntry{}, err
	}
	start := r.Pos()
	if err := r.Skip(int(n) * 4); err != nil {
		return tape.ExtraEntry{}, err
	}
	return tape.ExtraEntry{Offset: uint32(start), Length: n}, nil
}

func readLongArrayExtra(r *reader.Reader) (tape.ExtraEntry, error) {
	n, err := r.ReadU32()
	if err != nil {
		return tape.ExtraEntry{}, err
	}
	start := r.Pos()
	if err := r.Skip(int(n) * 8); err != nil {
		return tape.ExtraEntry{}, err
	}
	return tape.ExtraEntry{Offset: uint32(start), Length: n}, nil
}

// bytePos recovers the absolute offset of a string slice within the
// reader's buffer, used to store just the offset on the tape rather
// than a full slice header.
func bytePos(r *reader.Reader, s mutf8.Str) int {
	return r.Pos() - len(s)
}

func float32Bits(f float32) uint32 { return math.Float32bits(f) }
func float64Bits(f float64) uint64 { return math.Float64bits(f) }
