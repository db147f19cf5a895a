// Package tape implements the packed token stream the borrow decoder
// produces: one uint64 per tag (two for Long and Double), laid out so
// that walking, skipping, and accessing a parsed tree never needs to
// revisit the original bytes except to read leaf payloads that did not
// fit in 56 bits.
//
// Each Element packs a TagKind into its top byte and a kind-specific
// payload into the low 56 bits: a literal value for small fixed-width
// tags, a pointer-sized offset into the original buffer for slices, or
// an approximate child count plus a skip-offset for containers. The
// skip-offset lets a reader jump over an entire compound or list in O(1)
// without walking its contents, which is what makes accessors like
// Compound.Get cheap even on deeply nested trees.
package tape

import (
	"math"

	"github.com/go-nbt/nbt/mutf8"
)

// TagKind identifies what an Element holds. The first eleven values
// line up with the wire tag IDs (there is no tape kind for TAG_End or
// for TAG_List itself); the remainder are tape-only kinds used
// to tag the different shapes a List can take (a list has no single
// wire ID of its own — its element type is carried in-line after the
// List's own ID byte).
type TagKind uint8

const (
	KindByte      TagKind = 1
	KindShort     TagKind = 2
	KindInt       TagKind = 3
	KindLong      TagKind = 4
	KindFloat     TagKind = 5
	KindDouble    TagKind = 6
	KindByteArray TagKind = 7
	KindString    TagKind = 8
	KindCompound  TagKind = 10
	KindIntArray  TagKind = 11
	KindLongArray TagKind = 12

	KindEmptyList     TagKind = 64
	KindByteList      TagKind = 65
	KindShortList     TagKind = 66
	KindIntList       TagKind = 67
	KindLongList      TagKind = 68
	KindFloatList     TagKind = 69
	KindDoubleList    TagKind = 70
	KindByteArrayList TagKind = 71
	KindStringList    TagKind = 72
	KindListList      TagKind = 73
	KindCompoundList  TagKind = 74
	KindIntArrayList  TagKind = 75
	KindLongArrayList TagKind = 76
)

// IsList reports whether kind is one of the tape-only list variants.
func (k TagKind) IsList() bool {
	return k >= KindEmptyList && k <= KindLongArrayList
}

// Element is one packed 64-bit token: top 8 bits are the TagKind, the
// low 56 bits are a kind-specific payload.
type Element uint64

// Kind returns the tag kind packed into e.
func (e Element) Kind() TagKind {
	return TagKind(e >> 56)
}

// U8 returns the low 8 bits of the payload (used for Byte values).
func (e Element) U8() uint8 {
	return uint8(e)
}

// U16 returns the low 16 bits of the payload (used for Short values).
func (e Element) U16() uint16 {
	return uint16(e)
}

// U32 returns the low 32 bits of the payload (used for Int and Float
// values, and as the offset half of a container token).
func (e Element) U32() uint32 {
	return uint32(e)
}

// U64 returns the full 64-bit value, kind byte included; callers that
// need the raw word (the continuation cell of a Long/Double pair) use
// this directly.
func (e Element) U64() uint64 {
	return uint64(e)
}

// Ptr returns the low 56 bits reinterpreted as a buffer offset. Byte
// Array, String, Int Array and Long Array tokens store the start offset
// of their data within the original input here; accessors recover the
// actual slice by re-deriving the length from the bytes preceding it,
// the same contract the original reader used to size the read.
func (e Element) Ptr() uint64 {
	return uint64(e) & 0x00FF_FFFF_FFFF_FFFF
}

// ApproxLenAndOffset splits a container token's payload into its
// saturated, approximate child count (bits 32-55, 24 bits) and its
// skip-offset in tape elements (bits 0-31).
func (e Element) ApproxLenAndOffset() (approxLen uint32, offset uint32) {
	approxLen = uint32(e>>32) & 0x00FF_FFFF
	offset = uint32(e)
	return
}

// maxApproxLen is the largest value ApproxLenAndOffset's length half can
// hold; true lengths beyond this saturate rather than overflow into the
// offset field.
const maxApproxLen = 1<<24 - 1

// NewWithApproxLenAndOffset builds a container Element (Compound,
// ListList, CompoundList). approxLen is saturated to maxApproxLen.
func NewWithApproxLenAndOffset(kind TagKind, approxLen uint32, offset uint32) Element {
	if approxLen > maxApproxLen {
		approxLen = maxApproxLen
	}
	return Element(uint64(kind)<<56 | uint64(approxLen)<<32 | uint64(offset))
}

// SetOffset back-patches the skip-offset of a container token once its
// closing position in the tape is known. This is how Compound/List
// parsing works despite being single-pass: the container token is
// pushed with offset 0 when the container is opened, and corrected here
// when it closes.
func (e *Element) SetOffset(offset uint32) {
	approxLen, _ := e.ApproxLenAndOffset()
	*e = NewWithApproxLenAndOffset(e.Kind(), approxLen, offset)
}

// NewWithU8 builds a leaf Element carrying an 8-bit payload.
func NewWithU8(kind TagKind, v uint8) Element {
	return Element(uint64(kind)<<56 | uint64(v))
}

// NewWithU16 builds a leaf Element carrying a 16-bit payload.
func NewWithU16(kind TagKind, v uint16) Element {
	return Element(uint64(kind)<<56 | uint64(v))
}

// NewWithU32 builds a leaf Element carrying a 32-bit payload.
func NewWithU32(kind TagKind, v uint32) Element {
	return Element(uint64(kind)<<56 | uint64(v))
}

// NewWithPtr builds a leaf Element carrying a 56-bit buffer offset.
func NewWithPtr(kind TagKind, ptr uint64) Element {
	return Element(uint64(kind)<<56 | (ptr & 0x00FF_FFFF_FFFF_FFFF))
}

// NewEmpty builds an Element with only its kind set, everything else
// zero; used for an empty List (KindEmptyList) and as the first cell of
// a two-cell Long/Double pair, whose value goes in the second cell.
func NewEmpty(kind TagKind) Element {
	return Element(uint64(kind) << 56)
}

// NewRaw wraps an already-packed uint64, used for the second cell of a
// Long/Double pair, which stores the full 64-bit value verbatim with no
// kind byte of its own; walkers step over it because SkipOffset on the
// preceding Long/Double header returns 2.
func NewRaw(v uint64) Element {
	return Element(v)
}

// SkipOffset returns how many tape slots to advance to move past this
// element entirely, including any children or continuation cells. The
// caller must know e is a container or leaf tag header, not a
// continuation cell of a preceding Long/Double.
func (e Element) SkipOffset() int {
	switch e.Kind() {
	case KindLong, KindDouble:
		return 2
	case KindCompound, KindListList, KindCompoundList:
		_, offset := e.ApproxLenAndOffset()
		return int(offset)
	default:
		return 1
	}
}

// Float32 reinterprets the low 32 bits as an IEEE-754 single-precision
// float (used for Float values).
func (e Element) Float32() float32 {
	return math.Float32frombits(e.U32())
}

// MainTape is the primary packed-token stream produced by a parse.
// Its zero value is usable; Go slices already grow geometrically, so a
// "seed with spare capacity" idiom is expressed here with an explicit
// make + append rather than a bespoke growth policy.
//
// Names runs parallel to elements: index i of Names holds the field
// name of elements[i] when that element is a direct, named child of a
// compound, and the empty string otherwise (list elements, container
// headers, continuation cells). Keeping it as a plain parallel slice
// rather than packing names into the 64-bit word is the one concession
// this port makes to zero-copy compactness, since MUTF-8 names are
// variable length and do not fit in a fixed-width token; accessors only
// consult it while scanning a compound's direct children; a Compound
// token's array never includes the entries of compounds nested under
// them, so the linear scan this implies is bounded by sibling count, not
// tree size.
type MainTape struct {
	elements []Element
	names    []mutf8.Str
}

// NewMainTape returns a MainTape pre-sized for a typical document, to
// avoid repeated reallocation during the first few hundred tokens.
func NewMainTape() MainTape {
	return MainTape{
		elements: make([]Element, 0, 1024),
		names:    make([]mutf8.Str, 0, 1024),
	}
}

// Push appends an unnamed element (a list element, container header, or
// continuation cell) and returns its index.
func (t *MainTape) Push(e Element) int {
	t.elements = append(t.elements, e)
	t.names = append(t.names, nil)
	return len(t.elements) - 1
}

// PushNamed appends a named element (a direct child of a compound) and
// returns its index.
func (t *MainTape) PushNamed(e Element, name mutf8.Str) int {
	t.elements = append(t.elements, e)
	t.names = append(t.names, name)
	return len(t.elements) - 1
}

// NameAt returns the name associated with element i, or the empty Str
// if i is not a direct compound child.
func (t *MainTape) NameAt(i int) mutf8.Str {
	return t.names[i]
}

// Len returns the number of elements on the tape.
func (t *MainTape) Len() int {
	return len(t.elements)
}

// Get returns the element at index i.
func (t *MainTape) Get(i int) Element {
	return t.elements[i]
}

// Set overwrites the element at index i, used for back-patching
// container offsets once a compound or list closes.
func (t *MainTape) Set(i int, e Element) {
	t.elements[i] = e
}

// Elements exposes the raw backing slice for callers that walk the tape
// directly.
func (t *MainTape) Elements() []Element {
	return t.elements
}

// Extras is the side tape used for list-of-arrays and list-of-strings:
// each such List element points here instead of into the main tape,
// since its children are leaf byte ranges rather than further tape
// tokens.
type Extras struct {
	entries []ExtraEntry
}

// ExtraEntry is one element of a List of Byte Array / String / Int
// Array / Long Array: an offset into the original input plus a length
// (in elements, for numeric arrays; in bytes, for byte arrays/strings).
type ExtraEntry struct {
	Offset uint32
	Length uint32
}

// NewExtras returns an empty Extras table.
func NewExtras() Extras {
	return Extras{}
}

// Push appends an entry and returns its index.
func (ex *Extras) Push(e ExtraEntry) int {
	ex.entries = append(ex.entries, e)
	return len(ex.entries) - 1
}

// Len returns the number of entries.
func (ex *Extras) Len() int {
	return len(ex.entries)
}

// Get returns the entry at index i.
func (ex *Extras) Get(i int) ExtraEntry {
	return ex.entries[i]
}

// Slice returns entries [start:start+count), the contiguous run of
// extras belonging to one list.
func (ex *Extras) Slice(start, count int) []ExtraEntry {
	return ex.entries[start : start+count]
}
