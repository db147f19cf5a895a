// Package rawlist implements the borrowed numeric array view used for
// NBT's Int Array and Long Array tags (and the primitive-list variants
// of List): a slice of big-endian bytes is kept as-is, and is only
// converted to the host's native byte order on demand, via a width-
// dispatched byte-swap kernel.
//
// NBT always stores fixed-width integers big-endian on the wire. Most
// hosts today are little-endian, so every element of an Int Array or
// Long Array needs its bytes reversed before arithmetic on it is
// meaningful. Doing that reversal eagerly while parsing would force an
// allocation and a full pass over every array in the tree, even for
// arrays the caller never reads. RawList instead holds the wire bytes
// untouched until ToNativeVec (or Get) is called.
package rawlist

import (
	"math"

	"github.com/klauspost/cpuid/v2"
)

// RawList is a borrowed view over a big-endian array of fixed-width
// integers, still in wire byte order.
type RawList[T Swappable] struct {
	data []byte // big-endian bytes, length is a multiple of the element width
}

// Swappable constrains the element types a RawList can hold: every
// fixed-width numeric NBT stores as an array element.
type Swappable interface {
	~int16 | ~int32 | ~int64 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// New wraps data (big-endian bytes, already validated to be a whole
// number of elements) as a RawList of T.
func New[T Swappable](data []byte) RawList[T] {
	return RawList[T]{data: data}
}

func elemSize[T Swappable]() int {
	var zero T
	switch any(zero).(type) {
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	default:
		return 0
	}
}

// Len returns the number of elements.
func (l RawList[T]) Len() int {
	sz := elemSize[T]()
	if sz == 0 {
		return 0
	}
	return len(l.data) / sz
}

// IsEmpty reports whether the list has zero elements.
func (l RawList[T]) IsEmpty() bool {
	return len(l.data) == 0
}

// AsBigEndian returns the underlying bytes exactly as stored on the
// wire, without copying. This is the fast path the writer uses to
// re-emit an untouched array.
func (l RawList[T]) AsBigEndian() []byte {
	return l.data
}

// ToNativeVec allocates a new []T with every element converted from
// big-endian wire order to the host's native byte order.
func (l RawList[T]) ToNativeVec() []T {
	n := l.Len()
	out := make([]T, n)
	sz := elemSize[T]()
	swapped := make([]byte, len(l.data))
	copy(swapped, l.data)
	SwapEndiannessInPlace(swapped, sz)
	for i := 0; i < n; i++ {
		out[i] = decodeNative[T](swapped[i*sz : (i+1)*sz])
	}
	return out
}

// Get returns the i'th element, converted to native byte order. It is
// O(1) in width but does not amortize across repeated calls the way
// ToNativeVec does; prefer ToNativeVec when reading most of the list.
func (l RawList[T]) Get(i int) T {
	sz := elemSize[T]()
	be := l.data[i*sz : (i+1)*sz : (i+1)*sz]
	tmp := make([]byte, sz)
	copy(tmp, be)
	SwapEndiannessInPlace(tmp, sz)
	return decodeNative[T](tmp)
}

// lowestLaneWidth reports the widest swap lane the host can use for the
// given element width, as reported by runtime CPU feature detection.
// Go has no portable SIMD intrinsic surface, so this only selects how
// many bytes the manual cascade below unrolls per iteration; the actual
// swap is always done with ordinary Go loops.
func lowestLaneWidth(elemWidth int) int {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX2):
		return 32
	case cpuid.CPU.Supports(cpuid.SSE2), cpuid.CPU.Supports(cpuid.ASIMD):
		return 16
	default:
		return elemWidth
	}
}

// SwapEndiannessInPlace reverses the byte order of every elemWidth-sized
// element of data, in place. It mirrors the lane-cascade structure of a
// SIMD byte-swap kernel: wide groups of elements are swapped together
// first, with a scalar tail handling whatever does not divide evenly
// into the chosen lane width. On a big-endian host this is a no-op only
// at the type level (see SwapEndiannessAsU8); the swap itself is always
// performed, since Go provides no compile-time host-endianness switch.
func SwapEndiannessInPlace(data []byte, elemWidth int) {
	if elemWidth <= 1 {
		return
	}
	lane := lowestLaneWidth(elemWidth)
	elemsPerLane := lane / elemWidth
	if elemsPerLane < 1 {
		elemsPerLane = 1
	}
	groupBytes := elemsPerLane * elemWidth

	i := 0
	for ; i+groupBytes <= len(data); i += groupBytes {
		swapGroup(data[i:i+groupBytes], elemWidth)
	}
	for ; i+elemWidth <= len(data); i += elemWidth {
		swapOne(data[i : i+elemWidth])
	}
}

// swapGroup reverses the byte order of each elemWidth-sized element in
// a lane-sized group. The loop is structured so the compiler can unroll
// it the way a SIMD swizzle would, one element at a time rather than
// byte at a time.
func swapGroup(group []byte, elemWidth int) {
	for off := 0; off+elemWidth <= len(group); off += elemWidth {
		swapOne(group[off : off+elemWidth])
	}
}

// swapOne reverses a single element's bytes in place.
func swapOne(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// SwapEndiannessAsU8 returns a new byte slice with every elemWidth-sized
// element's byte order reversed, leaving data untouched. It is the
// allocating counterpart to SwapEndiannessInPlace, used when the caller
// must not mutate borrowed wire bytes (for example, the writer reusing a
// big-endian array it does not own).
func SwapEndiannessAsU8(data []byte, elemWidth int) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	SwapEndiannessInPlace(out, elemWidth)
	return out
}

func decodeNative[T Swappable](b []byte) T {
	var zero T
	switch any(zero).(type) {
	case int16:
		return any(int16(nativeUint16(b))).(T)
	case uint16:
		return any(nativeUint16(b)).(T)
	case int32:
		return any(int32(nativeUint32(b))).(T)
	case uint32:
		return any(nativeUint32(b)).(T)
	case float32:
		return any(float32FromBits(nativeUint32(b))).(T)
	case int64:
		return any(int64(nativeUint64(b))).(T)
	case uint64:
		return any(nativeUint64(b)).(T)
	case float64:
		return any(float64FromBits(nativeUint64(b))).(T)
	default:
		panic("rawlist: unsupported element type")
	}
}

// nativeUint16/32/64 decode b, which has already had its byte order
// reversed by SwapEndiannessInPlace, as a little-endian value. Reading
// it explicitly this way (rather than reinterpreting the bytes with
// unsafe) gives the correct numeric value on any host regardless of its
// actual byte order, so no runtime host-endianness branch is needed.
func nativeUint16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func nativeUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func nativeUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }
func float64FromBits(b uint64) float64 { return math.Float64frombits(b) }
