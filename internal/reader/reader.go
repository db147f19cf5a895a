// Package reader implements an unaligned, bounds-checked big-endian
// cursor over a byte slice. It exists instead of bytes.Reader /
// encoding/binary.Read because the hot decode path reads one primitive
// at a time, often millions of times per document, and every read needs
// to hand back a zero-copy slice for strings and arrays rather than a
// fresh allocation.
package reader

import (
	"errors"
	"math"
)

// ErrUnexpectedEOF is returned whenever a read or skip would run past the
// end of the underlying buffer.
var ErrUnexpectedEOF = errors.New("nbt: unexpected end of input")

// Reader is a cursor over a borrowed byte slice. The zero value is not
// usable; construct one with New.
type Reader struct {
	data []byte
	pos  int
}

// New wraps data for reading from the beginning.
func New(data []byte) Reader {
	return Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ensureCanRead reports whether n more bytes can be read without going
// past the end of the buffer.
func (r *Reader) ensureCanRead(n int) bool {
	return r.pos+n <= len(r.data)
}

// PeekU8 returns the next byte without advancing the cursor.
func (r *Reader) PeekU8() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	return r.data[r.pos], nil
}

// ReadU8 reads and consumes one byte.
func (r *Reader) ReadU8() (byte, error) {
	if !r.ensureCanRead(1) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadI8 reads one byte as a signed NBT Byte.
func (r *Reader) ReadI8() (int8, error) {
	b, err := r.ReadU8()
	return int8(b), err
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	if !r.ensureCanRead(2) {
		return 0, ErrUnexpectedEOF
	}
	v := uint16(r.data[r.pos])<<8 | uint16(r.data[r.pos+1])
	r.pos += 2
	return v, nil
}

// ReadI16 reads a big-endian int16 (NBT Short).
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	if !r.ensureCanRead(4) {
		return 0, ErrUnexpectedEOF
	}
	d := r.data[r.pos : r.pos+4 : r.pos+4]
	v := uint32(d[0])<<24 | uint32(d[1])<<16 | uint32(d[2])<<8 | uint32(d[3])
	r.pos += 4
	return v, nil
}

// ReadI32 reads a big-endian int32 (NBT Int).
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads a big-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	if !r.ensureCanRead(8) {
		return 0, ErrUnexpectedEOF
	}
	d := r.data[r.pos : r.pos+8 : r.pos+8]
	v := uint64(d[0])<<56 | uint64(d[1])<<48 | uint64(d[2])<<40 | uint64(d[3])<<32 |
		uint64(d[4])<<24 | uint64(d[5])<<16 | uint64(d[6])<<8 | uint64(d[7])
	r.pos += 8
	return v, nil
}

// ReadI64 reads a big-endian int64 (NBT Long).
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads a big-endian IEEE-754 single-precision float (NBT Float).
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads a big-endian IEEE-754 double-precision float (NBT Double).
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) error {
	if !r.ensureCanRead(n) {
		return ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

// ReadSlice returns the next n bytes as a slice into the original
// buffer, without copying, and advances the cursor past them.
func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if !r.ensureCanRead(n) {
		return nil, ErrUnexpectedEOF
	}
	s := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return s, nil
}

// ReadWithU16Length reads a big-endian uint16 length prefix followed by
// length*width bytes, returned as a zero-copy slice.
func (r *Reader) ReadWithU16Length(width int) ([]byte, error) {
	length, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	return r.ReadSlice(int(length) * width)
}

// ReadWithU32Length reads a big-endian uint32 length prefix followed by
// length*width bytes, returned as a zero-copy slice.
func (r *Reader) ReadWithU32Length(width int) ([]byte, error) {
	length, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if length > uint32(r.Remaining())/uint32(max(width, 1)) {
		return nil, ErrUnexpectedEOF
	}
	return r.ReadSlice(int(length) * width)
}

// Pos returns the current byte offset into the underlying buffer, for
// callers (the decoder) that record where a payload starts so the tape
// can point back into the input.
func (r *Reader) Pos() int {
	return r.pos
}
