// Package nbtproto expresses the contract a generated or hand-written
// struct type implements to read itself directly out of an NBT compound,
// without first materializing a generic tree. It does not generate that
// code: callers write (or a separate tool generates) a type satisfying
// these interfaces, and ReadPartial drives the grammar on its behalf,
// skipping any field the type does not recognize.
package nbtproto

import (
	"fmt"

	"github.com/go-nbt/nbt/internal/reader"
	"github.com/go-nbt/nbt/mutf8"
)

const (
	endID       = 0x00
	byteID      = 0x01
	shortID     = 0x02
	intID       = 0x03
	longID      = 0x04
	floatID     = 0x05
	doubleID    = 0x06
	byteArrayID = 0x07
	stringID    = 0x08
	listID      = 0x09
	compoundID  = 0x0A
	intArrayID  = 0x0B
	longArrayID = 0x0C
)

// Cursor is the read surface ReadValueDirect and UpdatePartial
// implementations use to consume one tag's bytes, without exposing the
// underlying grammar machinery.
type Cursor struct {
	r *reader.Reader
}

func (c *Cursor) ReadByte() (int8, error)     { return c.r.ReadI8() }
func (c *Cursor) ReadShort() (int16, error)   { return c.r.ReadI16() }
func (c *Cursor) ReadInt() (int32, error)     { return c.r.ReadI32() }
func (c *Cursor) ReadLong() (int64, error)    { return c.r.ReadI64() }
func (c *Cursor) ReadFloat() (float32, error) { return c.r.ReadF32() }
func (c *Cursor) ReadDouble() (float64, error) {
	return c.r.ReadF64()
}

// ReadString reads an NBT string field into a freshly-allocated,
// independently-owned mutf8.Str (the cursor's underlying buffer is not
// guaranteed to outlive the call the way the root package's borrowed
// accessors assume).
func (c *Cursor) ReadString() (mutf8.Str, error) {
	n, err := c.r.ReadU16()
	if err != nil {
		return nil, err
	}
	b, err := c.r.ReadSlice(int(n))
	if err != nil {
		return nil, err
	}
	return mutf8.FromBytes(append([]byte(nil), b...)), nil
}

// ReadByteArray reads a length-prefixed Byte Array into an owned slice.
func (c *Cursor) ReadByteArray() ([]byte, error) {
	n, err := c.r.ReadU32()
	if err != nil {
		return nil, err
	}
	b, err := c.r.ReadSlice(int(n))
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// ReadIntArray reads a length-prefixed Int Array into an owned slice.
func (c *Cursor) ReadIntArray() ([]int32, error) {
	n, err := c.r.ReadU32()
	if err != nil {
		return nil, err
	}
	v := make([]int32, n)
	for i := range v {
		e, err := c.r.ReadI32()
		if err != nil {
			return nil, err
		}
		v[i] = e
	}
	return v, nil
}

// ReadLongArray reads a length-prefixed Long Array into an owned slice.
func (c *Cursor) ReadLongArray() ([]int64, error) {
	n, err := c.r.ReadU32()
	if err != nil {
		return nil, err
	}
	v := make([]int64, n)
	for i := range v {
		e, err := c.r.ReadI64()
		if err != nil {
			return nil, err
		}
		v[i] = e
	}
	return v, nil
}

// ReadCompoundInto drives dst's UpdatePartial for every field of the
// compound body at the cursor's current position, skipping any field
// dst does not recognize, then calls dst.FromPartial.
func (c *Cursor) ReadCompoundInto(dst interface {
	PartialUpdater
	PartialFinalizer
}) error {
	if err := readCompoundFields(c.r, dst); err != nil {
		return err
	}
	return dst.FromPartial()
}

// Reader is implemented by a type that knows how to decode its own
// value directly from a tag body of a fixed, self-declared kind (used
// for list elements and other contexts where the tag id is already
// known out of band).
type Reader interface {
	// NBTTypeID returns the wire tag id this type reads itself from.
	NBTTypeID() byte
	// ReadValueDirect consumes exactly one value of that kind from c.
	ReadValueDirect(c *Cursor) error
}

// PartialUpdater is implemented by a struct type driven field-by-field
// by ReadPartial/ReadCompoundInto: for each field the compound grammar
// encounters, UpdatePartial is offered the chance to consume it.
type PartialUpdater interface {
	// UpdatePartial is called once per compound field, in wire order.
	// It returns handled=true if it consumed the field's value itself
	// (via c); the driver skips the field's bytes unread otherwise, so
	// an unhandled field must not partially consume c.
	UpdatePartial(name mutf8.Str, kind byte, c *Cursor) (handled bool, err error)
}

// PartialFinalizer is implemented by a struct type that needs a chance
// to validate itself (e.g. required-field presence) once every field of
// its compound has been offered to UpdatePartial.
type PartialFinalizer interface {
	FromPartial() error
}

// TypeMatcher is implemented by a type whose UpdatePartial only accepts
// a field if its wire kind matches what the type expects. Neither
// ReadPartial nor Cursor.ReadCompoundInto calls TypeMatches; a kind
// mismatch is reported only by whatever error UpdatePartial itself
// returns.
type TypeMatcher interface {
	TypeMatches(kind byte) bool
}

// FlattenOptional collapses a double-optional value (a field that is
// itself optional, read through an accessor that is also optional) down
// to a single level, the idiomatic Go substitute for the nested-Option
// case a generated reader would otherwise need a special case for: a nil
// outer pointer, or a non-nil outer pointing at a nil inner, both
// flatten to nil.
func FlattenOptional[T any](pp **T) *T {
	if pp == nil || *pp == nil {
		return nil
	}
	return *pp
}

// ReadPartial parses data as a named root compound (the same wire shape
// Read expects) and drives dst's UpdatePartial once per field, skipping
// whatever dst does not claim.
func ReadPartial(data []byte, dst interface {
	PartialUpdater
	PartialFinalizer
}) error {
	r := reader.New(data)
	rootType, err := r.ReadU8()
	if err != nil {
		return reader.ErrUnexpectedEOF
	}
	if rootType != compoundID {
		return &MismatchedFieldTypeError{Field: "<root>", Want: compoundID, Got: rootType}
	}
	if _, err := (&Cursor{r: &r}).ReadString(); err != nil {
		return err
	}
	if err := readCompoundFields(&r, dst); err != nil {
		return err
	}
	return dst.FromPartial()
}

func readCompoundFields(r *reader.Reader, dst PartialUpdater) error {
	for {
		kind, err := r.ReadU8()
		if err != nil {
			return reader.ErrUnexpectedEOF
		}
		if kind == endID {
			return nil
		}
		n, err := r.ReadU16()
		if err != nil {
			return err
		}
		nameBytes, err := r.ReadSlice(int(n))
		if err != nil {
			return err
		}
		name := mutf8.FromBytes(nameBytes)

		handled, err := dst.UpdatePartial(name, kind, &Cursor{r: r})
		if err != nil {
			return err
		}
		if !handled {
			if err := skipTagBody(r, kind); err != nil {
				return err
			}
		}
	}
}

// MissingFieldError reports that FromPartial found a required field was
// never supplied by UpdatePartial.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("nbtproto: missing required field %q", e.Field)
}

// MismatchedFieldTypeError reports that a field was present but its
// wire kind did not match what the destination type expected.
type MismatchedFieldTypeError struct {
	Field string
	Want  byte
	Got   byte
}

func (e *MismatchedFieldTypeError) Error() string {
	return fmt.Sprintf("nbtproto: field %q: want tag kind %#02x, got %#02x", e.Field, e.Want, e.Got)
}

// UnknownFieldError reports a field name an UpdatePartial implementation
// chose to reject outright rather than silently skip.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("nbtproto: unknown field %q", e.Field)
}

// MismatchedListTypeError reports a List field whose element kind did
// not match what the destination slice field expected.
type MismatchedListTypeError struct {
	Field string
	Want  byte
	Got   byte
}

func (e *MismatchedListTypeError) Error() string {
	return fmt.Sprintf("nbtproto: list field %q: want element kind %#02x, got %#02x", e.Field, e.Want, e.Got)
}
