package owned

import (
	"bytes"
	"io"
	"math"
)

// Write re-serializes n to its wire form: a single TAG_End byte if n is
// absent, or the named root compound's bytes if present.
func (n Nbt) Write() []byte {
	var buf bytes.Buffer
	if n.IsNone() {
		buf.WriteByte(endID)
		return buf.Bytes()
	}
	buf.WriteByte(compoundID)
	writeMutf8Field(&buf, n.name)
	writeCompoundBody(&buf, n.root)
	return buf.Bytes()
}

// WriteTo writes n's wire form to w, following the io.WriterTo
// convention.
func (n Nbt) WriteTo(w io.Writer) (int64, error) {
	nw, err := w.Write(n.Write())
	return int64(nw), err
}

func writeMutf8Field(buf *bytes.Buffer, s []byte) {
	buf.WriteByte(byte(len(s) >> 8))
	buf.WriteByte(byte(len(s)))
	buf.Write(s)
}

// writeCompoundBody writes every field of c as (tag id, name, value),
// in insertion order, followed by TAG_End. A field whose value is the
// KindEnd placeholder Take leaves behind is skipped: there is no wire
// encoding for "a field with no value," so a taken-but-not-replaced
// field is simply absent from the output.
func writeCompoundBody(buf *bytes.Buffer, c *Compound) {
	for _, e := range c.entries {
		if e.tag.kind == KindEnd {
			continue
		}
		buf.WriteByte(wireIDFor(e.tag.kind))
		writeMutf8Field(buf, e.name)
		writeTagValue(buf, e.tag)
	}
	buf.WriteByte(endID)
}

func wireIDFor(k Kind) byte {
	switch k {
	case KindByte:
		return byteID
	case KindShort:
		return shortID
	case KindInt:
		return intID
	case KindLong:
		return longID
	case KindFloat:
		return floatID
	case KindDouble:
		return doubleID
	case KindByteArray:
		return byteArrayID
	case KindString:
		return stringID
	case KindList:
		return listID
	case KindCompound:
		return compoundID
	case KindIntArray:
		return intArrayID
	case KindLongArray:
		return longArrayID
	default:
		return endID
	}
}

func writeTagValue(buf *bytes.Buffer, t Tag) {
	switch t.kind {
	case KindByte:
		buf.WriteByte(byte(t.i64))
	case KindShort:
		writeU16(buf, uint16(t.i64))
	case KindInt:
		writeU32(buf, uint32(t.i64))
	case KindLong:
		writeU64(buf, uint64(t.i64))
	case KindFloat:
		writeU32(buf, uint32(t.f64))
	case KindDouble:
		writeU64(buf, t.f64)
	case KindByteArray:
		writeU32(buf, uint32(len(t.byteArray)))
		for _, b := range t.byteArray {
			buf.WriteByte(byte(b))
		}
	case KindString:
		writeMutf8Field(buf, t.str)
	case KindList:
		writeListValue(buf, t.list)
	case KindCompound:
		writeCompoundBody(buf, t.compound)
	case KindIntArray:
		writeU32(buf, uint32(len(t.intArray)))
		for _, v := range t.intArray {
			writeU32(buf, uint32(v))
		}
	case KindLongArray:
		writeU32(buf, uint32(len(t.longArray)))
		for _, v := range t.longArray {
			writeU64(buf, uint64(v))
		}
	}
}

// writeListValue writes a List's element-kind byte, its element count,
// and its elements, in that order.
func writeListValue(buf *bytes.Buffer, l List) {
	buf.WriteByte(wireElemIDFor(l.kind))
	writeU32(buf, uint32(l.Len()))

	switch l.kind {
	case KindByte:
		for _, v := range l.bytes {
			buf.WriteByte(byte(v))
		}
	case KindShort:
		for _, v := range l.shorts {
			writeU16(buf, uint16(v))
		}
	case KindInt:
		for _, v := range l.ints {
			writeU32(buf, uint32(v))
		}
	case KindLong:
		for _, v := range l.longs {
			writeU64(buf, uint64(v))
		}
	case KindFloat:
		for _, v := range l.floats {
			writeU32(buf, math.Float32bits(v))
		}
	case KindDouble:
		for _, v := range l.doubles {
			writeU64(buf, math.Float64bits(v))
		}
	case KindByteArray:
		for _, a := range l.byteArrs {
			writeU32(buf, uint32(len(a)))
			for _, b := range a {
				buf.WriteByte(byte(b))
			}
		}
	case KindString:
		for _, s := range l.strs {
			writeMutf8Field(buf, s)
		}
	case KindList:
		for _, inner := range l.lists {
			writeListValue(buf, inner)
		}
	case KindCompound:
		for i := range l.compounds {
			writeCompoundBody(buf, &l.compounds[i])
		}
	case KindIntArray:
		for _, a := range l.intArrs {
			writeU32(buf, uint32(len(a)))
			for _, v := range a {
				writeU32(buf, uint32(v))
			}
		}
	case KindLongArray:
		for _, a := range l.longArrs {
			writeU32(buf, uint32(len(a)))
			for _, v := range a {
				writeU64(buf, uint64(v))
			}
		}
	}
}

func wireElemIDFor(k Kind) byte {
	if k == KindEnd {
		return endID
	}
	return wireIDFor(k)
}

func writeU16(buf *bytes.Buffer, v uint16) {
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}

func writeU32(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v >> 24))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}

func writeU64(buf *bytes.Buffer, v uint64) {
	writeU32(buf, uint32(v>>32))
	writeU32(buf, uint32(v))
}
