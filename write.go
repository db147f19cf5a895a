package nbt

import (
	"bytes"
	"io"

	"github.com/go-nbt/nbt/tape"
)

// wireIDFor maps a tape kind back to the wire tag id written for a
// named compound child, the inverse of readNamedTag's dispatch.
func wireIDFor(k tape.TagKind) byte {
	switch k {
	case tape.KindByte:
		return byteID
	case tape.KindShort:
		return shortID
	case tape.KindInt:
		return intID
	case tape.KindLong:
		return longID
	case tape.KindFloat:
		return floatID
	case tape.KindDouble:
		return doubleID
	case tape.KindByteArray:
		return byteArrayID
	case tape.KindString:
		return stringID
	case tape.KindCompound:
		return compoundID
	case tape.KindIntArray:
		return intArrayID
	case tape.KindLongArray:
		return longArrayID
	default:
		return listID // every KindXxxList variant writes as TAG_List
	}
}

// wireElemIDFor maps a tape-only list kind to the element-type byte
// written right after TAG_List's own id, the inverse of pushListToken's
// elemType dispatch.
func wireElemIDFor(k tape.TagKind) byte {
	switch k {
	case tape.KindEmptyList:
		return endID
	case tape.KindByteList:
		return byteID
	case tape.KindShortList:
		return shortID
	case tape.KindIntList:
		return intID
	case tape.KindLongList:
		return longID
	case tape.KindFloatList:
		return floatID
	case tape.KindDoubleList:
		return doubleID
	case tape.KindByteArrayList:
		return byteArrayID
	case tape.KindStringList:
		return stringID
	case tape.KindListList:
		return listID
	case tape.KindCompoundList:
		return compoundID
	case tape.KindIntArrayList:
		return intArrayID
	case tape.KindLongArrayList:
		return longArrayID
	default:
		return endID
	}
}

// Write re-serializes the document to its wire form, with the name
// written alongside the root compound the way Read expects it.
func (b BaseNbt) Write() []byte {
	var buf bytes.Buffer
	buf.WriteByte(compoundID)
	writeMutf8Field(&buf, b.name)
	writeCompoundBody(&buf, b.doc, b.root)
	return buf.Bytes()
}

// WriteTo writes the document's wire form to w, following the
// io.WriterTo convention.
func (b BaseNbt) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Write())
	return int64(n), err
}

// Write re-serializes n to its wire form: a single TAG_End byte if n is
// absent, or the root compound's bytes (as BaseNbt.Write produces) if
// present.
func (n Nbt) Write() []byte {
	if n.IsNone() {
		return []byte{endID}
	}
	return n.base.Write()
}

// WriteTo writes n's wire form to w.
func (n Nbt) WriteTo(w io.Writer) (int64, error) {
	nw, err := w.Write(n.Write())
	return int64(nw), err
}

// writeMutf8Field writes an NBT string field: a big-endian uint16 byte
// length followed by the MUTF-8 bytes themselves.
func writeMutf8Field(buf *bytes.Buffer, s []byte) {
	buf.WriteByte(byte(len(s) >> 8))
	buf.WriteByte(byte(len(s)))
	buf.Write(s)
}

// writeCompoundBody writes every direct child of the compound at index
// idx as (tag id, name, value), in tape order, followed by TAG_End.
func writeCompoundBody(buf *bytes.Buffer, doc *document, idx int) {
	end := idx + doc.tape.Get(idx).SkipOffset()
	i := idx + 1
	for i < end {
		e := doc.tape.Get(i)
		buf.WriteByte(wireIDFor(e.Kind()))
		writeMutf8Field(buf, doc.tape.NameAt(i))
		writeTagValue(buf, doc, i)
		i += e.SkipOffset()
	}
	buf.WriteByte(endID)
}

// writeTagValue writes the value portion of the tag at index i: for
// scalars and arrays this is the tag's entire wire payload; for List
// and Compound it recurses.
func writeTagValue(buf *bytes.Buffer, doc *document, i int) {
	e := doc.tape.Get(i)
	switch e.Kind() {
	case tape.KindByte:
		buf.WriteByte(e.U8())
	case tape.KindShort:
		v := e.U16()
		buf.WriteByte(byte(v >> 8))
		buf.WriteByte(byte(v))
	case tape.KindInt:
		writeU32(buf, e.U32())
	case tape.KindFloat:
		writeU32(buf, e.U32())
	case tape.KindLong:
		writeU64(buf, doc.tape.Get(i+1).U64())
	case tape.KindDouble:
		writeU64(buf, doc.tape.Get(i+1).U64())
	case tape.KindByteArray:
		start := int(e.Ptr())
		n := beU32At(doc.data, start)
		buf.Write(doc.data[start-4 : start+int(n)])
	case tape.KindString:
		start := int(e.Ptr())
		n := beU16At(doc.data, start)
		buf.Write(doc.data[start-2 : start+int(n)])
	case tape.KindIntArray:
		start := int(e.Ptr())
		n := beU32At(doc.data, start)
		buf.Write(doc.data[start-4 : start+int(n)*4])
	case tape.KindLongArray:
		start := int(e.Ptr())
		n := beU32At(doc.data, start)
		buf.Write(doc.data[start-4 : start+int(n)*8])
	case tape.KindCompound:
		writeCompoundBody(buf, doc, i)
	default:
		if e.Kind().IsList() {
			writeListValue(buf, doc, i)
		}
	}
}

// writeListValue writes a List's own wire encoding: the element-type
// byte, the element count, and the elements themselves, with no name
// field (a List never has one of its own; writeCompoundBody supplies it
// when the list is a named child).
func writeListValue(buf *bytes.Buffer, doc *document, idx int) {
	e := doc.tape.Get(idx)
	buf.WriteByte(wireElemIDFor(e.Kind()))

	switch e.Kind() {
	case tape.KindEmptyList:
		writeU32(buf, 0)
	case tape.KindByteList, tape.KindShortList, tape.KindIntList, tape.KindFloatList,
		tape.KindLongList, tape.KindDoubleList:
		start := int(e.Ptr())
		n := beU32At(doc.data, start)
		width := listElemWidth(e.Kind())
		buf.Write(doc.data[start-4 : start+int(n)*width])
	case tape.KindByteArrayList, tape.KindStringList, tape.KindIntArrayList, tape.KindLongArrayList:
		writeArrayOfArraysList(buf, doc, e)
	case tape.KindListList, tape.KindCompoundList:
		writeNestedContainerList(buf, doc, idx, e)
	}
}

func listElemWidth(k tape.TagKind) int {
	switch k {
	case tape.KindByteList:
		return 1
	case tape.KindShortList:
		return 2
	case tape.KindIntList, tape.KindFloatList:
		return 4
	case tape.KindLongList, tape.KindDoubleList:
		return 8
	default:
		return 1
	}
}

// writeArrayOfArraysList writes a List of Byte Array / String / Int
// Array / Long Array: the element count followed by each extras entry's
// length-prefixed payload, copied verbatim from the original buffer.
func writeArrayOfArraysList(buf *bytes.Buffer, doc *document, e tape.Element) {
	n, start := e.ApproxLenAndOffset()
	writeU32(buf, n)
	prefixWidth, elemWidth := 4, 1
	if e.Kind() == tape.KindStringList {
		prefixWidth = 2
	}
	if e.Kind() == tape.KindIntArrayList {
		elemWidth = 4
	} else if e.Kind() == tape.KindLongArrayList {
		elemWidth = 8
	}
	for i := uint32(0); i < n; i++ {
		entry := doc.extras.Get(int(start) + int(i))
		payloadLen := int(entry.Length) * elemWidth
		if e.Kind() == tape.KindByteArrayList || e.Kind() == tape.KindStringList {
			payloadLen = int(entry.Length)
		}
		off := int(entry.Offset)
		buf.Write(doc.data[off-prefixWidth : off+payloadLen])
	}
}

// writeNestedContainerList writes a List of List / List of Compound:
// the true element count (walking the tape if the stored approximation
// saturated) followed by each element's value, unnamed.
func writeNestedContainerList(buf *bytes.Buffer, doc *document, idx int, e tape.Element) {
	approxLen, offset := e.ApproxLenAndOffset()
	end := idx + int(offset)

	count := approxLen
	if approxLen >= maxApproxLenForWriter {
		count = uint32(walkChildCount(doc, idx, end))
	}
	writeU32(buf, count)

	i := idx + 1
	for i < end {
		writeTagValue(buf, doc, i)
		i += doc.tape.Get(i).SkipOffset()
	}
}

// maxApproxLenForWriter mirrors tape's unexported saturation threshold;
// it is not exported from tape, and List.Len repeats the same literal
// for its own saturation check.
const maxApproxLenForWriter = 1<<24 - 1

func walkChildCount(doc *document, idx, end int) int {
	n := 0
	i := idx + 1
	for i < end {
		n++
		i += doc.tape.Get(i).SkipOffset()
	}
	return n
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
