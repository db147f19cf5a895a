package nbtproto

import "github.com/go-nbt/nbt/internal/reader"

// skipTagBody consumes exactly the bytes a tag of the given kind
// occupies, without retaining any of them; this is what lets
// ReadPartial ignore a field a destination struct does not declare.
func skipTagBody(r *reader.Reader, kind byte) error {
	switch kind {
	case byteID:
		return r.Skip(1)
	case shortID:
		return r.Skip(2)
	case intID, floatID:
		return r.Skip(4)
	case longID, doubleID:
		return r.Skip(8)
	case byteArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		return r.Skip(int(n))
	case stringID:
		n, err := r.ReadU16()
		if err != nil {
			return err
		}
		return r.Skip(int(n))
	case listID:
		return skipListBody(r)
	case compoundID:
		return skipCompoundBody(r)
	case intArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		return r.Skip(int(n) * 4)
	case longArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		return r.Skip(int(n) * 8)
	default:
		return &MismatchedFieldTypeError{Field: "<unknown>", Got: kind}
	}
}

func skipCompoundBody(r *reader.Reader) error {
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
		if err := r.Skip(int(n)); err != nil {
			return err
		}
		if err := skipTagBody(r, kind); err != nil {
			return err
		}
	}
}

func skipListBody(r *reader.Reader) error {
	elemKind, err := r.ReadU8()
	if err != nil {
		return err
	}
	n, err := r.ReadU32()
	if err != nil {
		return err
	}
	if elemKind == endID {
		return nil
	}
	for i := uint32(0); i < n; i++ {
		if err := skipTagBody(r, elemKind); err != nil {
			return err
		}
	}
	return nil
}
