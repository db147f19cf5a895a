package nbt

import (
	"github.com/go-nbt/nbt/internal/pstack"
	"github.com/go-nbt/nbt/internal/reader"
)

// ReadValidate walks a complete NBT document the same way Read does,
// checking every invariant Read checks (tag ids, nesting depth,
// truncation), but never allocates a tape: it is for callers that only
// need to know whether data is well-formed NBT, not its contents.
func ReadValidate(data []byte) error {
	return ReadValidateOptions(data, DefaultOptions())
}

// ReadValidateOptions is ReadValidate with Options applied the same way
// ReadOptions applies them to Read.
func ReadValidateOptions(data []byte, opts Options) error {
	r := reader.New(data)
	rootType, err := r.ReadU8()
	if err != nil {
		return ErrUnexpectedEOF
	}
	if rootType == endID {
		return nil
	}
	if rootType != compoundID {
		opts.Logger.Warn().Int("root_type", int(rootType)).Msg("nbt: invalid root tag type")
		return &InvalidRootTypeError{ID: rootType}
	}

	if !opts.Unnamed {
		if _, err := readMutf8String(&r); err != nil {
			return err
		}
	}

	return validateRootCompound(&r, opts)
}

// ReadCompoundValidate validates that data holds exactly one well-formed
// TAG_Compound body (no leading tag byte or name, the form used when a
// compound's bytes have already been sliced out of a larger buffer).
func ReadCompoundValidate(data []byte) error {
	r := reader.New(data)
	return validateRootCompound(&r, DefaultOptions())
}

// ReadTagValidate validates that data holds exactly one well-formed tag
// of the given wire tag id, with no name field.
func ReadTagValidate(data []byte, tagID byte) error {
	r := reader.New(data)
	return validateTagBody(&r, tagID, DefaultOptions())
}

// ReadOptionalTagValidate validates data the way ReadTagValidate does,
// except that tagID == endID (an empty buffer's worth of "nothing here")
// is accepted as valid with no further reads.
func ReadOptionalTagValidate(data []byte, tagID byte) error {
	if tagID == endID {
		return nil
	}
	return ReadTagValidate(data, tagID)
}

// validateRootCompound mirrors decodeRootCompound's stack-driven walk,
// discarding every tag's value instead of pushing a tape token for it.
func validateRootCompound(r *reader.Reader, opts Options) error {
	st := pstack.New()
	if err := pushFrame(&st, pstack.Frame{Kind: pstack.FrameCompound}, opts); err != nil {
		return err
	}
	return validateFrames(r, &st, opts)
}

// validateFrames drives the stack-driven walk until every frame on st
// has closed.
func validateFrames(r *reader.Reader, st *pstack.Stack, opts Options) error {
	for !st.Empty() {
		top := st.Top()
		switch top.Kind {
		case pstack.FrameCompound:
			if err := validateStepCompound(r, st, opts); err != nil {
				return err
			}
		case pstack.FrameListOfCompounds:
			top.Remaining--
			if err := pushFrame(st, pstack.Frame{Kind: pstack.FrameCompound}, opts); err != nil {
				return err
			}
		case pstack.FrameListOfLists:
			top.Remaining--
			if err := validateListBody(r, st, opts); err != nil {
				return err
			}
			if err := validateCloseExhaustedLists(st); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateStepCompound(r *reader.Reader, st *pstack.Stack, opts Options) error {
	tagType, err := r.ReadU8()
	if err != nil {
		return ErrUnexpectedEOF
	}
	if tagType == endID {
		st.Pop()
		return validateCloseExhaustedLists(st)
	}
	if _, err := readMutf8String(r); err != nil {
		return err
	}
	return validateNamedTag(r, st, tagType, opts)
}

func validateCloseExhaustedLists(st *pstack.Stack) error {
	for !st.Empty() {
		top := st.Top()
		if top.Kind == pstack.FrameCompound {
			return nil
		}
		if top.Remaining > 0 {
			return nil
		}
		st.Pop()
	}
	return nil
}

func validateNamedTag(r *reader.Reader, st *pstack.Stack, tagType byte, opts Options) error {
	switch tagType {
	case byteID:
		_, err := r.ReadI8()
		return err
	case shortID:
		_, err := r.ReadI16()
		return err
	case intID:
		_, err := r.ReadI32()
		return err
	case longID:
		_, err := r.ReadI64()
		return err
	case floatID:
		_, err := r.ReadF32()
		return err
	case doubleID:
		_, err := r.ReadF64()
		return err
	case byteArrayID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		_, err = r.ReadSlice(int(n))
		return err
	case stringID:
		_, err := readMutf8String(r)
		return err
	case listID:
		return validateListBody(r, st, opts)
	case compoundID:
		return pushFrame(st, pstack.Frame{Kind: pstack.FrameCompound}, opts)
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
		return &UnknownTagIDError{ID: tagType}
	}
}

func validateListBody(r *reader.Reader, st *pstack.Stack, opts Options) error {
	elemType, err := r.ReadU8()
	if err != nil {
		return ErrUnexpectedEOF
	}

	switch elemType {
	case endID:
		return r.Skip(4)
	case byteID, shortID, intID, floatID, longID, doubleID:
		width := map[byte]int{byteID: 1, shortID: 2, intID: 4, floatID: 4, longID: 8, doubleID: 8}[elemType]
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		return r.Skip(int(n) * width)
	case byteArrayID:
		return validateArrayOfArrays(r, validateByteArrayExtra)
	case stringID:
		return validateArrayOfArrays(r, validateStringExtra)
	case intArrayID:
		return validateArrayOfArrays(r, validateIntArrayExtra)
	case longArrayID:
		return validateArrayOfArrays(r, validateLongArrayExtra)
	case listID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return pushFrame(st, pstack.Frame{Kind: pstack.FrameListOfLists, Remaining: int(n)}, opts)
	case compoundID:
		n, err := r.ReadU32()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return pushFrame(st, pstack.Frame{Kind: pstack.FrameListOfCompounds, Remaining: int(n)}, opts)
	default:
		return &UnknownTagIDError{ID: elemType}
	}
}

func validateArrayOfArrays(r *reader.Reader, validateOne func(*reader.Reader) error) error {
	n, err := r.ReadU32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		if err := validateOne(r); err != nil {
			return err
		}
	}
	return nil
}

func validateByteArrayExtra(r *reader.Reader) error {
	n, err := r.ReadU32()
	if err != nil {
		return err
	}
	_, err = r.ReadSlice(int(n))
	return err
}

func validateStringExtra(r *reader.Reader) error {
	n, err := r.ReadU16()
	if err != nil {
		return err
	}
	_, err = r.ReadSlice(int(n))
	return err
}

func validateIntArrayExtra(r *reader.Reader) error {
	n, err := r.ReadU32()
	if err != nil {
		return err
	}
	return r.Skip(int(n) * 4)
}

func validateLongArrayExtra(r *reader.Reader) error {
	n, err := r.ReadU32()
	if err != nil {
		return err
	}
	return r.Skip(int(n) * 8)
}

// validateTagBody validates a single tag's body with no leading tag byte
// or name field, used by ReadTagValidate for contexts that already know
// the tag id out of band (a network protocol field, a struct tag).
func validateTagBody(r *reader.Reader, tagID byte, opts Options) error {
	if tagID == compoundID {
		return validateRootCompound(r, opts)
	}
	st := pstack.New()
	if err := validateNamedTag(r, &st, tagID, opts); err != nil {
		return err
	}
	return validateFrames(r, &st, opts)
}
