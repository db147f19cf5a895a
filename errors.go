package nbt

import (
	"fmt"

	"github.com/go-nbt/nbt/internal/reader"
)

// ErrUnexpectedEOF is returned whenever a read runs past the end of the
// input. It is the same sentinel internal/reader uses, re-exported here
// so callers never need to import the internal package to check for it.
var ErrUnexpectedEOF = reader.ErrUnexpectedEOF

// Wire tag IDs, as they appear as the first byte of every tag and as
// the element-type byte of a List.
const (
	endID       = 0
	byteID      = 1
	shortID     = 2
	intID       = 3
	longID      = 4
	floatID     = 5
	doubleID    = 6
	byteArrayID = 7
	stringID    = 8
	listID      = 9
	compoundID  = 10
	intArrayID  = 11
	longArrayID = 12
)

// InvalidRootTypeError is returned when the first byte of a document is
// neither TAG_End (an empty document) nor TAG_Compound.
type InvalidRootTypeError struct {
	ID byte
}

func (e *InvalidRootTypeError) Error() string {
	return fmt.Sprintf("nbt: invalid root tag type %d, expected compound", e.ID)
}

// UnknownTagIDError is returned when a tag ID byte (or a List's element
// type byte) does not correspond to any known tag kind.
type UnknownTagIDError struct {
	ID byte
}

func (e *UnknownTagIDError) Error() string {
	return fmt.Sprintf("nbt: unknown tag id %d", e.ID)
}

// MaxDepthExceededError is returned when compound and list nesting
// together would exceed the maximum supported depth.
type MaxDepthExceededError struct{}

func (e *MaxDepthExceededError) Error() string {
	return "nbt: max depth exceeded"
}
