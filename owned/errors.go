package owned

import (
	"fmt"

	"github.com/go-nbt/nbt/internal/reader"
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

// maxDepth bounds the owned reader's recursion the same way the
// borrowed decoder bounds its explicit stack: a document nested deeper
// than this is rejected outright rather than risking a native stack
// overflow on adversarial input.
const maxDepth = 512

// ErrUnexpectedEOF is returned whenever the input ends before a tag's
// declared length has been fully consumed.
var ErrUnexpectedEOF = reader.ErrUnexpectedEOF

// InvalidRootTypeError reports a root tag byte that is neither
// TAG_End nor TAG_Compound.
type InvalidRootTypeError struct {
	ID byte
}

func (e *InvalidRootTypeError) Error() string {
	return fmt.Sprintf("owned: invalid root tag type %#02x, want TAG_Compound or TAG_End", e.ID)
}

// UnknownTagIDError reports a tag byte outside the 13 known wire IDs.
type UnknownTagIDError struct {
	ID byte
}

func (e *UnknownTagIDError) Error() string {
	return fmt.Sprintf("owned: unknown tag id %#02x", e.ID)
}

// MaxDepthExceededError reports nesting beyond maxDepth.
type MaxDepthExceededError struct{}

func (e *MaxDepthExceededError) Error() string {
	return "owned: maximum nesting depth exceeded"
}
