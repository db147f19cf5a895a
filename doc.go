// Package nbt implements a zero-copy, tape-based reader, accessor set,
// and writer for Minecraft's NBT binary format.
//
// Read parses a document into a packed token stream (see package tape)
// without copying any of the input's variable-length payloads: string
// and array tags keep only an offset into the caller's buffer, and the
// tree is walked by indexing into that tape rather than by following
// pointers through a heap-allocated graph. Callers that need to mutate a
// tree, or that no longer have access to the original buffer, should
// convert it with Nbt.ToOwned (or Compound.ToOwned) into the owned package's mutable
// representation instead.
package nbt

import (
	"github.com/go-nbt/nbt/mutf8"
	"github.com/go-nbt/nbt/tape"
)

// document holds everything a parsed tree's accessors need: the
// original buffer (for recovering array/string lengths and payload
// bytes) and the two tapes the decoder produced.
type document struct {
	data   []byte
	tape   tape.MainTape
	extras tape.Extras
}

// Nbt is the result of Read: either a present document (Some) rooted at
// a named compound, or an absent one (None), mirroring the single byte
// of TAG_End a writer emits for "there is nothing here."
type Nbt struct {
	present bool
	base    BaseNbt
}

// IsSome reports whether the document is present.
func (n Nbt) IsSome() bool {
	return n.present
}

// IsNone reports whether the document is absent.
func (n Nbt) IsNone() bool {
	return !n.present
}

// Unwrap returns the underlying BaseNbt. It panics if the document is
// absent; callers should check IsSome first.
func (n Nbt) Unwrap() BaseNbt {
	if !n.present {
		panic("nbt: called Unwrap on an absent document")
	}
	return n.base
}

// BaseNbt is a complete, named NBT document: a root compound plus the
// name written alongside it on the wire.
type BaseNbt struct {
	doc  *document
	name mutf8.Str
	root int
}

// Name returns the name written alongside the root compound. It is
// often empty.
func (b BaseNbt) Name() mutf8.Str {
	return b.name
}

// Compound returns the root compound's accessor.
func (b BaseNbt) Compound() Compound {
	return Compound{doc: b.doc, header: b.root}
}
