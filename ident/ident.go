package ident

import "github.com/funkite/octaindex3d/format"

// Identifier is the capability set shared by all four identifier types.
//
// Concrete types carry the full API (typed Decode, Parent, Children,
// Neighbors14); this interface covers the operations callers need when
// handling identifiers polymorphically, such as container writers and the
// textual codec.
type Identifier interface {
	// Kind reports the concrete identifier type.
	Kind() format.IdentifierKind
	// Lod returns the level-of-detail field.
	Lod() uint32
	// Bytes returns the big-endian serialized form (8 or 16 bytes).
	Bytes() []byte
}

// Slot is one element of a bounded enumeration (children, neighbors).
// Enumerations never fail as a whole on coordinate overflow; instead the
// affected slot carries a RangeError and the identifier is the zero value.
type Slot[T any] struct {
	ID  T
	Err error
}

// Ok reports whether the slot holds a valid identifier.
func (s Slot[T]) Ok() bool { return s.Err == nil }

// signExtend interprets the low bits of v as a two's complement integer of
// the given width.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
