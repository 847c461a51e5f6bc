// Package lattice provides Viterbi-style shortest-path search over weighted
// word lattices.
//
// A lattice is built step by step from input segments against a Vocabulary.
// Each pushed segment adds one graph step holding every candidate node ending
// at that position; node path costs follow the Viterbi recurrence. Settling
// the lattice yields an EOS node, from which NBestIterator enumerates
// complete paths in nondecreasing cost order, optionally filtered by a
// Constraint of anchor nodes and wildcards.
package lattice

import "hash/fnv"

// Input is an opaque key segment a lattice is built from.
//
// Implementations must keep HashValue and EqualTo consistent: inputs that
// compare equal hash equally. Append mutates the receiver and only accepts
// an input of the receiver's own concrete type.
type Input interface {
	// Length returns the length in the input's abstract units.
	Length() int

	// HashValue returns a stable hash of the contents.
	HashValue() uint64

	// EqualTo reports whether other has the same concrete type and contents.
	EqualTo(other Input) bool

	// Subrange extracts a copy of the given range as a new input of the same
	// concrete type. It fails with ErrRangeOutOfBounds when offset+length
	// exceeds Length.
	Subrange(offset, length int) (Input, error)

	// Append concatenates other onto the receiver. It fails with
	// ErrMismatchConcreteType when other is of a different concrete type.
	Append(other Input) error

	// Clone returns an independent deep copy.
	Clone() Input
}

// StringInput is the canonical Input wrapping a byte string. Lengths and
// subranges are in bytes.
type StringInput struct {
	value string
}

// NewStringInput creates a string input.
func NewStringInput(value string) *StringInput {
	return &StringInput{value: value}
}

// Value returns the wrapped string.
func (i *StringInput) Value() string {
	return i.value
}

// Length returns the byte length of the wrapped string.
func (i *StringInput) Length() int {
	return len(i.value)
}

// HashValue returns an FNV-1a hash of the wrapped string.
func (i *StringInput) HashValue() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(i.value))
	return h.Sum64()
}

// EqualTo reports whether other is a StringInput with the same contents.
func (i *StringInput) EqualTo(other Input) bool {
	o, ok := other.(*StringInput)
	return ok && i.value == o.value
}

// Subrange returns a StringInput over a copy of value[offset : offset+length].
func (i *StringInput) Subrange(offset, length int) (Input, error) {
	if offset < 0 || length < 0 || offset+length > len(i.value) {
		return nil, ErrRangeOutOfBounds
	}
	return NewStringInput(i.value[offset : offset+length]), nil
}

// Append concatenates another StringInput onto the receiver.
func (i *StringInput) Append(other Input) error {
	o, ok := other.(*StringInput)
	if !ok {
		return ErrMismatchConcreteType
	}
	i.value += o.value
	return nil
}

// Clone returns an independent copy.
func (i *StringInput) Clone() Input {
	return NewStringInput(i.value)
}
