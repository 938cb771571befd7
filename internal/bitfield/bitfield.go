// Package bitfield packs and unpacks MSB-first bit fields.
//
// A Packer appends a field by shifting the accumulated word left by the
// field width and OR-ing in the value, so fields pushed first end up more
// significant. An Unpacker walks the same widths in reverse.
package bitfield

// Packer accumulates fields into a word, most significant field first.
type Packer struct {
	word uint64
}

// NewPacker starts a word whose initial value is head. The head ends up as
// the most significant field once the remaining fields are pushed.
func NewPacker(head uint64) Packer {
	return Packer{word: head}
}

// Push shifts the word left by width bits and ORs value into the freed
// bits. Value is not masked. A value wider than width overlaps the field
// pushed before it.
func (p *Packer) Push(width uint, value uint64) *Packer {
	p.word = p.word<<width | value

	return p
}

// Word returns the packed word.
func (p Packer) Word() uint64 {
	return p.word
}

// Mask returns a mask of the lowest width bits.
func Mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}

	return 1<<width - 1
}

// Fits reports whether value can be represented in width bits.
func Fits(value uint64, width uint) bool {
	return value&^Mask(width) == 0
}

// Unpacker pops fields from the least significant end of a word.
type Unpacker struct {
	word uint64
}

// NewUnpacker starts unpacking word.
func NewUnpacker(word uint64) Unpacker {
	return Unpacker{word: word}
}

// Pop removes the lowest width bits and returns them.
func (u *Unpacker) Pop(width uint) uint64 {
	v := u.word & Mask(width)
	u.word >>= width

	return v
}

// Rest returns the bits that have not been popped yet.
func (u Unpacker) Rest() uint64 {
	return u.word
}
