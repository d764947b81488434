package store

import (
	"math/bits"
)

const wordBits = 64

// BitIndex is an ordered set of non-negative integers backed by uint64
// words. It mirrors the persisted usage map bitmap bit for bit; scans use
// word-level operations to skip empty ranges.
type BitIndex struct {
	words []uint64
}

func NewBitIndex() *BitIndex {
	return &BitIndex{}
}

// Get reports whether bit i is set. Out-of-range indexes, including
// negative ones, read as unset.
func (b *BitIndex) Get(i int) bool {
	if i < 0 || i/wordBits >= len(b.words) {
		return false
	}
	return b.words[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Set sets bit i, growing the index as needed.
func (b *BitIndex) Set(i int) {
	word := i / wordBits
	for word >= len(b.words) {
		b.words = append(b.words, 0)
	}
	b.words[word] |= 1 << uint(i%wordBits)
}

// Clear clears bit i. Clearing past the end is a no-op.
func (b *BitIndex) Clear(i int) {
	word := i / wordBits
	if i < 0 || word >= len(b.words) {
		return
	}
	b.words[word] &^= 1 << uint(i%wordBits)
}

// ClearAll empties the index.
func (b *BitIndex) ClearAll() {
	b.words = b.words[:0]
}

// SetRange sets every bit in [from, to).
func (b *BitIndex) SetRange(from, to int) {
	for i := from; i < to; i++ {
		b.Set(i)
	}
}

// NextSetBit returns the smallest set bit at or after from, or -1 if there
// is none.
func (b *BitIndex) NextSetBit(from int) int {
	if from < 0 {
		from = 0
	}
	word := from / wordBits
	if word >= len(b.words) {
		return -1
	}
	// mask off the bits below from within the first word
	cur := b.words[word] &^ ((1 << uint(from%wordBits)) - 1)
	for {
		if cur != 0 {
			return word*wordBits + bits.TrailingZeros64(cur)
		}
		word++
		if word >= len(b.words) {
			return -1
		}
		cur = b.words[word]
	}
}

// Length returns one past the highest set bit, or 0 for an empty index.
func (b *BitIndex) Length() int {
	for word := len(b.words) - 1; word >= 0; word-- {
		if b.words[word] != 0 {
			return word*wordBits + wordBits - bits.LeadingZeros64(b.words[word])
		}
	}
	return 0
}
