package pieces

import (
	"iter"
	"math/bits"
)

// PPSetBits is the capacity of a PPSet. It must be at least the number of
// placement points in the index, which is checked when the index is built.
const PPSetBits = 512

const ppSetWords = PPSetBits / 64

// PPSet is a fixed-width set of placement point ordinals.
// It is a plain array, so assignment copies it.
type PPSet [ppSetWords]uint64

// Add inserts ordinal i
func (s *PPSet) Add(i int) {
	s[i>>6] |= 1 << (uint(i) & 63)
}

// Remove deletes ordinal i
func (s *PPSet) Remove(i int) {
	s[i>>6] &^= 1 << (uint(i) & 63)
}

// Has reports whether ordinal i is in the set
func (s PPSet) Has(i int) bool {
	if i < 0 || i >= PPSetBits {
		return false
	}
	return s[i>>6]&(1<<(uint(i)&63)) != 0
}

// And returns the intersection of s and o
func (s PPSet) And(o PPSet) PPSet {
	for i := range s {
		s[i] &= o[i]
	}
	return s
}

// AndNot returns the members of s that are not in o
func (s PPSet) AndNot(o PPSet) PPSet {
	for i := range s {
		s[i] &^= o[i]
	}
	return s
}

// Or returns the union of s and o
func (s PPSet) Or(o PPSet) PPSet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

// Empty reports whether the set has no members
func (s PPSet) Empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of members
func (s PPSet) Count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Next returns the smallest member >= from, or -1
func (s PPSet) Next(from int) int {
	if from < 0 {
		from = 0
	}
	w := from >> 6
	if w >= len(s) {
		return -1
	}
	word := s[w] &^ (1<<(uint(from)&63) - 1)
	for {
		if word != 0 {
			return w<<6 + bits.TrailingZeros64(word)
		}
		w++
		if w == len(s) {
			return -1
		}
		word = s[w]
	}
}

// All yields every member in ascending order
func (s PPSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for w, word := range s {
			for word != 0 {
				i := w<<6 + bits.TrailingZeros64(word)
				if !yield(i) {
					return
				}
				word &= word - 1
			}
		}
	}
}
