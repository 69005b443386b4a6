/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: alphabet.go
Description: Alphabet value type. An alphabet is an ordered, duplicate-free set of
symbols that defines the domain of a code. Its order defines frequency rank ties
and the slicing order used when the alphabet is partitioned into blocks.
*/

package cipher

import (
	"fmt"
	"strings"
)

// Alphabet is an immutable ordered sequence of distinct symbols
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet creates an alphabet from the given symbols in order.
// Duplicates and empty input are rejected.
func NewAlphabet(symbols []rune) (Alphabet, error) {
	if len(symbols) == 0 {
		return Alphabet{}, ErrEmptyAlphabet
	}

	index := make(map[rune]int, len(symbols))
	for i, s := range symbols {
		if _, ok := index[s]; ok {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrDuplicateSymbol, s)
		}
		index[s] = i
	}

	owned := make([]rune, len(symbols))
	copy(owned, symbols)

	return Alphabet{symbols: owned, index: index}, nil
}

// ParseAlphabet creates an alphabet from the runes of a string
func ParseAlphabet(s string) (Alphabet, error) {
	return NewAlphabet([]rune(s))
}

// MustParseAlphabet is like ParseAlphabet but panics on error.
// Intended for package-level tables and tests.
func MustParseAlphabet(s string) Alphabet {
	a, err := ParseAlphabet(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols
func (a Alphabet) Len() int {
	return len(a.symbols)
}

// IsZero reports whether the alphabet was never constructed
func (a Alphabet) IsZero() bool {
	return a.symbols == nil
}

// At returns the symbol at position i
func (a Alphabet) At(i int) rune {
	return a.symbols[i]
}

// Symbols returns a copy of the symbols in order
func (a Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// Index returns the position of a symbol within the alphabet
func (a Alphabet) Index(s rune) (int, bool) {
	i, ok := a.index[s]
	return i, ok
}

// Contains reports whether the symbol belongs to the alphabet
func (a Alphabet) Contains(s rune) bool {
	_, ok := a.index[s]
	return ok
}

// Equal reports whether both alphabets hold the same symbols in the same order
func (a Alphabet) Equal(other Alphabet) bool {
	if len(a.symbols) != len(other.symbols) {
		return false
	}
	for i, s := range a.symbols {
		if other.symbols[i] != s {
			return false
		}
	}
	return true
}

// String renders the alphabet as its symbols concatenated
func (a Alphabet) String() string {
	return string(a.symbols)
}

// Partition splits the alphabet into contiguous blocks whose sizes follow the
// partitioning. Concatenating the blocks reproduces the original order.
func (a Alphabet) Partition(p Partitioning) ([]Alphabet, error) {
	if err := p.Validate(a.Len()); err != nil {
		return nil, err
	}

	blocks := make([]Alphabet, 0, p.Blocks())
	offset := 0
	for _, size := range p.sizes {
		block, err := NewAlphabet(a.symbols[offset : offset+size])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
		offset += size
	}

	return blocks, nil
}

// Quoted renders the alphabet with symbols separated by spaces, useful where
// whitespace symbols would otherwise be invisible.
func (a Alphabet) Quoted() string {
	parts := make([]string, len(a.symbols))
	for i, s := range a.symbols {
		parts[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(parts, " ")
}
