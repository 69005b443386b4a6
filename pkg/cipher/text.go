/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: text.go
Description: Text value type. A text is an immutable sequence of symbols that all
belong to a known alphabet. Texts are encoded and decoded with keys and reduced to
frequency profiles for scoring.
*/

package cipher

import "fmt"

// Text is an immutable sequence of symbols
type Text struct {
	symbols []rune
}

// NewText creates a text, rejecting symbols outside the alphabet
func NewText(symbols []rune, alphabet Alphabet) (Text, error) {
	for i, s := range symbols {
		if !alphabet.Contains(s) {
			return Text{}, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, s, i)
		}
	}
	owned := make([]rune, len(symbols))
	copy(owned, symbols)
	return Text{symbols: owned}, nil
}

// ParseText creates a text from a string, rejecting symbols outside the alphabet
func ParseText(s string, alphabet Alphabet) (Text, error) {
	return NewText([]rune(s), alphabet)
}

// Len returns the number of symbols
func (t Text) Len() int {
	return len(t.symbols)
}

// Symbols returns a copy of the symbols
func (t Text) Symbols() []rune {
	out := make([]rune, len(t.symbols))
	copy(out, t.symbols)
	return out
}

// String renders the text
func (t Text) String() string {
	return string(t.symbols)
}

// Slice returns the first n symbols, or the whole text when shorter
func (t Text) Slice(n int) Text {
	if n >= len(t.symbols) || n < 0 {
		return t
	}
	return Text{symbols: t.symbols[:n]}
}

// Encode substitutes every symbol through the key
func (t Text) Encode(k Key) (Text, error) {
	out := make([]rune, len(t.symbols))
	for i, s := range t.symbols {
		e, err := k.Encode(s)
		if err != nil {
			return Text{}, fmt.Errorf("encode position %d: %w", i, err)
		}
		out[i] = e
	}
	return Text{symbols: out}, nil
}

// Decode substitutes every symbol through the inverse of the key
func (t Text) Decode(k Key) (Text, error) {
	return t.Encode(k.Flipped())
}

// Frequencies computes the relative rate of every alphabet symbol in the text
func (t Text) Frequencies(alphabet Alphabet) (Frequencies, error) {
	if len(t.symbols) == 0 {
		return Frequencies{}, ErrEmptyText
	}

	counts := make([]int, alphabet.Len())
	for _, s := range t.symbols {
		if i, ok := alphabet.Index(s); ok {
			counts[i]++
		}
	}

	rates := make([]float64, alphabet.Len())
	total := float64(len(t.symbols))
	for i, c := range counts {
		rates[i] = float64(c) / total
	}

	return Frequencies{alphabet: alphabet, rates: rates}, nil
}

// Compare returns the fraction of positions where both texts agree, relative
// to the length of the receiver.
func (t Text) Compare(other Text) float64 {
	if len(t.symbols) == 0 {
		return 0
	}
	agree := 0
	for i, s := range t.symbols {
		if i >= len(other.symbols) {
			break
		}
		if other.symbols[i] == s {
			agree++
		}
	}
	return float64(agree) / float64(len(t.symbols))
}

// Equal reports whether both texts hold the same symbols
func (t Text) Equal(other Text) bool {
	if len(t.symbols) != len(other.symbols) {
		return false
	}
	for i, s := range t.symbols {
		if other.symbols[i] != s {
			return false
		}
	}
	return true
}
