/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: frequencies.go
Description: Frequency profiles. A profile holds the relative occurrence rate of
each symbol of one alphabet within one text. Encoding or decoding a profile with a
key gives the same profile as computing it from the encoded or decoded text, which
lets the search score keys without touching the text again.
*/

package cipher

import (
	"fmt"
	"sort"
)

// Frequencies is a read-only frequency profile over an alphabet
type Frequencies struct {
	alphabet Alphabet
	rates    []float64
}

// NewFrequencies builds a profile from rates given in alphabet order
func NewFrequencies(alphabet Alphabet, rates []float64) (Frequencies, error) {
	if alphabet.Len() != len(rates) {
		return Frequencies{}, fmt.Errorf("%w: %d symbols, %d rates", ErrAlphabetMismatch, alphabet.Len(), len(rates))
	}
	owned := make([]float64, len(rates))
	copy(owned, rates)
	return Frequencies{alphabet: alphabet, rates: owned}, nil
}

// Alphabet returns the alphabet the profile is defined over
func (f Frequencies) Alphabet() Alphabet {
	return f.alphabet
}

// Len returns the number of symbols in the profile
func (f Frequencies) Len() int {
	return len(f.rates)
}

// Rate returns the rate of a symbol. Symbols outside the alphabet are rejected.
func (f Frequencies) Rate(s rune) (float64, error) {
	i, ok := f.alphabet.Index(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q not in profile", ErrUnknownSymbol, s)
	}
	return f.rates[i], nil
}

// Rates returns a copy of the rates in alphabet order
func (f Frequencies) Rates() []float64 {
	out := make([]float64, len(f.rates))
	copy(out, f.rates)
	return out
}

// RatesFor returns the rates of the given symbols in the order of symbols
func (f Frequencies) RatesFor(symbols Alphabet) ([]float64, error) {
	out := make([]float64, symbols.Len())
	for i := 0; i < symbols.Len(); i++ {
		r, err := f.Rate(symbols.At(i))
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// Sum returns the total of all rates
func (f Frequencies) Sum() float64 {
	total := 0.0
	for _, r := range f.rates {
		total += r
	}
	return total
}

// Map returns the profile as a plain map
func (f Frequencies) Map() map[rune]float64 {
	m := make(map[rune]float64, len(f.rates))
	for i, r := range f.rates {
		m[f.alphabet.At(i)] = r
	}
	return m
}

// SortedSymbols returns the alphabet ordered by ascending rate. Symbols with
// equal rates keep their alphabet order.
func (f Frequencies) SortedSymbols() Alphabet {
	order := make([]int, len(f.rates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return f.rates[order[i]] < f.rates[order[j]]
	})

	symbols := make([]rune, len(order))
	for i, idx := range order {
		symbols[i] = f.alphabet.At(idx)
	}
	// a permutation of a valid alphabet is always valid
	sorted, _ := NewAlphabet(symbols)
	return sorted
}

// Encode remaps every symbol of the profile through the key. Rates are unchanged.
func (f Frequencies) Encode(k Key) (Frequencies, error) {
	symbols := make([]rune, f.alphabet.Len())
	for i := 0; i < f.alphabet.Len(); i++ {
		s, err := k.Encode(f.alphabet.At(i))
		if err != nil {
			return Frequencies{}, err
		}
		symbols[i] = s
	}

	alphabet, err := NewAlphabet(symbols)
	if err != nil {
		return Frequencies{}, err
	}
	return Frequencies{alphabet: alphabet, rates: f.Rates()}, nil
}

// Decode remaps every symbol of the profile through the inverse of the key
func (f Frequencies) Decode(k Key) (Frequencies, error) {
	return f.Encode(k.Flipped())
}
