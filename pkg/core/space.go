/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: space.go
Description: Search space over block permutations. A space pairs every block of
reference symbols with a block of encoded symbols of the same size; a candidate
is one permutation of the encoded symbols per block. Rates are copied into plain
slices so scoring a candidate is a single pass of multiply-adds.
*/

package core

import (
	"fmt"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/permute"
)

// space is an immutable, concurrency-safe description of what to enumerate
type space struct {
	refs     []cipher.Alphabet
	encs     []cipher.Alphabet
	refRates [][]float64
	encRates [][]float64
	sizes    []int
	total    uint64
}

// newSpace builds a space from per-block keys. Each key fixes which encoded
// symbols belong to which block; their order inside the block is searched.
func newSpace(problem *Problem, blocks []cipher.Key) (*space, error) {
	s := &space{
		refs:     make([]cipher.Alphabet, len(blocks)),
		encs:     make([]cipher.Alphabet, len(blocks)),
		refRates: make([][]float64, len(blocks)),
		encRates: make([][]float64, len(blocks)),
		sizes:    make([]int, len(blocks)),
	}

	for i, block := range blocks {
		refRates, err := problem.freqRef.RatesFor(block.SymbolsRef())
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		encRates, err := problem.freqEnc.RatesFor(block.SymbolsEnc())
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		s.refs[i] = block.SymbolsRef()
		s.encs[i] = block.SymbolsEnc()
		s.refRates[i] = refRates
		s.encRates[i] = encRates
		s.sizes[i] = block.Len()
	}

	product, err := permute.NewProduct(s.sizes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchTooLarge, err)
	}
	s.total = product.Total()

	return s, nil
}

// score returns the dot fitness of the candidate: the negated sum of
// reference rate times the rate of the encoded symbol it is assigned to.
func (s *space) score(perms [][]int) float64 {
	total := 0.0
	for b, perm := range perms {
		ref, enc := s.refRates[b], s.encRates[b]
		for i, j := range perm {
			total += ref[i] * enc[j]
		}
	}
	return -total
}

// flatten copies the per-block permutations into one slice
func (s *space) flatten(perms [][]int) []int {
	n := 0
	for _, size := range s.sizes {
		n += size
	}
	out := make([]int, 0, n)
	for _, perm := range perms {
		out = append(out, perm...)
	}
	return out
}

// key turns a flattened assignment into a key. Reference symbols keep block
// order; block b's i-th reference symbol maps to encoded symbol perm[i].
func (s *space) key(flat []int) (cipher.Key, error) {
	var ref, enc []rune
	offset := 0
	for b, size := range s.sizes {
		for i := 0; i < size; i++ {
			ref = append(ref, s.refs[b].At(i))
			enc = append(enc, s.encs[b].At(flat[offset+i]))
		}
		offset += size
	}

	refAlphabet, err := cipher.NewAlphabet(ref)
	if err != nil {
		return cipher.Key{}, err
	}
	encAlphabet, err := cipher.NewAlphabet(enc)
	if err != nil {
		return cipher.Key{}, err
	}
	return cipher.NewKey(refAlphabet, encAlphabet)
}
