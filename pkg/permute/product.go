/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: product.go
Description: Cartesian product of permutation sequences. Each position of the
product is one permutation per block, ordered like nested loops with the last
block varying fastest. Seek positions the product at any rank so that disjoint
rank ranges can be walked by different workers.
*/

package permute

import (
	"fmt"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/stat/combin"
)

// Product lazily yields every combination of one permutation per block
type Product struct {
	sizes   []int
	dims    []int // Factorial of each block size, the radix of its digit
	perms   [][]int
	total   uint64
	rank    uint64
	pending bool
	done    bool
}

// NewProduct creates a product over blocks of the given sizes
func NewProduct(sizes ...int) (*Product, error) {
	dims := make([]int, len(sizes))
	total := uint64(1)
	for i, size := range sizes {
		f, ok := Factorial(size)
		if !ok {
			return nil, fmt.Errorf("%w: block %d has %d symbols", ErrTooLarge, i, size)
		}
		hi, lo := bits.Mul64(total, f)
		if hi != 0 || lo > math.MaxInt {
			return nil, fmt.Errorf("%w: product of block factorials overflows", ErrTooLarge)
		}
		total = lo
		dims[i] = int(f)
	}

	owned := make([]int, len(sizes))
	copy(owned, sizes)

	p := &Product{sizes: owned, dims: dims, total: total}
	p.Seek(0)
	return p, nil
}

// Total returns the number of combinations
func (p *Product) Total() uint64 {
	return p.total
}

// Seek positions the product so that the next call to Next yields the
// combination at rank. Ranks at or beyond Total exhaust the product.
func (p *Product) Seek(rank uint64) {
	p.perms = make([][]int, len(p.sizes))
	p.rank = rank
	p.pending = true
	p.done = rank >= p.total
	if p.done || len(p.dims) == 0 {
		return
	}

	digits := combin.SubFor(nil, int(rank), p.dims)
	for i, digit := range digits {
		p.perms[i] = Unrank(p.sizes[i], uint64(digit))
	}
}

// Next advances to the next combination and reports whether one exists
func (p *Product) Next() bool {
	if p.done {
		return false
	}
	if p.pending {
		p.pending = false
		return true
	}

	for i := len(p.perms) - 1; i >= 0; i-- {
		if NextPermutation(p.perms[i]) {
			p.rank++
			return true
		}
		p.perms[i] = Identity(p.sizes[i])
	}

	p.done = true
	return false
}

// Rank returns the rank of the current combination
func (p *Product) Rank() uint64 {
	return p.rank
}

// Perms returns the current permutation of every block. The slices are reused
// by Next and must not be modified by the caller.
func (p *Product) Perms() [][]int {
	return p.perms
}
