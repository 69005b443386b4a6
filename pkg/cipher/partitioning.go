/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: partitioning.go
Description: Partitioning value type. A partitioning is an ordered list of positive
block sizes that splits an alphabet or a key into independent sub-problems. The
product of the block factorials is the number of candidate keys a partitioned
search has to score.
*/

package cipher

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Partitioning is an immutable ordered list of block sizes
type Partitioning struct {
	sizes []int
}

// NewPartitioning creates a partitioning from positive block sizes
func NewPartitioning(sizes ...int) (Partitioning, error) {
	if len(sizes) == 0 {
		return Partitioning{}, fmt.Errorf("%w: no blocks", ErrInvalidBlock)
	}
	for i, size := range sizes {
		if size <= 0 {
			return Partitioning{}, fmt.Errorf("%w: block %d has size %d", ErrInvalidBlock, i, size)
		}
	}

	owned := make([]int, len(sizes))
	copy(owned, sizes)
	return Partitioning{sizes: owned}, nil
}

// ParsePartitioning parses a comma separated list of block sizes, e.g. "4,2,5"
func ParsePartitioning(s string) (Partitioning, error) {
	fields := strings.Split(s, ",")
	sizes := make([]int, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		size, err := strconv.Atoi(field)
		if err != nil {
			return Partitioning{}, fmt.Errorf("%w: %q", ErrInvalidBlock, field)
		}
		sizes = append(sizes, size)
	}
	return NewPartitioning(sizes...)
}

// MustPartitioning is like NewPartitioning but panics on error
func MustPartitioning(sizes ...int) Partitioning {
	p, err := NewPartitioning(sizes...)
	if err != nil {
		panic(err)
	}
	return p
}

// Sizes returns a copy of the block sizes
func (p Partitioning) Sizes() []int {
	out := make([]int, len(p.sizes))
	copy(out, p.sizes)
	return out
}

// Blocks returns the number of blocks
func (p Partitioning) Blocks() int {
	return len(p.sizes)
}

// IsZero reports whether the partitioning was never constructed
func (p Partitioning) IsZero() bool {
	return p.sizes == nil
}

// Sum returns the total number of symbols covered
func (p Partitioning) Sum() int {
	total := 0
	for _, size := range p.sizes {
		total += size
	}
	return total
}

// MaxBlock returns the largest block size
func (p Partitioning) MaxBlock() int {
	largest := 0
	for _, size := range p.sizes {
		if size > largest {
			largest = size
		}
	}
	return largest
}

// Validate checks that the partitioning covers an alphabet of length n exactly
func (p Partitioning) Validate(n int) error {
	if p.IsZero() {
		return fmt.Errorf("%w: no blocks", ErrInvalidBlock)
	}
	if sum := p.Sum(); sum != n {
		return fmt.Errorf("%w: blocks sum to %d, alphabet has %d symbols", ErrPartitionMismatch, sum, n)
	}
	return nil
}

// SearchSpace returns the product of the block factorials, i.e. the number of
// keys a partitioned brute-force search enumerates. ok is false when the value
// does not fit in a uint64.
func (p Partitioning) SearchSpace() (total uint64, ok bool) {
	total = 1
	for _, size := range p.sizes {
		for k := 2; k <= size; k++ {
			hi, lo := bits.Mul64(total, uint64(k))
			if hi != 0 {
				return 0, false
			}
			total = lo
		}
	}
	return total, true
}

// String renders the block sizes as a comma separated list
func (p Partitioning) String() string {
	parts := make([]string, len(p.sizes))
	for i, size := range p.sizes {
		parts[i] = strconv.Itoa(size)
	}
	return strings.Join(parts, ",")
}
