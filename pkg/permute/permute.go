/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: permute.go
Description: Lazy permutation sequences. Permutations of [0,n) are produced in
lexicographic order, one at a time, without materialising the whole set. Ranking
and unranking let a search split the sequence into independent ranges.
*/

package permute

import (
	"errors"
	"math/bits"
)

// ErrTooLarge is returned when a sequence length does not fit in a uint64
var ErrTooLarge = errors.New("permute: sequence too large")

// Factorial returns n! and whether it fits in a uint64
func Factorial(n int) (uint64, bool) {
	total := uint64(1)
	for k := 2; k <= n; k++ {
		hi, lo := bits.Mul64(total, uint64(k))
		if hi != 0 {
			return 0, false
		}
		total = lo
	}
	return total, true
}

// Identity returns the permutation 0..n-1
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// NextPermutation advances p to its lexicographic successor in place.
// It returns false, leaving p untouched, when p is the last permutation.
func NextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

// Unrank returns the permutation of [0,n) at the given lexicographic rank.
// rank must be below n!.
func Unrank(n int, rank uint64) []int {
	pool := Identity(n)
	out := make([]int, 0, n)

	for k := n; k > 0; k-- {
		f, _ := Factorial(k - 1)
		idx := rank / f
		rank %= f
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

// Rank returns the lexicographic rank of a permutation of [0,len(p))
func Rank(p []int) uint64 {
	var rank uint64
	n := len(p)
	for i := 0; i < n; i++ {
		smaller := 0
		for j := i + 1; j < n; j++ {
			if p[j] < p[i] {
				smaller++
			}
		}
		f, _ := Factorial(n - 1 - i)
		rank += uint64(smaller) * f
	}
	return rank
}

// Sequence lazily yields every permutation of [0,n) in lexicographic order.
// It is restartable with Reset.
type Sequence struct {
	n       int
	perm    []int
	index   uint64
	started bool
	done    bool
}

// NewSequence creates a sequence over permutations of [0,n)
func NewSequence(n int) *Sequence {
	return &Sequence{n: n}
}

// Next advances to the next permutation and reports whether one exists
func (s *Sequence) Next() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.perm = Identity(s.n)
		s.started = true
		return true
	}
	if !NextPermutation(s.perm) {
		s.done = true
		return false
	}
	s.index++
	return true
}

// Perm returns the current permutation. The slice is reused by Next and must
// not be modified by the caller.
func (s *Sequence) Perm() []int {
	return s.perm
}

// Index returns the rank of the current permutation
func (s *Sequence) Index() uint64 {
	return s.index
}

// Reset rewinds the sequence to before its first permutation
func (s *Sequence) Reset() {
	s.perm = nil
	s.index = 0
	s.started = false
	s.done = false
}
