/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fitness.go
Description: Divergence scores between two frequency profiles over a shared symbol
set. Lower is better for every score in this package. Squared is used to report
final quality, Dot is the per-candidate score used by the key search.
*/

package fitness

import (
	"fmt"

	"github.com/kleascm/subcrack/pkg/cipher"
)

// Squared returns the sum over symbols of (p1[s] - p2[s])². 0 is a perfect match.
func Squared(p1, p2 cipher.Frequencies, symbols cipher.Alphabet) (float64, error) {
	r1, r2, err := aligned(p1, p2, symbols)
	if err != nil {
		return 0, err
	}
	return SquaredRates(r1, r2), nil
}

// Dot returns the negated sum over symbols of p1[s] * p2[s]
func Dot(p1, p2 cipher.Frequencies, symbols cipher.Alphabet) (float64, error) {
	r1, r2, err := aligned(p1, p2, symbols)
	if err != nil {
		return 0, err
	}
	return DotRates(r1, r2), nil
}

// SquaredRates is Squared over two rate vectors already aligned by position
func SquaredRates(r1, r2 []float64) float64 {
	total := 0.0
	for i := range r1 {
		d := r1[i] - r2[i]
		total += d * d
	}
	return total
}

// DotRates is Dot over two rate vectors already aligned by position
func DotRates(r1, r2 []float64) float64 {
	total := 0.0
	for i := range r1 {
		total += r1[i] * r2[i]
	}
	return -total
}

func aligned(p1, p2 cipher.Frequencies, symbols cipher.Alphabet) ([]float64, []float64, error) {
	r1, err := p1.RatesFor(symbols)
	if err != nil {
		return nil, nil, fmt.Errorf("first profile: %w", err)
	}
	r2, err := p2.RatesFor(symbols)
	if err != nil {
		return nil, nil, fmt.Errorf("second profile: %w", err)
	}
	return r1, r2, nil
}
