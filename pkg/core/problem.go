/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: problem.go
Description: Problem definition for a key search. Bundles the encrypted text and
alphabet, the reference text and alphabet and an optional partitioning, and
precomputes both frequency profiles once so strategies never rescan the texts.
*/

package core

import (
	"fmt"

	"github.com/kleascm/subcrack/pkg/cipher"
)

// Problem is the read-only input shared by every strategy and worker
type Problem struct {
	Encrypted    cipher.Text
	EncAlphabet  cipher.Alphabet
	Reference    cipher.Text
	RefAlphabet  cipher.Alphabet
	Partitioning cipher.Partitioning // Zero value for unpartitioned strategies

	freqEnc cipher.Frequencies
	freqRef cipher.Frequencies
}

// NewProblem validates the inputs and computes both frequency profiles
func NewProblem(encrypted cipher.Text, encAlphabet cipher.Alphabet, reference cipher.Text, refAlphabet cipher.Alphabet, partitioning cipher.Partitioning) (*Problem, error) {
	if encAlphabet.Len() != refAlphabet.Len() {
		return nil, fmt.Errorf("%w: encoded alphabet has %d symbols, reference alphabet has %d",
			cipher.ErrAlphabetMismatch, encAlphabet.Len(), refAlphabet.Len())
	}
	if !partitioning.IsZero() {
		if err := partitioning.Validate(refAlphabet.Len()); err != nil {
			return nil, err
		}
	}

	freqEnc, err := encrypted.Frequencies(encAlphabet)
	if err != nil {
		return nil, fmt.Errorf("encrypted text: %w", err)
	}
	freqRef, err := reference.Frequencies(refAlphabet)
	if err != nil {
		return nil, fmt.Errorf("reference text: %w", err)
	}

	return &Problem{
		Encrypted:    encrypted,
		EncAlphabet:  encAlphabet,
		Reference:    reference,
		RefAlphabet:  refAlphabet,
		Partitioning: partitioning,
		freqEnc:      freqEnc,
		freqRef:      freqRef,
	}, nil
}

// EncryptedFrequencies returns the profile of the encrypted text over the encoded alphabet
func (p *Problem) EncryptedFrequencies() cipher.Frequencies {
	return p.freqEnc
}

// ReferenceFrequencies returns the profile of the reference text over the reference alphabet
func (p *Problem) ReferenceFrequencies() cipher.Frequencies {
	return p.freqRef
}
