/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Sentinel errors for the cipher data model. Every constructor and
transformation in this package reports contract violations through these
values so callers can match them with errors.Is.
*/

package cipher

import "errors"

var (
	// ErrEmptyText is returned when a frequency profile is requested for a
	// zero-length text.
	ErrEmptyText = errors.New("cipher: empty text")

	// ErrEmptyAlphabet is returned when an alphabet without symbols is built.
	ErrEmptyAlphabet = errors.New("cipher: empty alphabet")

	// ErrDuplicateSymbol is returned when an alphabet lists a symbol twice.
	ErrDuplicateSymbol = errors.New("cipher: duplicate symbol")

	// ErrAlphabetMismatch is returned when two alphabets that must pair up
	// symbol by symbol have different lengths.
	ErrAlphabetMismatch = errors.New("cipher: alphabet length mismatch")

	// ErrPartitionMismatch is returned when partition sizes do not sum to the
	// length of the alphabet being partitioned.
	ErrPartitionMismatch = errors.New("cipher: partition sizes do not match alphabet length")

	// ErrInvalidBlock is returned for partition blocks that are not positive.
	ErrInvalidBlock = errors.New("cipher: partition block size must be positive")

	// ErrUnknownSymbol is returned when a symbol is looked up outside the
	// alphabet, key or profile it was expected in.
	ErrUnknownSymbol = errors.New("cipher: unknown symbol")

	// ErrKeyConflict is returned when keys being joined share a reference or
	// an encoded symbol.
	ErrKeyConflict = errors.New("cipher: conflicting key domains")
)
