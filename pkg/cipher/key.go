/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: key.go
Description: Key value type. A key is a bijection from the symbols of a reference
alphabet to the symbols of an encoded alphabet. Keys keep the order of their
reference symbols, which is the order partitioning slices them in. All
transformations return new keys.
*/

package cipher

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Key maps reference symbols to encoded symbols one to one
type Key struct {
	ref Alphabet
	enc Alphabet
}

// NewKey pairs the symbols of two equal-length alphabets in order
func NewKey(ref, enc Alphabet) (Key, error) {
	if ref.Len() != enc.Len() {
		return Key{}, fmt.Errorf("%w: %d reference symbols, %d encoded symbols", ErrAlphabetMismatch, ref.Len(), enc.Len())
	}
	if ref.IsZero() {
		return Key{}, ErrEmptyAlphabet
	}
	return Key{ref: ref, enc: enc}, nil
}

// MustKey is like NewKey but panics on error
func MustKey(ref, enc Alphabet) Key {
	k, err := NewKey(ref, enc)
	if err != nil {
		panic(err)
	}
	return k
}

// Len returns the number of symbol pairs
func (k Key) Len() int {
	return k.ref.Len()
}

// IsZero reports whether the key was never constructed
func (k Key) IsZero() bool {
	return k.ref.IsZero()
}

// SymbolsRef returns the reference alphabet in key order
func (k Key) SymbolsRef() Alphabet {
	return k.ref
}

// SymbolsEnc returns the encoded alphabet in key order
func (k Key) SymbolsEnc() Alphabet {
	return k.enc
}

// Encode maps a reference symbol to its encoded symbol
func (k Key) Encode(s rune) (rune, error) {
	i, ok := k.ref.Index(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q not in key domain", ErrUnknownSymbol, s)
	}
	return k.enc.At(i), nil
}

// Decode maps an encoded symbol back to its reference symbol
func (k Key) Decode(s rune) (rune, error) {
	i, ok := k.enc.Index(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q not in key range", ErrUnknownSymbol, s)
	}
	return k.ref.At(i), nil
}

// Flipped returns the inverse key with reference and encoded sides swapped
func (k Key) Flipped() Key {
	return Key{ref: k.enc, enc: k.ref}
}

// Partition splits the key into one sub-key per block. Reference and encoded
// alphabets are partitioned independently with the same sizes and paired
// block by block.
func (k Key) Partition(p Partitioning) ([]Key, error) {
	refBlocks, err := k.ref.Partition(p)
	if err != nil {
		return nil, err
	}
	encBlocks, err := k.enc.Partition(p)
	if err != nil {
		return nil, err
	}

	keys := make([]Key, len(refBlocks))
	for i := range refBlocks {
		keys[i] = Key{ref: refBlocks[i], enc: encBlocks[i]}
	}
	return keys, nil
}

// Restrict returns the sub-key defined over the given reference symbols, in
// the order of sub.
func (k Key) Restrict(sub Alphabet) (Key, error) {
	enc := make([]rune, sub.Len())
	for i := 0; i < sub.Len(); i++ {
		s, err := k.Encode(sub.At(i))
		if err != nil {
			return Key{}, err
		}
		enc[i] = s
	}

	encAlphabet, err := NewAlphabet(enc)
	if err != nil {
		return Key{}, err
	}
	return Key{ref: sub, enc: encAlphabet}, nil
}

// Map returns the mapping as a plain map
func (k Key) Map() map[rune]rune {
	m := make(map[rune]rune, k.Len())
	for i := 0; i < k.Len(); i++ {
		m[k.ref.At(i)] = k.enc.At(i)
	}
	return m
}

// Equal reports whether both keys map every symbol identically, ignoring order
func (k Key) Equal(other Key) bool {
	if k.Len() != other.Len() {
		return false
	}
	for i := 0; i < k.Len(); i++ {
		s, err := other.Encode(k.ref.At(i))
		if err != nil || s != k.enc.At(i) {
			return false
		}
	}
	return true
}

// Compare returns the fraction of reference symbols both keys map to the same
// encoded symbol. Symbols missing from other count as disagreements.
func (k Key) Compare(other Key) float64 {
	if k.Len() == 0 {
		return 0
	}
	agree := 0
	for i := 0; i < k.Len(); i++ {
		if s, err := other.Encode(k.ref.At(i)); err == nil && s == k.enc.At(i) {
			agree++
		}
	}
	return float64(agree) / float64(k.Len())
}

// String renders the key as space separated ref→enc pairs
func (k Key) String() string {
	var b strings.Builder
	for i := 0; i < k.Len(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%c→%c", k.ref.At(i), k.enc.At(i))
	}
	return b.String()
}

// keyJSON is the encoded form of a Key
type keyJSON struct {
	Ref string `json:"ref"`
	Enc string `json:"enc"`
}

// MarshalJSON encodes the key as its reference and encoded alphabets. The
// zero key encodes as null.
func (k Key) MarshalJSON() ([]byte, error) {
	if k.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(keyJSON{Ref: k.ref.String(), Enc: k.enc.String()})
}

// UnmarshalJSON decodes a key written by MarshalJSON
func (k *Key) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = Key{}
		return nil
	}

	var raw keyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ref, err := ParseAlphabet(raw.Ref)
	if err != nil {
		return fmt.Errorf("key reference: %w", err)
	}
	enc, err := ParseAlphabet(raw.Enc)
	if err != nil {
		return fmt.Errorf("key encoding: %w", err)
	}
	key, err := NewKey(ref, enc)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// JoinKeys merges keys with disjoint domains into a single key. The result
// lists the reference symbols of each key in argument order.
func JoinKeys(keys ...Key) (Key, error) {
	var ref, enc []rune
	for _, k := range keys {
		ref = append(ref, k.ref.symbols...)
		enc = append(enc, k.enc.symbols...)
	}

	refAlphabet, err := NewAlphabet(ref)
	if err != nil {
		return Key{}, joinError(err)
	}
	encAlphabet, err := NewAlphabet(enc)
	if err != nil {
		return Key{}, joinError(err)
	}
	return Key{ref: refAlphabet, enc: encAlphabet}, nil
}

func joinError(err error) error {
	if errors.Is(err, ErrDuplicateSymbol) {
		return fmt.Errorf("%w: %v", ErrKeyConflict, err)
	}
	return err
}
