/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cipher_test.go
Description: Tests for the cipher data model. Covers alphabets, partitionings,
keys, texts and frequency profiles, including the round trip and profile
equivalence properties the search strategies rely on.
*/

package cipher_test

import (
	"encoding/json"
	"testing"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	standard = cipher.MustParseAlphabet("abcdefghijklmnopqrstuvwxyz")
	reversed = cipher.MustParseAlphabet("zyxwvutsrqponmlkjihgfedcba")
)

const sample = "thequickbrownfoxjumpsoverthelazydogandkeepsrunninguntilthesunsets"

// TestAlphabet tests alphabet construction and lookups
func TestAlphabet(t *testing.T) {
	a, err := cipher.ParseAlphabet("abc")
	require.NoError(t, err)

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 'b', a.At(1))
	assert.True(t, a.Contains('c'))
	assert.False(t, a.Contains('d'))

	i, ok := a.Index('c')
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	assert.Equal(t, "abc", a.String())
	assert.Equal(t, "'a' 'b' 'c'", a.Quoted())

	// Symbols hands out a copy
	symbols := a.Symbols()
	symbols[0] = 'x'
	assert.Equal(t, 'a', a.At(0))

	_, err = cipher.ParseAlphabet("")
	assert.ErrorIs(t, err, cipher.ErrEmptyAlphabet)

	_, err = cipher.ParseAlphabet("abca")
	assert.ErrorIs(t, err, cipher.ErrDuplicateSymbol)

	assert.True(t, a.Equal(cipher.MustParseAlphabet("abc")))
	assert.False(t, a.Equal(cipher.MustParseAlphabet("acb")))
}

// TestAlphabetPartition tests contiguous block splitting
func TestAlphabetPartition(t *testing.T) {
	blocks, err := cipher.MustParseAlphabet("abcdef").Partition(cipher.MustPartitioning(2, 3, 1))
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, "ab", blocks[0].String())
	assert.Equal(t, "cde", blocks[1].String())
	assert.Equal(t, "f", blocks[2].String())

	_, err = cipher.MustParseAlphabet("abcdef").Partition(cipher.MustPartitioning(2, 3))
	assert.ErrorIs(t, err, cipher.ErrPartitionMismatch)
}

// TestPartitioning tests partitioning parsing, validation and search space sizes
func TestPartitioning(t *testing.T) {
	p, err := cipher.ParsePartitioning("4, 2,5")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 5}, p.Sizes())
	assert.Equal(t, 3, p.Blocks())
	assert.Equal(t, 11, p.Sum())
	assert.Equal(t, 5, p.MaxBlock())
	assert.Equal(t, "4,2,5", p.String())
	assert.NoError(t, p.Validate(11))
	assert.ErrorIs(t, p.Validate(12), cipher.ErrPartitionMismatch)

	total, ok := p.SearchSpace()
	assert.True(t, ok)
	assert.Equal(t, uint64(24*2*120), total)

	_, err = cipher.NewPartitioning(3, 0)
	assert.ErrorIs(t, err, cipher.ErrInvalidBlock)
	_, err = cipher.ParsePartitioning("3,x")
	assert.ErrorIs(t, err, cipher.ErrInvalidBlock)
	_, err = cipher.NewPartitioning()
	assert.ErrorIs(t, err, cipher.ErrInvalidBlock)

	_, ok = cipher.MustPartitioning(26).SearchSpace()
	assert.False(t, ok, "26! does not fit in a uint64")

	assert.True(t, cipher.Partitioning{}.IsZero())
}

// TestKey tests key lookups in both directions
func TestKey(t *testing.T) {
	key, err := cipher.NewKey(cipher.MustParseAlphabet("abc"), cipher.MustParseAlphabet("xyz"))
	require.NoError(t, err)

	s, err := key.Encode('a')
	require.NoError(t, err)
	assert.Equal(t, 'x', s)

	s, err = key.Decode('z')
	require.NoError(t, err)
	assert.Equal(t, 'c', s)

	_, err = key.Encode('q')
	assert.ErrorIs(t, err, cipher.ErrUnknownSymbol)

	assert.Equal(t, "a→x b→y c→z", key.String())
	assert.Equal(t, map[rune]rune{'a': 'x', 'b': 'y', 'c': 'z'}, key.Map())

	_, err = cipher.NewKey(cipher.MustParseAlphabet("abc"), cipher.MustParseAlphabet("xy"))
	assert.ErrorIs(t, err, cipher.ErrAlphabetMismatch)
}

// TestKeyFlipped tests that flipping twice restores the key
func TestKeyFlipped(t *testing.T) {
	key := cipher.MustKey(standard, reversed)
	flipped := key.Flipped()

	assert.True(t, flipped.SymbolsRef().Equal(reversed))
	assert.True(t, key.Equal(flipped.Flipped()))
}

// TestKeyCompare tests key equality and agreement
func TestKeyCompare(t *testing.T) {
	key := cipher.MustKey(cipher.MustParseAlphabet("abcd"), cipher.MustParseAlphabet("wxyz"))
	same := cipher.MustKey(cipher.MustParseAlphabet("dcba"), cipher.MustParseAlphabet("zyxw"))
	half := cipher.MustKey(cipher.MustParseAlphabet("abcd"), cipher.MustParseAlphabet("wxzy"))

	assert.True(t, key.Equal(same), "equality ignores listing order")
	assert.Equal(t, 1.0, key.Compare(same))
	assert.Equal(t, 0.5, key.Compare(half))
	assert.False(t, key.Equal(half))
}

// TestKeyPartitionAndJoin tests splitting a key into blocks and joining them again
func TestKeyPartitionAndJoin(t *testing.T) {
	key := cipher.MustKey(standard, reversed)
	blocks, err := key.Partition(cipher.MustPartitioning(4, 2, 5, 2, 3, 3, 3, 2, 1, 1))
	require.NoError(t, err)
	require.Len(t, blocks, 10)
	assert.Equal(t, "abcd", blocks[0].SymbolsRef().String())
	assert.Equal(t, "zyxw", blocks[0].SymbolsEnc().String())

	joined, err := cipher.JoinKeys(blocks...)
	require.NoError(t, err)
	assert.True(t, key.Equal(joined))

	_, err = cipher.JoinKeys(blocks[0], blocks[0])
	assert.ErrorIs(t, err, cipher.ErrKeyConflict)
}

// TestKeyJSON tests the encoded form of keys, including the zero key
func TestKeyJSON(t *testing.T) {
	key := cipher.MustKey(cipher.MustParseAlphabet("ab "), cipher.MustParseAlphabet("yx!"))

	data, err := json.Marshal(key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ref":"ab ","enc":"yx!"}`, string(data))

	var decoded cipher.Key
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, key.Equal(decoded))

	data, err = json.Marshal(cipher.Key{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.IsZero())

	err = json.Unmarshal([]byte(`{"ref":"abc","enc":"xy"}`), &decoded)
	assert.ErrorIs(t, err, cipher.ErrAlphabetMismatch)
}

// TestKeyRestrict tests restricting a key to a subset of its domain
func TestKeyRestrict(t *testing.T) {
	key := cipher.MustKey(standard, reversed)
	sub, err := key.Restrict(cipher.MustParseAlphabet("za"))
	require.NoError(t, err)
	assert.Equal(t, "z→a a→z", sub.String())

	_, err = key.Restrict(cipher.MustParseAlphabet("a!"))
	assert.ErrorIs(t, err, cipher.ErrUnknownSymbol)
}

// TestTextRoundTrip tests that decoding an encoded text restores it
func TestTextRoundTrip(t *testing.T) {
	text, err := cipher.ParseText(sample, standard)
	require.NoError(t, err)

	key := cipher.MustKey(standard, reversed)
	encoded, err := text.Encode(key)
	require.NoError(t, err)
	assert.False(t, encoded.Equal(text))
	assert.Equal(t, 'g', encoded.Symbols()[0], "t maps to g under the reversed key")

	decoded, err := encoded.Decode(key)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(text))
	assert.Equal(t, sample, decoded.String())
}

// TestTextErrors tests rejection of symbols outside the alphabet
func TestTextErrors(t *testing.T) {
	_, err := cipher.ParseText("abc!", standard)
	assert.ErrorIs(t, err, cipher.ErrUnknownSymbol)

	empty, err := cipher.ParseText("", standard)
	require.NoError(t, err)
	_, err = empty.Frequencies(standard)
	assert.ErrorIs(t, err, cipher.ErrEmptyText)
}

// TestTextCompare tests positional agreement between texts
func TestTextCompare(t *testing.T) {
	a, _ := cipher.ParseText("abcd", standard)
	b, _ := cipher.ParseText("abzz", standard)
	c, _ := cipher.ParseText("ab", standard)

	assert.Equal(t, 1.0, a.Compare(a))
	assert.Equal(t, 0.5, a.Compare(b))
	assert.Equal(t, 0.5, a.Compare(c), "missing positions count as disagreements")
	assert.Equal(t, "ab", a.Slice(2).String())
	assert.Equal(t, "abcd", a.Slice(10).String())
}

// TestFrequencies tests profile computation
func TestFrequencies(t *testing.T) {
	text, err := cipher.ParseText("aaaaabbbcc", cipher.MustParseAlphabet("abc"))
	require.NoError(t, err)

	freq, err := text.Frequencies(cipher.MustParseAlphabet("abc"))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.3, 0.2}, freq.Rates(), 1e-12)
	assert.InDelta(t, 1.0, freq.Sum(), 1e-12)

	rate, err := freq.Rate('b')
	require.NoError(t, err)
	assert.InDelta(t, 0.3, rate, 1e-12)

	_, err = freq.Rate('z')
	assert.ErrorIs(t, err, cipher.ErrUnknownSymbol)

	assert.Equal(t, "cba", freq.SortedSymbols().String())

	rates, err := freq.RatesFor(cipher.MustParseAlphabet("ca"))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.2, 0.5}, rates, 1e-12)

	_, err = cipher.NewFrequencies(cipher.MustParseAlphabet("abc"), []float64{1})
	assert.ErrorIs(t, err, cipher.ErrAlphabetMismatch)
}

// TestFrequenciesSumToOne tests that every profile of a filtered text sums to one
func TestFrequenciesSumToOne(t *testing.T) {
	text, err := cipher.ParseText(sample, standard)
	require.NoError(t, err)

	freq, err := text.Frequencies(standard)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, freq.Sum(), 1e-9)
}

// TestFrequenciesEncodeEquivalence tests that encoding a profile matches the
// profile of the encoded text
func TestFrequenciesEncodeEquivalence(t *testing.T) {
	text, err := cipher.ParseText(sample, standard)
	require.NoError(t, err)
	key := cipher.MustKey(standard, reversed)

	freq, err := text.Frequencies(standard)
	require.NoError(t, err)
	encodedFreq, err := freq.Encode(key)
	require.NoError(t, err)

	encodedText, err := text.Encode(key)
	require.NoError(t, err)
	textFreq, err := encodedText.Frequencies(reversed)
	require.NoError(t, err)

	for _, s := range reversed.Symbols() {
		want, err := textFreq.Rate(s)
		require.NoError(t, err)
		got, err := encodedFreq.Rate(s)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12, "symbol %q", s)
	}

	decodedFreq, err := encodedFreq.Decode(key)
	require.NoError(t, err)
	assert.Equal(t, freq.Map(), decodedFreq.Map())
}
