/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: presets_test.go
Description: Tests for the preset registry and preset files.
*/

package presets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestBuiltins tests that every built-in partitioning fits its alphabets
func TestBuiltins(t *testing.T) {
	r := presets.NewRegistry()

	standard, err := r.Alphabet("Standard")
	require.NoError(t, err)
	assert.Equal(t, 26, standard.Len())

	symbols27, err := r.Alphabet("Symbols27")
	require.NoError(t, err)
	assert.Equal(t, 27, symbols27.Len())

	for _, name := range []string{"Slow", "Normal", "Fast"} {
		p, err := r.Partitioning(name)
		require.NoError(t, err)
		assert.NoError(t, p.Validate(26), name)

		p27, err := r.Partitioning(name + "27")
		require.NoError(t, err)
		assert.NoError(t, p27.Validate(27), name+"27")
	}

	normal, _ := r.Partitioning("Normal")
	total, ok := normal.SearchSpace()
	assert.True(t, ok)
	assert.Equal(t, uint64(497664000), total)

	_, err = r.Alphabet("Klingon")
	assert.ErrorIs(t, err, presets.ErrUnknownPreset)
	_, err = r.Partitioning("Instant")
	assert.ErrorIs(t, err, presets.ErrUnknownPreset)

	assert.Contains(t, r.AlphabetNames(), "Reversed27")
	assert.Equal(t, []string{"Fast", "Fast27", "Normal", "Normal27", "Slow", "Slow27"}, r.PartitioningNames())
}

// TestLoad tests merging presets from YAML
func TestLoad(t *testing.T) {
	r := presets.NewRegistry()
	err := r.Load([]byte(`
alphabets:
  Vowels: "aeiou"
  Standard: "zyxwvutsrqponmlkjihgfedcba"
partitionings:
  Pairs: [2, 2, 1]
`))
	require.NoError(t, err)

	vowels, err := r.Alphabet("Vowels")
	require.NoError(t, err)
	assert.Equal(t, "aeiou", vowels.String())

	overridden, _ := r.Alphabet("Standard")
	assert.Equal(t, 'z', overridden.At(0))

	pairs, err := r.Partitioning("Pairs")
	require.NoError(t, err)
	assert.NoError(t, pairs.Validate(vowels.Len()))
}

// TestLoadInvalid tests that a bad file leaves the registry untouched
func TestLoadInvalid(t *testing.T) {
	r := presets.NewRegistry()

	err := r.Load([]byte("alphabets:\n  Good: \"abc\"\n  Bad: \"abca\"\n"))
	assert.ErrorIs(t, err, cipher.ErrDuplicateSymbol)
	_, err = r.Alphabet("Good")
	assert.ErrorIs(t, err, presets.ErrUnknownPreset)

	err = r.Load([]byte("partitionings:\n  Zero: [3, 0]\n"))
	assert.ErrorIs(t, err, cipher.ErrInvalidBlock)

	assert.Error(t, r.Load([]byte("alphabets: [not, a, map]")))
}

// TestLoadFileAndExport tests a file round trip through Export
func TestLoadFileAndExport(t *testing.T) {
	data, err := yaml.Marshal(presets.NewRegistry().Export())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	r := presets.NewRegistry()
	r.AddAlphabet("Extra", cipher.MustParseAlphabet("xyz"))
	r.AddPartitioning("Extra", cipher.MustPartitioning(3))
	require.NoError(t, r.LoadFile(path))

	exported := r.Export()
	assert.Equal(t, "xyz", exported.Alphabets["Extra"])
	assert.Equal(t, []int{3}, exported.Partitionings["Extra"])
	assert.Equal(t, "!§$%&/()=?-_{[]}#'+~:;.,@<", exported.Alphabets["Symbols"])

	assert.Error(t, r.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
