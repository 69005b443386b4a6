/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: textload_test.go
Description: Tests for text loading: case folding, replacement, filtering and
HTML extraction.
*/

package textload_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/textload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var standard = cipher.MustParseAlphabet("abcdefghijklmnopqrstuvwxyz")

// TestFromString tests lowercasing, umlaut folding and filtering
func TestFromString(t *testing.T) {
	text, err := textload.FromString("Größe, Übermut & Ära!", textload.Options{
		Alphabet: standard,
		Replace:  textload.DefaultReplace,
	})
	require.NoError(t, err)
	assert.Equal(t, "groesseuebermutaera", text.String())
}

// TestFromStringKeepCase tests that KeepCase drops uppercase symbols outside the alphabet
func TestFromStringKeepCase(t *testing.T) {
	text, err := textload.FromString("Hello World", textload.Options{Alphabet: standard, KeepCase: true})
	require.NoError(t, err)
	assert.Equal(t, "elloorld", text.String())
}

// TestFromStringSpaceAlphabet tests alphabets that include the space symbol
func TestFromStringSpaceAlphabet(t *testing.T) {
	alphabet := cipher.MustParseAlphabet("abcdefghijklmnopqrstuvwxyz ")
	text, err := textload.FromString("Der Sandmann.", textload.Options{Alphabet: alphabet})
	require.NoError(t, err)
	assert.Equal(t, "der sandmann", text.String())
}

// TestFromStringNormalization tests that decomposed umlauts are composed before replacement
func TestFromStringNormalization(t *testing.T) {
	decomposed := "u\u0308ber"
	text, err := textload.FromString(decomposed, textload.Options{Alphabet: standard, Replace: textload.DefaultReplace})
	require.NoError(t, err)
	assert.Equal(t, "ueber", text.String())
}

// TestFromStringErrors tests empty results and missing alphabets
func TestFromStringErrors(t *testing.T) {
	_, err := textload.FromString("1234 !?", textload.Options{Alphabet: standard})
	assert.ErrorIs(t, err, textload.ErrNoSymbols)

	_, err = textload.FromString("abc", textload.Options{})
	assert.ErrorIs(t, err, cipher.ErrEmptyAlphabet)
}

// TestFromHTML tests that only visible text is kept
func TestFromHTML(t *testing.T) {
	doc := `<html><head><title>T</title><style>body { color: red }</style></head>
<body><p>Hallo</p><script>var x = "zzz";</script><div>Welt</div></body></html>`

	text, err := textload.FromHTML(strings.NewReader(doc), textload.Options{Alphabet: standard})
	require.NoError(t, err)
	assert.Equal(t, "thallowelt", text.String())
}

// TestFromFile tests loading plain and HTML files
func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("Ab<b>C</b>"), 0644))
	text, err := textload.FromFile(plain, textload.Options{Alphabet: standard})
	require.NoError(t, err)
	assert.Equal(t, "abbcb", text.String())

	page := filepath.Join(dir, "page.HTML")
	require.NoError(t, os.WriteFile(page, []byte("<p>Ab<b>C</b></p>"), 0644))
	text, err = textload.FromFile(page, textload.Options{Alphabet: standard})
	require.NoError(t, err)
	assert.Equal(t, "abc", text.String())

	_, err = textload.FromFile(filepath.Join(dir, "missing.txt"), textload.Options{Alphabet: standard})
	assert.Error(t, err)
}
