/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: textload.go
Description: Text loading for the cipher core. Raw input is normalised, lowercased,
run through a caller-supplied substitution table (for example diacritic folding)
and finally filtered down to the symbols of a known alphabet. HTML documents are
reduced to their visible text first.
*/

package textload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kleascm/subcrack/pkg/cipher"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrNoSymbols is returned when filtering leaves nothing of the input
var ErrNoSymbols = errors.New("textload: no alphabet symbols in input")

// DefaultReplace folds German umlauts and sharp s into their ASCII spellings
var DefaultReplace = map[string]string{
	"ä": "ae",
	"ö": "oe",
	"ü": "ue",
	"ß": "ss",
}

// Options controls how raw input becomes a Text
type Options struct {
	Alphabet cipher.Alphabet   // Symbols to keep
	Replace  map[string]string // Applied after lowercasing, longest match first
	KeepCase bool              // Skip lowercasing
	Language language.Tag      // Casing rules, language.Und when unset
}

// FromString builds a text from a string
func FromString(s string, opts Options) (cipher.Text, error) {
	if opts.Alphabet.IsZero() {
		return cipher.Text{}, cipher.ErrEmptyAlphabet
	}

	s = norm.NFC.String(s)
	if !opts.KeepCase {
		s = cases.Lower(opts.Language).String(s)
	}
	s = replacer(opts.Replace).Replace(s)

	symbols := make([]rune, 0, len(s))
	for _, r := range s {
		if opts.Alphabet.Contains(r) {
			symbols = append(symbols, r)
		}
	}
	if len(symbols) == 0 {
		return cipher.Text{}, ErrNoSymbols
	}

	return cipher.NewText(symbols, opts.Alphabet)
}

// FromReader builds a text from everything readable from r
func FromReader(r io.Reader, opts Options) (cipher.Text, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return cipher.Text{}, fmt.Errorf("failed to read input: %w", err)
	}
	return FromString(string(data), opts)
}

// FromHTML builds a text from the visible text of an HTML document
func FromHTML(r io.Reader, opts Options) (cipher.Text, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return cipher.Text{}, fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	return FromString(doc.Text(), opts)
}

// FromFile builds a text from a file. Files ending in .html or .htm are
// parsed as HTML.
func FromFile(path string, opts Options) (cipher.Text, error) {
	f, err := os.Open(path)
	if err != nil {
		return cipher.Text{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FromHTML(f, opts)
	default:
		return FromReader(f, opts)
	}
}

// replacer orders the table longest key first so overlapping keys resolve the
// same way on every run
func replacer(table map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(table))
	for k := range table {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, table[k])
	}
	return strings.NewReplacer(pairs...)
}
