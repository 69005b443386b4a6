/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: presets.go
Description: Named alphabets and partitionings. The registry resolves preset names
to concrete values before they reach the search core, which only ever sees values.
Additional presets can be merged in from a YAML file.
*/

package presets

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/kleascm/subcrack/pkg/cipher"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned for names missing from the registry
var ErrUnknownPreset = errors.New("presets: unknown preset")

// Built-in alphabet definitions
var builtinAlphabets = map[string]string{
	"Standard": "abcdefghijklmnopqrstuvwxyz",
	"Reversed": "zyxwvutsrqponmlkjihgfedcba",
	"Symbols":  "!§$%&/()=?-_{[]}#'+~:;.,@<",

	"Standard27": "abcdefghijklmnopqrstuvwxyz ",
	"Reversed27": " zyxwvutsrqponmlkjihgfedcba",
	"Symbols27":  "!§$%&/()=?-_{[]}#'+~:;.,@<|",
}

// Built-in partitioning definitions
var builtinPartitionings = map[string][]int{
	"Slow":   {6, 10, 9, 1},
	"Normal": {4, 2, 5, 5, 3, 5, 1, 1},
	"Fast":   {4, 2, 5, 2, 3, 3, 3, 2, 1, 1},

	"Slow27":   {6, 10, 9, 1, 1},
	"Normal27": {4, 2, 5, 5, 3, 5, 1, 1, 1},
	"Fast27":   {4, 2, 5, 2, 3, 3, 3, 2, 1, 1, 1},
}

// File is the on-disk layout of a preset file
type File struct {
	Alphabets     map[string]string `yaml:"alphabets"`
	Partitionings map[string][]int  `yaml:"partitionings"`
}

// Registry maps preset names to alphabets and partitionings
type Registry struct {
	mu            sync.RWMutex
	alphabets     map[string]cipher.Alphabet
	partitionings map[string]cipher.Partitioning
}

// NewRegistry creates a registry holding the built-in presets
func NewRegistry() *Registry {
	r := &Registry{
		alphabets:     make(map[string]cipher.Alphabet),
		partitionings: make(map[string]cipher.Partitioning),
	}
	for name, symbols := range builtinAlphabets {
		r.alphabets[name] = cipher.MustParseAlphabet(symbols)
	}
	for name, sizes := range builtinPartitionings {
		r.partitionings[name] = cipher.MustPartitioning(sizes...)
	}
	return r
}

// Alphabet resolves an alphabet preset
func (r *Registry) Alphabet(name string) (cipher.Alphabet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.alphabets[name]
	if !ok {
		return cipher.Alphabet{}, fmt.Errorf("%w: alphabet %q", ErrUnknownPreset, name)
	}
	return a, nil
}

// Partitioning resolves a partitioning preset
func (r *Registry) Partitioning(name string) (cipher.Partitioning, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.partitionings[name]
	if !ok {
		return cipher.Partitioning{}, fmt.Errorf("%w: partitioning %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// AddAlphabet registers or replaces an alphabet preset
func (r *Registry) AddAlphabet(name string, a cipher.Alphabet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alphabets[name] = a
}

// AddPartitioning registers or replaces a partitioning preset
func (r *Registry) AddPartitioning(name string, p cipher.Partitioning) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partitionings[name] = p
}

// AlphabetNames returns the alphabet preset names in sorted order
func (r *Registry) AlphabetNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.alphabets))
	for name := range r.alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PartitioningNames returns the partitioning preset names in sorted order
func (r *Registry) PartitioningNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.partitionings))
	for name := range r.partitionings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load merges presets from YAML data. Every entry is validated before any of
// them is registered, so a bad file leaves the registry unchanged.
func (r *Registry) Load(data []byte) error {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse preset file: %w", err)
	}

	alphabets := make(map[string]cipher.Alphabet, len(file.Alphabets))
	for name, symbols := range file.Alphabets {
		a, err := cipher.ParseAlphabet(symbols)
		if err != nil {
			return fmt.Errorf("alphabet %q: %w", name, err)
		}
		alphabets[name] = a
	}

	partitionings := make(map[string]cipher.Partitioning, len(file.Partitionings))
	for name, sizes := range file.Partitionings {
		p, err := cipher.NewPartitioning(sizes...)
		if err != nil {
			return fmt.Errorf("partitioning %q: %w", name, err)
		}
		partitionings[name] = p
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, a := range alphabets {
		r.alphabets[name] = a
	}
	for name, p := range partitionings {
		r.partitionings[name] = p
	}
	return nil
}

// LoadFile merges presets from a YAML file
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read preset file: %w", err)
	}
	return r.Load(data)
}

// Export returns the registry contents in file layout, suitable for yaml.Marshal
func (r *Registry) Export() File {
	r.mu.RLock()
	defer r.mu.RUnlock()

	file := File{
		Alphabets:     make(map[string]string, len(r.alphabets)),
		Partitionings: make(map[string][]int, len(r.partitionings)),
	}
	for name, a := range r.alphabets {
		file.Alphabets[name] = a.String()
	}
	for name, p := range r.partitionings {
		file.Partitionings[name] = p.Sizes()
	}
	return file
}
