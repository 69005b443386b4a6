/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the subcrack search engine. Defines the decoding
strategies, search configuration, candidate keys, search results and the
statistics shared by the engine and its workers.
*/

package core

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/kleascm/subcrack/pkg/cipher"
)

var (
	// ErrUnknownStrategy is returned for strategy names that are not registered
	ErrUnknownStrategy = errors.New("core: unknown strategy")

	// ErrNoPartitioning is returned when a partitioned strategy runs without a partitioning
	ErrNoPartitioning = errors.New("core: partitioning required")

	// ErrBlockTooLarge is returned when a single block is too large to enumerate
	ErrBlockTooLarge = errors.New("core: block too large for brute force")

	// ErrSearchTooLarge is returned when the total number of candidates exceeds the configured bound
	ErrSearchTooLarge = errors.New("core: search space too large")

	// ErrInvalidConfig is returned by SearchConfig.Validate
	ErrInvalidConfig = errors.New("core: invalid search configuration")
)

// Strategy names a decoding algorithm
type Strategy string

const (
	StrategySort          Strategy = "sort"
	StrategyFitness       Strategy = "fitness"
	StrategyPartitionSlow Strategy = "partition-slow"
	StrategyPartitionFast Strategy = "partition-fast"
)

// Strategies lists every strategy in order of increasing cost, fitness last
var Strategies = []Strategy{StrategySort, StrategyPartitionFast, StrategyPartitionSlow, StrategyFitness}

// ParseStrategy resolves a strategy name
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
}

// NeedsPartitioning reports whether the strategy splits the alphabet into blocks
func (s Strategy) NeedsPartitioning() bool {
	return s == StrategyPartitionSlow || s == StrategyPartitionFast
}

// Description returns a one-line summary of the strategy
func (s Strategy) Description() string {
	switch s {
	case StrategySort:
		return "Pairs symbols of equal frequency rank, no search"
	case StrategyFitness:
		return "Scores every permutation of the full alphabet, exact but factorial"
	case StrategyPartitionSlow:
		return "Scores every combination of per-block permutations of the rank-paired seed key"
	case StrategyPartitionFast:
		return "Solves every block of the rank-paired seed key independently and joins the results"
	default:
		return "unknown"
	}
}

// SearchConfig contains the parameters of the key search
type SearchConfig struct {
	Workers       int    `json:"workers" yaml:"workers" mapstructure:"workers"`                      // Parallel workers (0 = NumCPU)
	MaxBlockSize  int    `json:"max_block_size" yaml:"max_block_size" mapstructure:"max_block_size"` // Largest block enumerated by brute force
	MaxCandidates uint64 `json:"max_candidates" yaml:"max_candidates" mapstructure:"max_candidates"` // Upper bound on keys scored in one search
	TopN          int    `json:"top_n" yaml:"top_n" mapstructure:"top_n"`                            // Candidates kept on the leaderboard
	ChunkSize     uint64 `json:"chunk_size" yaml:"chunk_size" mapstructure:"chunk_size"`             // Candidates per worker task
}

// DefaultSearchConfig returns the configuration used when nothing is overridden
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		Workers:       0,
		MaxBlockSize:  10,
		MaxCandidates: 500_000_000,
		TopN:          1,
		ChunkSize:     1 << 16,
	}
}

// Validate checks the configuration for values the engine cannot work with
func (c SearchConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.MaxBlockSize < 1 || c.MaxBlockSize > 20 {
		return fmt.Errorf("%w: max_block_size must be between 1 and 20", ErrInvalidConfig)
	}
	if c.MaxCandidates == 0 {
		return fmt.Errorf("%w: max_candidates must be positive", ErrInvalidConfig)
	}
	if c.TopN < 1 {
		return fmt.Errorf("%w: top_n must be at least 1", ErrInvalidConfig)
	}
	if c.ChunkSize == 0 {
		return fmt.Errorf("%w: chunk_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// WorkerCount resolves the configured number of workers
func (c SearchConfig) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Candidate is one scored assignment found by a search
type Candidate struct {
	Key   cipher.Key `json:"key"`
	Score float64    `json:"score"` // fitness.Dot of the encoded reference profile against the encrypted profile
	Rank  uint64     `json:"rank"`  // Enumeration rank, breaks score ties
}

// Result is the outcome of one decoding run
type Result struct {
	ID          string        `json:"id"`
	Strategy    Strategy      `json:"strategy"`
	Key         cipher.Key    `json:"key"`
	Seed        cipher.Key    `json:"seed"` // Rank-paired starting key, zero for sort and fitness
	Score       float64       `json:"score"`
	Candidates  uint64        `json:"candidates"` // Keys scored
	Blocks      int           `json:"blocks"`
	Duration    time.Duration `json:"duration"`
	Leaderboard []Candidate   `json:"leaderboard"` // Best candidates, best first
}

// SearchStats tracks engine-wide counters
// Uses atomic operations for thread-safe updates
type SearchStats struct {
	Searches   int64     `json:"searches"`   // Completed searches
	Failures   int64     `json:"failures"`   // Searches that returned an error
	Candidates int64     `json:"candidates"` // Keys scored across all searches
	Blocks     int64     `json:"blocks"`     // Blocks solved by partitioned strategies
	StartTime  time.Time `json:"start_time"` // When the engine was created
}

// IncrementSearches atomically increments the search counter
func (s *SearchStats) IncrementSearches() {
	atomic.AddInt64(&s.Searches, 1)
}

// IncrementFailures atomically increments the failure counter
func (s *SearchStats) IncrementFailures() {
	atomic.AddInt64(&s.Failures, 1)
}

// AddCandidates atomically adds to the candidate counter
func (s *SearchStats) AddCandidates(n uint64) {
	atomic.AddInt64(&s.Candidates, int64(n))
}

// IncrementBlocks atomically increments the block counter
func (s *SearchStats) IncrementBlocks() {
	atomic.AddInt64(&s.Blocks, 1)
}

// Snapshot returns a consistent copy of the counters
func (s *SearchStats) Snapshot() SearchStats {
	return SearchStats{
		Searches:   atomic.LoadInt64(&s.Searches),
		Failures:   atomic.LoadInt64(&s.Failures),
		Candidates: atomic.LoadInt64(&s.Candidates),
		Blocks:     atomic.LoadInt64(&s.Blocks),
		StartTime:  s.StartTime,
	}
}
