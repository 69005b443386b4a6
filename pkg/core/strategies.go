/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: strategies.go
Description: The four decoding strategies. Sort pairs symbols by frequency rank.
Fitness scores every permutation of the full alphabet. The partitioned strategies
start from the rank-paired key, split it into blocks and either score the full
product of block permutations (slow) or solve each block on its own and join the
winners (fast).
*/

package core

import (
	"context"
	"fmt"
	"math/bits"
	"time"

	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/permute"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// sortKey pairs reference and encoded symbols of equal frequency rank
func sortKey(problem *Problem) (cipher.Key, error) {
	sortedEnc := problem.freqEnc.SortedSymbols()
	sortedRef := problem.freqRef.SortedSymbols()
	return cipher.NewKey(sortedRef, sortedEnc)
}

// DecodeSort pairs the symbols of both alphabets by ascending frequency.
// No candidates are searched; the result is the seed of the partitioned strategies.
func (e *Engine) DecodeSort(problem *Problem) (*Result, error) {
	started := time.Now()
	id := newSearchID()
	e.begin(id, StrategySort, 1)

	key, err := sortKey(problem)
	if err != nil {
		return nil, e.fail(id, StrategySort, err)
	}
	score, err := e.scoreKey(problem, key)
	if err != nil {
		return nil, e.fail(id, StrategySort, err)
	}

	best := Candidate{Key: key, Score: score}
	return e.finish(&Result{
		ID:          id,
		Strategy:    StrategySort,
		Key:         key,
		Score:       score,
		Candidates:  1,
		Leaderboard: []Candidate{best},
	}, started), nil
}

// DecodeFitness scores every permutation of the encoded alphabet against the
// reference alphabet and returns the best key. Exact, but n! candidates.
func (e *Engine) DecodeFitness(ctx context.Context, problem *Problem) (*Result, error) {
	started := time.Now()
	id := newSearchID()

	n := problem.RefAlphabet.Len()
	if n > e.config.MaxBlockSize {
		return nil, e.fail(id, StrategyFitness, fmt.Errorf("%w: alphabet has %d symbols, limit is %d",
			ErrBlockTooLarge, n, e.config.MaxBlockSize))
	}
	if total, ok := permute.Factorial(n); !ok || total > e.config.MaxCandidates {
		return nil, e.fail(id, StrategyFitness, fmt.Errorf("%w: %d! candidates exceed limit %d",
			ErrSearchTooLarge, n, e.config.MaxCandidates))
	}

	key, err := cipher.NewKey(problem.RefAlphabet, problem.EncAlphabet)
	if err != nil {
		return nil, e.fail(id, StrategyFitness, err)
	}
	s, err := newSpace(problem, []cipher.Key{key})
	if err != nil {
		return nil, e.fail(id, StrategyFitness, err)
	}

	e.begin(id, StrategyFitness, s.total)
	board, scored, err := e.search(ctx, s, e.config.TopN)
	if err != nil {
		return nil, e.fail(id, StrategyFitness, err)
	}
	leaders, err := e.candidates(s, board)
	if err != nil {
		return nil, e.fail(id, StrategyFitness, err)
	}

	return e.finish(&Result{
		ID:          id,
		Strategy:    StrategyFitness,
		Key:         leaders[0].Key,
		Score:       leaders[0].Score,
		Candidates:  scored,
		Blocks:      1,
		Leaderboard: leaders,
	}, started), nil
}

// partitionSeed computes the rank-paired seed key and splits it into blocks
func (e *Engine) partitionSeed(problem *Problem) (cipher.Key, []cipher.Key, error) {
	if problem.Partitioning.IsZero() {
		return cipher.Key{}, nil, ErrNoPartitioning
	}
	for i, size := range problem.Partitioning.Sizes() {
		if size > e.config.MaxBlockSize {
			return cipher.Key{}, nil, fmt.Errorf("%w: block %d has %d symbols, limit is %d",
				ErrBlockTooLarge, i, size, e.config.MaxBlockSize)
		}
	}

	seed, err := sortKey(problem)
	if err != nil {
		return cipher.Key{}, nil, err
	}
	blocks, err := seed.Partition(problem.Partitioning)
	if err != nil {
		return cipher.Key{}, nil, err
	}
	return seed, blocks, nil
}

// DecodePartitionSlow scores every combination of per-block permutations of
// the seed key and returns the best full key. A symbol the seed places in the
// wrong block cannot be corrected.
func (e *Engine) DecodePartitionSlow(ctx context.Context, problem *Problem) (*Result, error) {
	started := time.Now()
	id := newSearchID()

	seed, blocks, err := e.partitionSeed(problem)
	if err != nil {
		return nil, e.fail(id, StrategyPartitionSlow, err)
	}
	s, err := newSpace(problem, blocks)
	if err != nil {
		return nil, e.fail(id, StrategyPartitionSlow, err)
	}
	if s.total > e.config.MaxCandidates {
		return nil, e.fail(id, StrategyPartitionSlow, fmt.Errorf("%w: partitioning %s yields %d candidates, limit is %d",
			ErrSearchTooLarge, problem.Partitioning, s.total, e.config.MaxCandidates))
	}

	e.begin(id, StrategyPartitionSlow, s.total)
	board, scored, err := e.search(ctx, s, e.config.TopN)
	if err != nil {
		return nil, e.fail(id, StrategyPartitionSlow, err)
	}
	leaders, err := e.candidates(s, board)
	if err != nil {
		return nil, e.fail(id, StrategyPartitionSlow, err)
	}

	return e.finish(&Result{
		ID:          id,
		Strategy:    StrategyPartitionSlow,
		Key:         leaders[0].Key,
		Seed:        seed,
		Score:       leaders[0].Score,
		Candidates:  scored,
		Blocks:      len(blocks),
		Leaderboard: leaders,
	}, started), nil
}

// DecodePartitionFast solves every block of the seed key independently with
// the brute-force search and joins the block winners. The cost is the sum of
// the block factorials instead of their product.
func (e *Engine) DecodePartitionFast(ctx context.Context, problem *Problem) (*Result, error) {
	started := time.Now()
	id := newSearchID()

	seed, blocks, err := e.partitionSeed(problem)
	if err != nil {
		return nil, e.fail(id, StrategyPartitionFast, err)
	}

	spaces := make([]*space, len(blocks))
	var total uint64
	for i, block := range blocks {
		s, err := newSpace(problem, []cipher.Key{block})
		if err != nil {
			return nil, e.fail(id, StrategyPartitionFast, err)
		}
		spaces[i] = s

		var carry uint64
		total, carry = bits.Add64(total, s.total, 0)
		if carry != 0 || total > e.config.MaxCandidates {
			return nil, e.fail(id, StrategyPartitionFast, fmt.Errorf("%w: partitioning %s exceeds limit %d",
				ErrSearchTooLarge, problem.Partitioning, e.config.MaxCandidates))
		}
	}

	e.begin(id, StrategyPartitionFast, total)

	winners := make([]Candidate, len(blocks))
	var scored uint64
	counts := make([]uint64, len(blocks))

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(e.config.WorkerCount())
	for i := range spaces {
		p.Go(func(ctx context.Context) error {
			board, n, err := e.search(ctx, spaces[i], 1)
			counts[i] = n
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			leaders, err := e.candidates(spaces[i], board)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			winners[i] = leaders[0]
			e.blockSolved(id, i, leaders[0])
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, e.fail(id, StrategyPartitionFast, err)
	}

	blockKeys := make([]cipher.Key, len(winners))
	for i, w := range winners {
		blockKeys[i] = w.Key
		scored += counts[i]
	}
	key, err := cipher.JoinKeys(blockKeys...)
	if err != nil {
		return nil, e.fail(id, StrategyPartitionFast, err)
	}
	score, err := e.scoreKey(problem, key)
	if err != nil {
		return nil, e.fail(id, StrategyPartitionFast, err)
	}

	e.logger.WithFields(logrus.Fields{
		"search": id,
		"blocks": len(blocks),
	}).Debug("Block winners joined")

	return e.finish(&Result{
		ID:          id,
		Strategy:    StrategyPartitionFast,
		Key:         key,
		Seed:        seed,
		Score:       score,
		Candidates:  scored,
		Blocks:      len(blocks),
		Leaderboard: []Candidate{{Key: key, Score: score}},
	}, started), nil
}
