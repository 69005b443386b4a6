/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Search engine. Owns the worker pool, dispatches a problem to one of
the decoding strategies and turns leaderboards into results. Brute-force searches
split their rank range into chunks that are scored by pooled workers and reduced
by (score, rank), which keeps the outcome independent of the number of workers.
*/

package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/subcrack/pkg/cipher"
	"github.com/kleascm/subcrack/pkg/fitness"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
)

// Engine runs key searches
type Engine struct {
	config *SearchConfig
	stats  *SearchStats
	logger *logrus.Logger

	// Worker management
	workers    []*Worker
	workerPool chan *Worker

	reporters []Reporter
	mu        sync.RWMutex
}

// NewEngine creates a search engine. A nil config selects DefaultSearchConfig,
// a nil logger a fresh logrus logger.
func NewEngine(config *SearchConfig, logger *logrus.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultSearchConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
	}

	e := &Engine{
		config: config,
		stats:  &SearchStats{StartTime: time.Now()},
		logger: logger,
	}
	e.initializeWorkers()
	return e, nil
}

// initializeWorkers creates the worker pool for parallel scoring
func (e *Engine) initializeWorkers() {
	numWorkers := e.config.WorkerCount()

	e.workers = make([]*Worker, numWorkers)
	e.workerPool = make(chan *Worker, numWorkers)

	for i := 0; i < numWorkers; i++ {
		worker := NewWorker(i, e.logger)
		e.workers[i] = worker
		e.workerPool <- worker
	}

	e.logger.Debugf("Initialized %d workers", numWorkers)
}

// Config returns the engine configuration
func (e *Engine) Config() SearchConfig {
	return *e.config
}

// AddReporter registers a Reporter for search telemetry
func (e *Engine) AddReporter(reporter Reporter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reporters = append(e.reporters, reporter)
}

// Stats returns a snapshot of the engine counters
func (e *Engine) Stats() SearchStats {
	return e.stats.Snapshot()
}

// WorkerStats returns per-worker statistics
func (e *Engine) WorkerStats() []map[string]interface{} {
	out := make([]map[string]interface{}, len(e.workers))
	for i, w := range e.workers {
		out[i] = w.GetStats()
	}
	return out
}

// Solve runs the named strategy on the problem
func (e *Engine) Solve(ctx context.Context, problem *Problem, strategy Strategy) (*Result, error) {
	switch strategy {
	case StrategySort:
		return e.DecodeSort(problem)
	case StrategyFitness:
		return e.DecodeFitness(ctx, problem)
	case StrategyPartitionSlow:
		return e.DecodePartitionSlow(ctx, problem)
	case StrategyPartitionFast:
		return e.DecodePartitionFast(ctx, problem)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}

// acquireWorker takes an idle worker, waiting until one is free
func (e *Engine) acquireWorker(ctx context.Context) (*Worker, error) {
	select {
	case w := <-e.workerPool:
		return w, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Engine) releaseWorker(w *Worker) {
	e.workerPool <- w
}

// search scores every candidate of the space and returns the board holding the
// best capacity of them together with the number of candidates scored.
func (e *Engine) search(ctx context.Context, s *space, capacity int) (*leaderboard, uint64, error) {
	board := newLeaderboard(capacity)
	var scored atomic.Uint64

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(e.config.WorkerCount())

	chunk := e.config.ChunkSize
	for from := uint64(0); from < s.total; from += chunk {
		to := from + chunk
		if to > s.total {
			to = s.total
		}
		p.Go(func(ctx context.Context) error {
			w, err := e.acquireWorker(ctx)
			if err != nil {
				return err
			}
			defer e.releaseWorker(w)

			n, err := w.scan(ctx, s, from, to, board)
			scored.Add(n)
			return err
		})
	}

	if err := p.Wait(); err != nil {
		return nil, scored.Load(), err
	}
	return board, scored.Load(), nil
}

// candidates converts board entries to keyed candidates, best first
func (e *Engine) candidates(s *space, board *leaderboard) ([]Candidate, error) {
	entries := board.sorted()
	out := make([]Candidate, 0, len(entries))
	for _, en := range entries {
		key, err := s.key(en.perm)
		if err != nil {
			return nil, err
		}
		out = append(out, Candidate{Key: key, Score: en.score, Rank: en.rank})
	}
	return out, nil
}

// scoreKey returns the dot fitness of a full key: the reference profile
// encoded with the key against the encrypted profile.
func (e *Engine) scoreKey(problem *Problem, key cipher.Key) (float64, error) {
	encoded, err := problem.freqRef.Encode(key)
	if err != nil {
		return 0, err
	}
	return fitness.Dot(encoded, problem.freqEnc, problem.EncAlphabet)
}

// begin notifies reporters that a search starts
func (e *Engine) begin(id string, strategy Strategy, candidates uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.reporters {
		r.OnSearchStarted(id, strategy, candidates)
	}
}

// blockSolved notifies reporters about a solved block
func (e *Engine) blockSolved(id string, block int, best Candidate) {
	e.stats.IncrementBlocks()
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.reporters {
		r.OnBlockSolved(id, block, best)
	}
}

// finish records statistics and notifies reporters
func (e *Engine) finish(result *Result, started time.Time) *Result {
	result.Duration = time.Since(started)
	e.stats.IncrementSearches()
	e.stats.AddCandidates(result.Candidates)

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.reporters {
		r.OnSearchFinished(result)
	}
	return result
}

// fail records a failed search
func (e *Engine) fail(id string, strategy Strategy, err error) error {
	e.stats.IncrementFailures()
	e.logger.WithFields(logrus.Fields{
		"search":   id,
		"strategy": strategy,
	}).Errorf("Search failed: %v", err)
	return err
}

func newSearchID() string {
	return uuid.NewString()
}
