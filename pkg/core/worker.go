/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: worker.go
Description: Worker implementation for parallel candidate scoring. A worker walks a
contiguous rank range of a search space, keeps a private bounded heap of the best
assignments and folds it into the shared leaderboard once the range is done, so
the only synchronisation is one merge per chunk.
*/

package core

import (
	"context"
	"sync"
	"time"

	"github.com/kleascm/subcrack/pkg/permute"
	"github.com/sirupsen/logrus"
)

// cancelCheckInterval is how many candidates a worker scores between context checks
const cancelCheckInterval = 4096

// Worker scores candidate keys for the engine
type Worker struct {
	ID     int            // Unique worker identifier
	logger *logrus.Logger // Shared engine logger

	// Performance tracking
	chunks     int64     // Rank ranges completed
	candidates int64     // Candidates scored
	busy       time.Duration
	startTime  time.Time

	mu sync.RWMutex
}

// NewWorker creates a new worker instance
func NewWorker(id int, logger *logrus.Logger) *Worker {
	return &Worker{
		ID:        id,
		logger:    logger,
		startTime: time.Now(),
	}
}

// scan scores every candidate with rank in [from, to) and merges the best of
// them into board. It returns the number of candidates scored; on cancellation
// the partial result is discarded.
func (w *Worker) scan(ctx context.Context, s *space, from, to uint64, board *leaderboard) (uint64, error) {
	start := time.Now()

	product, err := permute.NewProduct(s.sizes...)
	if err != nil {
		return 0, err
	}
	product.Seek(from)

	local := newBoundedHeap(board.capacity())
	var scored uint64
	for rank := from; rank < to && product.Next(); rank++ {
		if scored%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return scored, err
			}
		}

		perms := product.Perms()
		score := s.score(perms)
		if local.accepts(score, rank) {
			local.push(entry{score: score, rank: rank, perm: s.flatten(perms)})
		}
		scored++
	}

	board.merge(local)

	w.mu.Lock()
	w.chunks++
	w.candidates += int64(scored)
	w.busy += time.Since(start)
	w.mu.Unlock()

	w.logger.WithFields(logrus.Fields{
		"worker":     w.ID,
		"from":       from,
		"to":         to,
		"candidates": scored,
		"duration":   time.Since(start),
	}).Debug("Chunk scored")

	return scored, nil
}

// GetStats returns worker performance statistics
func (w *Worker) GetStats() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["id"] = w.ID
	stats["chunks"] = w.chunks
	stats["candidates"] = w.candidates
	stats["busy"] = w.busy
	stats["uptime"] = time.Since(w.startTime)

	if seconds := w.busy.Seconds(); seconds > 0 {
		stats["candidates_per_second"] = float64(w.candidates) / seconds
	}

	return stats
}
