/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for search telemetry. The
engine notifies reporters when a search starts, when a block of a partitioned
search is solved and when a search finishes.
*/

package core

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Reporter defines the interface for telemetry and reporting hooks
type Reporter interface {
	// OnSearchStarted is called before any candidate is scored.
	OnSearchStarted(id string, strategy Strategy, candidates uint64)
	// OnBlockSolved is called when one block of partition-fast has its best key.
	OnBlockSolved(id string, block int, best Candidate)
	// OnSearchFinished is called with the final result.
	OnSearchFinished(result *Result)
}

// LoggerReporter logs search events using logrus
type LoggerReporter struct {
	logger *logrus.Logger
}

// NewLoggerReporter creates a new LoggerReporter
func NewLoggerReporter(logger *logrus.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnSearchStarted logs the size of the search
func (r *LoggerReporter) OnSearchStarted(id string, strategy Strategy, candidates uint64) {
	r.logger.WithFields(logrus.Fields{
		"search":     id,
		"strategy":   strategy,
		"candidates": candidates,
	}).Info("Search started")
}

// OnBlockSolved logs the winning sub-key of a block
func (r *LoggerReporter) OnBlockSolved(id string, block int, best Candidate) {
	r.logger.WithFields(logrus.Fields{
		"search": id,
		"block":  block,
		"key":    best.Key.String(),
		"score":  best.Score,
	}).Debug("Block solved")
}

// OnSearchFinished logs the result summary
func (r *LoggerReporter) OnSearchFinished(result *Result) {
	r.logger.WithFields(logrus.Fields{
		"search":     result.ID,
		"strategy":   result.Strategy,
		"score":      result.Score,
		"candidates": result.Candidates,
		"duration":   result.Duration,
	}).Info("Search finished")
}

// RecordingReporter keeps every event in memory. Useful for tests and for
// callers that want to inspect per-block results after a search.
type RecordingReporter struct {
	mu       sync.Mutex
	Started  []Strategy
	Blocks   map[int]Candidate
	Finished []*Result
}

// NewRecordingReporter creates an empty RecordingReporter
func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{Blocks: make(map[int]Candidate)}
}

// OnSearchStarted records the strategy
func (r *RecordingReporter) OnSearchStarted(id string, strategy Strategy, candidates uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Started = append(r.Started, strategy)
}

// OnBlockSolved records the block winner
func (r *RecordingReporter) OnBlockSolved(id string, block int, best Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Blocks[block] = best
}

// OnSearchFinished records the result
func (r *RecordingReporter) OnSearchFinished(result *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finished = append(r.Finished, result)
}
