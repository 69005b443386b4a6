/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: leaderboard_test.go
Description: Tests for the bounded leaderboard heap.
*/

package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offer merges a single entry the way a worker merges its local heap
func offer(board *leaderboard, e entry) {
	local := newBoundedHeap(board.capacity())
	local.push(e)
	board.merge(local)
}

// heapOrdered checks the max-heap property of the board
func heapOrdered(board *leaderboard) bool {
	board.mu.Lock()
	defer board.mu.Unlock()

	h := board.heap.heap
	for i := range h {
		left, right := 2*i+1, 2*i+2
		if left < len(h) && better(h[i], h[left]) {
			return false
		}
		if right < len(h) && better(h[i], h[right]) {
			return false
		}
	}
	return true
}

// TestLeaderboardKeepsBest tests that only the best entries survive
func TestLeaderboardKeepsBest(t *testing.T) {
	board := newLeaderboard(3)
	for i, score := range []float64{5, 1, 4, 2, 3, 0.5} {
		offer(board, entry{score: score, rank: uint64(i)})
		assert.True(t, heapOrdered(board))
	}

	sorted := board.sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, []float64{0.5, 1, 2}, []float64{sorted[0].score, sorted[1].score, sorted[2].score})
	assert.Equal(t, uint64(5), sorted[0].rank)

	assert.Empty(t, newLeaderboard(1).sorted())
}

// TestLeaderboardTies tests that ties keep the lowest ranks
func TestLeaderboardTies(t *testing.T) {
	board := newLeaderboard(2)
	for _, rank := range []uint64{9, 4, 7, 1, 8} {
		offer(board, entry{score: -1, rank: rank})
	}
	sorted := board.sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, uint64(1), sorted[0].rank)
	assert.Equal(t, uint64(4), sorted[1].rank)
}

// TestLeaderboardAccepts tests that full heaps only accept better entries
func TestLeaderboardAccepts(t *testing.T) {
	h := newBoundedHeap(2)
	assert.True(t, h.accepts(9, 9))
	h.push(entry{score: 1, rank: 3})
	h.push(entry{score: 2, rank: 0})

	assert.False(t, h.accepts(2, 1), "equal score, later rank")
	assert.True(t, h.accepts(1, 2))
	assert.False(t, h.accepts(2, 0), "identical entry")
	assert.True(t, h.accepts(0.5, 99))
}

// TestLeaderboardMergeOrderIndependent tests that merging partial heaps in any
// order gives the same board as offering everything one by one
func TestLeaderboardMergeOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	entries := make([]entry, 500)
	for i := range entries {
		// coarse scores force plenty of ties
		entries[i] = entry{score: float64(rng.Intn(20)), rank: uint64(i)}
	}

	direct := newLeaderboard(10)
	for _, e := range entries {
		offer(direct, e)
	}
	want := direct.sorted()

	for trial := 0; trial < 5; trial++ {
		merged := newLeaderboard(10)
		order := rng.Perm(5)
		for _, part := range order {
			local := newBoundedHeap(10)
			for _, e := range entries[part*100 : (part+1)*100] {
				if local.accepts(e.score, e.rank) {
					local.push(e)
				}
			}
			merged.merge(local)
			assert.True(t, heapOrdered(merged))
		}
		assert.Equal(t, want, merged.sorted())
	}
}
