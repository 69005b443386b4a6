/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: leaderboard.go
Description: Bounded leaderboard of the best scored assignments. Uses a binary
max-heap keyed on (score, rank) so the worst retained entry sits at the root and
can be replaced in O(log n). The ordering is a strict total order, so merging
partial boards from any number of workers yields the same result.
*/

package core

import (
	"sort"
	"sync"
)

// entry is one scored assignment in flattened permutation form
type entry struct {
	score float64
	rank  uint64
	perm  []int
}

// better reports whether a beats b: lower score first, lower rank on ties
func better(a, b entry) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.rank < b.rank
}

// boundedHeap keeps at most capacity entries; not safe for concurrent use
type boundedHeap struct {
	heap     []entry
	capacity int
}

func newBoundedHeap(capacity int) *boundedHeap {
	if capacity < 1 {
		capacity = 1
	}
	return &boundedHeap{heap: make([]entry, 0, capacity), capacity: capacity}
}

// accepts reports whether an entry with this score and rank would be kept.
// Lets the hot loop skip allocating the permutation for losers.
func (h *boundedHeap) accepts(score float64, rank uint64) bool {
	if len(h.heap) < h.capacity {
		return true
	}
	return better(entry{score: score, rank: rank}, h.heap[0])
}

func (h *boundedHeap) push(e entry) {
	if len(h.heap) < h.capacity {
		h.heap = append(h.heap, e)
		h.bubbleUp(len(h.heap) - 1)
		return
	}
	if !better(e, h.heap[0]) {
		return
	}
	h.heap[0] = e
	h.bubbleDown(0)
}

// sorted returns the entries best first
func (h *boundedHeap) sorted() []entry {
	out := make([]entry, len(h.heap))
	copy(out, h.heap)
	sort.Slice(out, func(i, j int) bool { return better(out[i], out[j]) })
	return out
}

// bubbleUp moves the worse entry towards the root
func (h *boundedHeap) bubbleUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if better(h.heap[parent], h.heap[index]) {
			h.heap[index], h.heap[parent] = h.heap[parent], h.heap[index]
			index = parent
		} else {
			break
		}
	}
}

// bubbleDown restores the heap after the root was replaced
func (h *boundedHeap) bubbleDown(index int) {
	size := len(h.heap)
	for {
		left := 2*index + 1
		right := 2*index + 2
		worst := index

		if left < size && better(h.heap[worst], h.heap[left]) {
			worst = left
		}
		if right < size && better(h.heap[worst], h.heap[right]) {
			worst = right
		}

		if worst == index {
			return
		}
		h.heap[index], h.heap[worst] = h.heap[worst], h.heap[index]
		index = worst
	}
}

// leaderboard is the thread-safe board shared by the workers of one search
type leaderboard struct {
	mu   sync.Mutex
	heap *boundedHeap
}

// newLeaderboard creates a board that keeps the best capacity entries
func newLeaderboard(capacity int) *leaderboard {
	return &leaderboard{heap: newBoundedHeap(capacity)}
}

// capacity returns the maximum number of entries kept
func (l *leaderboard) capacity() int {
	return l.heap.capacity
}

// merge folds a worker-local heap into the board
func (l *leaderboard) merge(local *boundedHeap) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range local.heap {
		l.heap.push(e)
	}
}

// sorted returns all entries best first
func (l *leaderboard) sorted() []entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.heap.sorted()
}
