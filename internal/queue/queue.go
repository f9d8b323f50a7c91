// Package queue provides a bounded candidate heap for top-k collection.
package queue

import "github.com/hupe1980/flanngo/index"

// ResultHeap is a value-based binary max-heap of search results ordered by
// distance. The top element is the current worst candidate, which makes the
// heap suitable for bounded top-k collection: once full, a new candidate
// replaces the worst retained one if it is closer.
//
// Ties on distance are broken by ID so that eviction order is deterministic:
// the larger ID is considered worse.
type ResultHeap struct {
	items []index.SearchResult
}

// New creates a ResultHeap with the given initial capacity.
func New(capacity int) *ResultHeap {
	if capacity < 0 {
		capacity = 0
	}

	return &ResultHeap{
		items: make([]index.SearchResult, 0, capacity),
	}
}

// Len returns the number of items in the heap.
func (h *ResultHeap) Len() int { return len(h.items) }

// Top returns the worst retained candidate without removing it.
func (h *ResultHeap) Top() (index.SearchResult, bool) {
	if len(h.items) == 0 {
		return index.SearchResult{}, false
	}

	return h.items[0], true
}

// Push inserts an item while maintaining the heap invariant.
func (h *ResultHeap) Push(item index.SearchResult) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the worst retained candidate.
func (h *ResultHeap) Pop() (index.SearchResult, bool) {
	n := len(h.items)
	if n == 0 {
		return index.SearchResult{}, false
	}

	root := h.items[0]
	last := h.items[n-1]
	h.items[n-1] = index.SearchResult{}
	h.items = h.items[:n-1]

	if n-1 > 0 {
		h.items[0] = last
		h.siftDown(0)
	}

	return root, true
}

// PushBounded inserts an item while keeping at most k elements, evicting the
// worst candidate when full. It reports whether the item was retained.
func (h *ResultHeap) PushBounded(item index.SearchResult, k int) bool {
	if k <= 0 {
		return false
	}

	if len(h.items) < k {
		h.Push(item)
		return true
	}

	if !worse(item, h.items[0]) {
		h.items[0] = item
		h.siftDown(0)

		return true
	}

	return false
}

// Sorted drains the heap and returns its contents ascending by distance
// (ties ascending by ID). The heap is empty afterwards.
func (h *ResultHeap) Sorted() []index.SearchResult {
	out := make([]index.SearchResult, len(h.items))
	for i := len(h.items) - 1; i >= 0; i-- {
		out[i], _ = h.Pop()
	}

	return out
}

// worse reports whether a is a worse candidate than b.
func worse(a, b index.SearchResult) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}

	return a.ID > b.ID
}

func (h *ResultHeap) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !worse(h.items[i], h.items[p]) {
			return
		}

		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *ResultHeap) siftDown(i int) {
	n := len(h.items)

	for {
		l := 2*i + 1
		if l >= n {
			return
		}

		worst := l
		if r := l + 1; r < n && worse(h.items[r], h.items[l]) {
			worst = r
		}

		if !worse(h.items[worst], h.items[i]) {
			return
		}

		h.items[i], h.items[worst] = h.items[worst], h.items[i]
		i = worst
	}
}
