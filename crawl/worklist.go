package crawl

import (
	"fmt"
	"slices"
	"strings"
)

// Order selects the traversal policy of a WorkList.
type Order int

const (
	// DepthFirst pops the most recently discovered URL first (LIFO).
	// Links from one page are pushed in reverse so the first link on the
	// page is crawled first, the same order a recursive crawler produces.
	DepthFirst Order = iota

	// BreadthFirst pops the oldest discovered URL first (FIFO).
	BreadthFirst
)

// String returns the flag spelling of the order.
func (o Order) String() string {
	switch o {
	case BreadthFirst:
		return "bfs"
	default:
		return "dfs"
	}
}

// ParseOrder parses "dfs" or "bfs", ignoring case.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "dfs", "depth-first", "":
		return DepthFirst, nil
	case "bfs", "breadth-first":
		return BreadthFirst, nil
	default:
		return DepthFirst, fmt.Errorf("unknown traversal order %q", s)
	}
}

// WorkList holds discovered URLs awaiting dispatch.
// It may hold the same URL more than once; deduplication happens against
// the VisitedSet at dispatch time. It is not safe for concurrent use.
type WorkList struct {
	order Order
	items []string
	head  int
}

// NewWorkList creates an empty WorkList with the given order.
func NewWorkList(order Order) *WorkList {
	return &WorkList{order: order}
}

// Push adds the URLs discovered on one page.
func (w *WorkList) Push(urls ...string) {
	if w.order == DepthFirst {
		for _, u := range slices.Backward(urls) {
			w.items = append(w.items, u)
		}
		return
	}
	w.items = append(w.items, urls...)
}

// Pop removes and returns the next URL according to the order.
// The bool result is false if the list is empty.
func (w *WorkList) Pop() (string, bool) {
	if w.Len() == 0 {
		return "", false
	}

	if w.order == DepthFirst {
		last := len(w.items) - 1
		u := w.items[last]
		w.items = w.items[:last]
		return u, true
	}

	u := w.items[w.head]
	w.items[w.head] = ""
	w.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if w.head > 64 && w.head*2 > len(w.items) {
		w.items = append([]string(nil), w.items[w.head:]...)
		w.head = 0
	}
	return u, true
}

// Len returns the number of pending URLs.
func (w *WorkList) Len() int {
	return len(w.items) - w.head
}
