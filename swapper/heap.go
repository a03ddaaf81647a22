// SPDX-License-Identifier: MIT

package swapper

import "github.com/katalvlaran/fosgen/sop"

// item is one resident.
type item struct {
	comb   sop.Combination
	key    string
	scores Scores
	seq    uint64 // insertion order
	index  int    // position in residentHeap
}

// worse reports whether a ranks below b: lower scores, or equal scores and
// inserted later.
func worse(a, b *item) bool {
	if c := a.scores.Compare(b.scores); c != 0 {
		return c < 0
	}

	return a.seq > b.seq
}

// residentHeap keeps the worst resident at index 0.
type residentHeap []*item

func (h residentHeap) Len() int           { return len(h) }
func (h residentHeap) Less(i, j int) bool { return worse(h[i], h[j]) }

func (h residentHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *residentHeap) Push(x interface{}) {
	it := x.(*item)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *residentHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]

	return it
}
