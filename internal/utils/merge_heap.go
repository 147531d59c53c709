package utils

import "container/heap"

// PairCand is a merge candidate for the vocabulary trainer.
// Count is the pair's aggregate frequency at the time it was pushed; an entry
// whose Count no longer matches the live count is stale and must be skipped
// by the caller.
type PairCand struct {
	Left   string
	Right  string
	Merged string // Left + Right
	Count  int    // higher wins
}

// pairHeap orders candidates by count, then by the merged string, then by the
// left symbol so that ties resolve the same way on every run.
type pairHeap []PairCand

func (h pairHeap) Len() int { return len(h) }
func (h pairHeap) Less(i, j int) bool {
	if h[i].Count != h[j].Count {
		return h[i].Count > h[j].Count
	}
	if h[i].Merged != h[j].Merged {
		return h[i].Merged < h[j].Merged // lexicographic tie-break
	}
	return h[i].Left < h[j].Left
}
func (h pairHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pairHeap) Push(x any)   { *h = append(*h, x.(PairCand)) }
func (h *pairHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// MergeHeap is a max-heap of pair candidates with lazy invalidation.
type MergeHeap struct {
	items pairHeap
}

// NewMergeHeap returns an empty heap with room for capHint candidates.
func NewMergeHeap(capHint int) *MergeHeap {
	return &MergeHeap{items: make(pairHeap, 0, capHint)}
}

func (h *MergeHeap) Len() int {
	return h.items.Len()
}

func (h *MergeHeap) Push(c PairCand) {
	heap.Push(&h.items, c)
}

// Pop removes and returns the best candidate.
func (h *MergeHeap) Pop() (PairCand, bool) {
	if h.items.Len() == 0 {
		return PairCand{}, false
	}
	return heap.Pop(&h.items).(PairCand), true
}

// PopLive pops candidates until one satisfies live, which is expected to
// compare the candidate's Count against the current aggregate count.
func (h *MergeHeap) PopLive(live func(PairCand) bool) (PairCand, bool) {
	for h.items.Len() > 0 {
		c := heap.Pop(&h.items).(PairCand)
		if live(c) {
			return c, true
		}
	}
	return PairCand{}, false
}

func (h *MergeHeap) Reset() {
	h.items = h.items[:0]
}
