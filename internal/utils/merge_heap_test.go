package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func cand(l, r string, n int) PairCand {
	return PairCand{Left: l, Right: r, Merged: l + r, Count: n}
}

func TestMergeHeapOrder(t *testing.T) {
	h := NewMergeHeap(8)
	h.Push(cand("b", "<>", 2))
	h.Push(cand("a", "a", 1))
	h.Push(cand("a", "b", 2))
	h.Push(cand("c", "d", 5))
	h.Push(cand("ab", "c", 2))
	h.Push(cand("a", "bc", 2))

	var got []string
	for h.Len() > 0 {
		c, ok := h.Pop()
		require.True(t, ok)
		got = append(got, c.Left+"|"+c.Right)
	}
	require.Equal(t, []string{"c|d", "a|b", "a|bc", "ab|c", "b|<>", "a|a"}, got)

	_, ok := h.Pop()
	require.False(t, ok)
}

func TestMergeHeapPopLiveSkipsStale(t *testing.T) {
	live := map[string]int{"ab": 1, "cd": 3}

	h := NewMergeHeap(4)
	h.Push(cand("a", "b", 4)) // stale, count dropped to 1
	h.Push(cand("c", "d", 3))
	h.Push(cand("a", "b", 1))

	isLive := func(c PairCand) bool { return live[c.Merged] == c.Count }

	c, ok := h.PopLive(isLive)
	require.True(t, ok)
	require.Equal(t, "cd", c.Merged)

	c, ok = h.PopLive(isLive)
	require.True(t, ok)
	require.Equal(t, "ab", c.Merged)
	require.Equal(t, 1, c.Count)

	_, ok = h.PopLive(isLive)
	require.False(t, ok)

	h.Push(cand("x", "y", 1))
	h.Reset()
	require.Equal(t, 0, h.Len())
}
