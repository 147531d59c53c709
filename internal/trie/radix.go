// Package trie implements a compressed prefix tree (radix trie) used for
// longest-prefix subword matching.
package trie

import (
	"sort"
	"strings"
)

// node owns a compressed path label and its children, keyed by the first byte
// of each child's label. The root is the only node with an empty label.
type node struct {
	label    string
	children map[byte]*node
	isEnd    bool
}

func newNode(label string) *node {
	return &node{
		label:    label,
		children: make(map[byte]*node),
	}
}

// Trie is a radix trie over vocabulary entries.
// It is not safe for concurrent mutation; concurrent readers are fine once
// the trie is fully built.
type Trie struct {
	root *node
	size int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: newNode("")}
}

// Len returns the number of entries stored in the trie.
func (t *Trie) Len() int {
	return t.size
}

// Insert adds entry to the trie. Inserting the empty string is a no-op since
// the root never marks an entry.
func (t *Trie) Insert(entry string) {
	if entry == "" {
		return
	}

	n := t.root
	rest := entry
	for {
		child, ok := n.children[rest[0]]
		if !ok {
			leaf := newNode(rest)
			leaf.isEnd = true
			n.children[rest[0]] = leaf
			t.size++
			return
		}

		l := commonPrefixLength(child.label, rest)
		if l < len(child.label) {
			// split: mid keeps the shared prefix, child keeps the divergent remainder
			mid := newNode(child.label[:l])
			child.label = child.label[l:]
			mid.children[child.label[0]] = child
			n.children[rest[0]] = mid
			child = mid
		}

		rest = rest[l:]
		if rest == "" {
			if !child.isEnd {
				child.isEnd = true
				t.size++
			}
			return
		}
		n = child
	}
}

// Search reports whether entry was inserted and has not been removed.
func (t *Trie) Search(entry string) bool {
	if entry == "" {
		return false
	}

	n := t.root
	rest := entry
	for rest != "" {
		child, ok := n.children[rest[0]]
		if !ok || !strings.HasPrefix(rest, child.label) {
			return false
		}
		rest = rest[len(child.label):]
		n = child
	}
	return n.isEnd
}

// LongestPrefix returns the longest prefix of text that is an entry of the
// trie, or "" when no entry matches.
//
// An end node can sit in the middle of the path to a longer entry, so the
// best match is recorded at every end node passed, not only at the deepest
// node reached.
func (t *Trie) LongestPrefix(text string) string {
	n := t.root
	consumed, best := 0, 0
	for consumed < len(text) {
		child, ok := n.children[text[consumed]]
		if !ok || !strings.HasPrefix(text[consumed:], child.label) {
			break
		}
		consumed += len(child.label)
		n = child
		if n.isEnd {
			best = consumed
		}
	}
	return text[:best]
}

// Remove deletes entry from the trie and reports whether it was present.
// Nodes left with no children and no end mark are pruned, and a non-end node
// left with a single child is merged into that child. The root is never
// pruned.
func (t *Trie) Remove(entry string) bool {
	if entry == "" {
		return false
	}
	if !t.root.remove(entry) {
		return false
	}
	t.size--
	return true
}

// remove unmarks key below n and repairs the child it descended into.
func (n *node) remove(key string) bool {
	first := key[0]
	child, ok := n.children[first]
	if !ok || !strings.HasPrefix(key, child.label) {
		return false
	}

	rest := key[len(child.label):]
	if rest == "" {
		if !child.isEnd {
			return false
		}
		child.isEnd = false
	} else if !child.remove(rest) {
		return false
	}

	if child.isEnd {
		return true
	}
	switch len(child.children) {
	case 0:
		delete(n.children, first)
	case 1:
		for _, grandchild := range child.children {
			grandchild.label = child.label + grandchild.label
			n.children[first] = grandchild
		}
	}
	return true
}

// Walk calls fn for every entry in ascending byte order. Walking stops early
// if fn returns false.
func (t *Trie) Walk(fn func(entry string) bool) {
	t.root.walk("", fn)
}

func (n *node) walk(prefix string, fn func(string) bool) bool {
	path := prefix + n.label
	if n.isEnd && !fn(path) {
		return false
	}

	keys := make([]byte, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, k := range keys {
		if !n.children[k].walk(path, fn) {
			return false
		}
	}
	return true
}

func commonPrefixLength(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}
