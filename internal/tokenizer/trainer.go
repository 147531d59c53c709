package tokenizer

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/radixtok/internal/utils"
)

// EndOfWord is appended to every word before training and encoding, and is
// turned back into a space on decode.
const EndOfWord = "<>"

// TrainOptions configures Train.
type TrainOptions struct {
	// TargetSize bounds the vocabulary size, base alphabet and marker included.
	TargetSize int
	// Alphabet is the ordered base alphabet. The end-of-word marker is
	// appended after it. Nil selects DefaultAlphabet.
	Alphabet []string
	// Logger receives progress lines. Nil discards them.
	Logger *log.Logger
	// ProgressEvery logs one line every n merges; zero logs only the summary.
	ProgressEvery int
}

// DefaultAlphabet returns every printable, non-whitespace single-byte
// character (33..126) in ascending byte order.
func DefaultAlphabet() []string {
	out := make([]string, 0, codeBase)
	for b := codeFirst; b <= codeLast; b++ {
		out = append(out, string(rune(b)))
	}
	return out
}

type wordEntry struct {
	symbols []string
	freq    int
}

type pairKey struct {
	left, right string
}

// Train learns an ordered vocabulary from corpus by repeatedly merging the most
// frequent adjacent pair of mergeable symbols.
//
// Ties on frequency are broken by the lexicographically smallest concatenation,
// then by the smallest left symbol, so the result only depends on the corpus and
// options.
func Train(corpus []byte, opts TrainOptions) ([]string, error) {
	if opts.TargetSize <= 0 {
		return nil, fmt.Errorf("target size %d: %w", opts.TargetSize, ErrInvalidTargetSize)
	}

	words := countWords(corpus)
	if len(words) == 0 {
		return nil, ErrEmptyCorpus
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	vocab := initialVocabulary(opts.Alphabet)
	seen := make(map[string]struct{}, opts.TargetSize)
	for _, s := range vocab {
		seen[s] = struct{}{}
	}

	st := newMergeState(words)
	merges := 0
	for len(vocab) < opts.TargetSize {
		best, ok := st.next()
		if !ok {
			logger.Printf("no mergeable pairs left after %d merges", merges)
			break
		}

		if _, dup := seen[best.Merged]; !dup {
			seen[best.Merged] = struct{}{}
			vocab = append(vocab, best.Merged)
		}
		st.apply(best)
		merges++

		if opts.ProgressEvery > 0 && merges%opts.ProgressEvery == 0 {
			logger.Printf("merge %d: %q + %q -> %q freq=%d vocab=%d/%d",
				merges, best.Left, best.Right, best.Merged, best.Count, len(vocab), opts.TargetSize)
		}
	}

	logger.Printf("vocabulary trained: %d entries from %d distinct words, %d merges", len(vocab), len(words), merges)
	return vocab, nil
}

// countWords splits corpus on ASCII whitespace and returns one entry per
// distinct word, each ending with the end-of-word marker. Entries are sorted by
// word so the pair tables are built in a fixed order.
func countWords(corpus []byte) []wordEntry {
	freq := make(map[string]int)
	for _, w := range splitWords(corpus) {
		freq[string(w)]++
	}

	keys := make([]string, 0, len(freq))
	for w := range freq {
		keys = append(keys, w)
	}
	sort.Strings(keys)

	words := make([]wordEntry, 0, len(keys))
	for _, w := range keys {
		symbols := make([]string, 0, len(w)+1)
		for i := 0; i < len(w); i++ {
			symbols = append(symbols, w[i:i+1])
		}
		symbols = append(symbols, EndOfWord)
		words = append(words, wordEntry{symbols: symbols, freq: freq[w]})
	}
	return words
}

func initialVocabulary(alphabet []string) []string {
	if alphabet == nil {
		alphabet = DefaultAlphabet()
	}

	vocab := make([]string, 0, len(alphabet)+1)
	seen := make(map[string]struct{}, len(alphabet)+1)
	for _, s := range alphabet {
		if s == "" || s == EndOfWord {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		vocab = append(vocab, s)
	}
	return append(vocab, EndOfWord)
}

// isMergeable reports whether s may take part in a merge. Merged symbols start
// with an alphanumeric byte, so checking the first byte covers them too.
func isMergeable(s string) bool {
	if s == EndOfWord {
		return true
	}
	return s != "" && isAlnum(s[0])
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// splitWords splits on ASCII whitespace only, so a cut at a whitespace byte
// never lands inside a multi-byte character.
func splitWords(b []byte) [][]byte {
	return bytes.FieldsFunc(b, isSpace)
}

// mergeState keeps the pair frequency table up to date between merges.
// Only words containing the winning pair are re-counted; the heap holds
// one candidate per count change and stale candidates are skipped on pop.
type mergeState struct {
	words  []wordEntry
	counts map[pairKey]int
	heap   *utils.MergeHeap
}

func newMergeState(words []wordEntry) *mergeState {
	st := &mergeState{
		words:  words,
		counts: make(map[pairKey]int),
		heap:   utils.NewMergeHeap(len(words)),
	}

	touched := make(map[pairKey]struct{})
	for i := range st.words {
		st.count(&st.words[i], 1, touched)
	}
	st.pushTouched(touched)
	return st
}

// count adds sign*freq for every mergeable adjacent pair of w.
func (st *mergeState) count(w *wordEntry, sign int, touched map[pairKey]struct{}) {
	for i := 0; i+1 < len(w.symbols); i++ {
		a, b := w.symbols[i], w.symbols[i+1]
		if !isMergeable(a) || !isMergeable(b) {
			continue
		}
		k := pairKey{a, b}
		st.counts[k] += sign * w.freq
		touched[k] = struct{}{}
	}
}

func (st *mergeState) pushTouched(touched map[pairKey]struct{}) {
	// sorted so heap contents do not depend on map iteration order
	keys := make([]pairKey, 0, len(touched))
	for k := range touched {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].left != keys[j].left {
			return keys[i].left < keys[j].left
		}
		return keys[i].right < keys[j].right
	})

	for _, k := range keys {
		n := st.counts[k]
		if n <= 0 {
			delete(st.counts, k)
			continue
		}
		st.heap.Push(utils.PairCand{Left: k.left, Right: k.right, Merged: k.left + k.right, Count: n})
	}
}

// next returns the most frequent live pair.
func (st *mergeState) next() (utils.PairCand, bool) {
	return st.heap.PopLive(func(c utils.PairCand) bool {
		n, ok := st.counts[pairKey{c.Left, c.Right}]
		return ok && n > 0 && n == c.Count
	})
}

// apply merges every non-overlapping occurrence of best, left to right.
func (st *mergeState) apply(best utils.PairCand) {
	touched := make(map[pairKey]struct{})
	for i := range st.words {
		w := &st.words[i]
		if !containsPair(w.symbols, best.Left, best.Right) {
			continue
		}
		st.count(w, -1, touched)
		w.symbols = mergePair(w.symbols, best.Left, best.Right, best.Merged)
		st.count(w, 1, touched)
	}
	st.pushTouched(touched)
}

func containsPair(symbols []string, left, right string) bool {
	for i := 0; i+1 < len(symbols); i++ {
		if symbols[i] == left && symbols[i+1] == right {
			return true
		}
	}
	return false
}

// mergePair builds a new sequence with each matched pair replaced by merged.
// A matched pair consumes both symbols, so "a a a" merges to "aa a".
func mergePair(symbols []string, left, right, merged string) []string {
	out := make([]string, 0, len(symbols))
	for i := 0; i < len(symbols); i++ {
		if i+1 < len(symbols) && symbols[i] == left && symbols[i+1] == right {
			out = append(out, merged)
			i++
			continue
		}
		out = append(out, symbols[i])
	}
	return out
}
