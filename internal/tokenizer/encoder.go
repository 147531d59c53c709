package tokenizer

import (
	"bufio"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the longest-prefix memo of a single encode pass.
const DefaultCacheSize = 1 << 16

// EncodeOptions configures an encode pass.
type EncodeOptions struct {
	// CacheSize is the number of working strings whose longest-prefix match is
	// remembered. Zero selects DefaultCacheSize.
	CacheSize int
}

// matcher performs greedy longest-prefix segmentation against the tokenizer's
// trie. Its cache lives only as long as the matcher.
type matcher struct {
	tok   *Tokenizer
	cache *lru.Cache[string, string]
}

func (t *Tokenizer) newMatcher(opts EncodeOptions) (*matcher, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("error while creating prefix cache: %w", err)
	}
	return &matcher{tok: t, cache: cache}, nil
}

// longestPrefix memoizes trie lookups; common word endings recur as the same
// working string across many words.
func (m *matcher) longestPrefix(s string) string {
	if v, ok := m.cache.Get(s); ok {
		return v
	}
	v := m.tok.trie.LongestPrefix(s)
	m.cache.Add(s, v)
	return v
}

// appendWord segments word plus the end-of-word marker and appends the codes to dst.
func (m *matcher) appendWord(dst []string, word []byte) ([]string, error) {
	working := string(word) + EndOfWord
	for working != "" {
		piece := m.longestPrefix(working)
		if piece == "" {
			piece = working[:1]
		}

		code, ok := m.tok.entryToCode[piece]
		if !ok {
			return dst, fmt.Errorf("word %q byte %q: %w", word, piece, ErrUnknownSymbol)
		}
		dst = append(dst, code)
		working = working[len(piece):]
	}
	return dst, nil
}

func (m *matcher) appendText(dst []string, text []byte) ([]string, error) {
	var err error
	for _, w := range splitWords(text) {
		if dst, err = m.appendWord(dst, w); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// Encode segments every whitespace-delimited word of text into the longest
// matching vocabulary entries and returns their codes.
func (t *Tokenizer) Encode(text []byte) ([]string, error) {
	return t.EncodeWithOptions(text, EncodeOptions{})
}

// EncodeWithOptions is Encode with an explicit cache size.
func (t *Tokenizer) EncodeWithOptions(text []byte, opts EncodeOptions) ([]string, error) {
	m, err := t.newMatcher(opts)
	if err != nil {
		return nil, err
	}
	return m.appendText(nil, text)
}

// WriteTokens writes codes separated by single spaces, followed by a newline.
func WriteTokens(w io.Writer, codes []string) error {
	bw := bufio.NewWriter(w)
	for i, c := range codes {
		if i > 0 {
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(c); err != nil {
			return err
		}
	}
	if len(codes) > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
