package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/radixtok/internal/trie"
)

// Tokenizer holds the immutable lookup tables derived from a vocabulary file
// and is safe for concurrent use once built.
// Invariants we maintain:
//   - entries[i] is paired with codes[i]; i is the line rank in the vocabulary file.
//   - entryToCode and codeToEntry are exact inverses of each other.
//   - every entry is present in trie and nothing else is.
type Tokenizer struct {
	entries []string
	codes   []string

	// encoding side, entry -> code
	entryToCode map[string]string
	// decoding side, code -> entry
	codeToEntry map[string]string

	trie *trie.Trie
}

// NewTokenizer builds a tokenizer from parallel entry and code slices.
func NewTokenizer(entries, codes []string) (*Tokenizer, error) {
	if len(entries) != len(codes) {
		return nil, fmt.Errorf("entries and codes length mismatch. entries %d, codes %d", len(entries), len(codes))
	}

	t := &Tokenizer{
		entries:     make([]string, 0, len(entries)),
		codes:       make([]string, 0, len(codes)),
		entryToCode: make(map[string]string, len(entries)),
		codeToEntry: make(map[string]string, len(codes)),
		trie:        trie.New(),
	}
	for i := range entries {
		if err := t.add(entries[i], codes[i]); err != nil {
			return nil, fmt.Errorf("rank %d: %w", i, err)
		}
	}
	return t, nil
}

// FromVocabulary assigns each entry the code of its rank in vocab.
func FromVocabulary(vocab []string) (*Tokenizer, error) {
	codes := make([]string, len(vocab))
	for i := range vocab {
		codes[i] = EncodeCode(i)
	}
	return NewTokenizer(vocab, codes)
}

func (t *Tokenizer) add(entry, code string) error {
	if entry == "" || strings.IndexFunc(entry, isSpace) >= 0 {
		return fmt.Errorf("entry %q must be non-empty and whitespace-free: %w", entry, ErrMalformedVocabularyLine)
	}
	if _, err := DecodeCode(code); err != nil {
		return err
	}
	if prev, ok := t.entryToCode[entry]; ok {
		return fmt.Errorf("entry %q already has code %q: %w", entry, prev, ErrDuplicateEntry)
	}
	if prev, ok := t.codeToEntry[code]; ok {
		return fmt.Errorf("code %q already used by entry %q: %w", code, prev, ErrDuplicateEntry)
	}

	t.entries = append(t.entries, entry)
	t.codes = append(t.codes, code)
	t.entryToCode[entry] = code
	t.codeToEntry[code] = entry
	t.trie.Insert(entry)
	return nil
}

// Len returns the number of vocabulary entries.
func (t *Tokenizer) Len() int {
	return len(t.entries)
}

// Entries returns the vocabulary in rank order. The slice must not be modified.
func (t *Tokenizer) Entries() []string {
	return t.entries
}

// Codes returns the codes in rank order. The slice must not be modified.
func (t *Tokenizer) Codes() []string {
	return t.codes
}

// Code returns the code assigned to entry.
func (t *Tokenizer) Code(entry string) (string, bool) {
	c, ok := t.entryToCode[entry]
	return c, ok
}

// Entry returns the vocabulary entry for code.
func (t *Tokenizer) Entry(code string) (string, bool) {
	e, ok := t.codeToEntry[code]
	return e, ok
}

// ParseVocabulary reads "<entry> <code>" lines. Blank lines are ignored; any
// other line without exactly two fields is rejected.
func ParseVocabulary(r io.Reader) (*Tokenizer, error) {
	t, err := NewTokenizer(nil, nil)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.FieldsFunc(line, isSpace)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d %q: expected <entry> <code>: %w", lineNo, line, ErrMalformedVocabularyLine)
		}
		if err := t.add(fields[0], fields[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error while reading vocabulary: %w", err)
	}

	return t, nil
}

// LoadTokenizerFromFile builds a tokenizer from a vocabulary file on disk.
func LoadTokenizerFromFile(vocabPath string) (*Tokenizer, error) {
	f, err := os.Open(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("error while opening vocab file : %w", err)
	}
	defer f.Close()

	t, err := ParseVocabulary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vocabPath, err)
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("vocab file %s: %w", vocabPath, ErrEmptyInput)
	}
	return t, nil
}

// WriteVocabulary writes one "<entry> <code>" line per entry, the code being
// the entry's rank in vocab.
func WriteVocabulary(w io.Writer, vocab []string) error {
	bw := bufio.NewWriter(w)
	for i, entry := range vocab {
		if entry == "" || strings.IndexFunc(entry, isSpace) >= 0 {
			return fmt.Errorf("rank %d entry %q: %w", i, entry, ErrMalformedVocabularyLine)
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", entry, EncodeCode(i)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadInput returns the full contents of path. An empty file is an error.
func ReadInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error while reading input file : %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyInput)
	}
	return data, nil
}
