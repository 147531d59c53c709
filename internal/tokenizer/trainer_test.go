package tokenizer

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadCorpus(t testing.TB) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "corpus.txt"))
	if err != nil {
		t.Fatalf("failed to read test corpus: %v", err)
	}
	return data
}

func TestTrainMinimalFixture(t *testing.T) {
	vocab, err := Train([]byte("aa ab ab"), TrainOptions{
		TargetSize: 5,
		Alphabet:   []string{"a", "b"},
	})
	require.NoError(t, err)

	// (a,b) and (b,<>) both count 2; "ab" sorts before "b<>"
	require.Equal(t, []string{"a", "b", EndOfWord, "ab", "ab" + EndOfWord}, vocab)
}

func TestTrainRunsOutOfMerges(t *testing.T) {
	vocab, err := Train([]byte("aa ab ab"), TrainOptions{
		TargetSize: 100,
		Alphabet:   []string{"a", "b"},
	})
	require.NoError(t, err)

	// after ab<>, (a,a) and (a,<>) tie at 1 and "a<>" sorts before "aa"
	require.Equal(t, []string{"a", "b", "<>", "ab", "ab<>", "a<>", "aa<>"}, vocab)
}

func TestTrainOverlappingTriple(t *testing.T) {
	vocab, err := Train([]byte("aaa"), TrainOptions{
		TargetSize: 10,
		Alphabet:   []string{"a"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "<>", "aa", "a<>", "aaa<>"}, vocab)
}

func TestMergePair(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"triple", []string{"a", "a", "a", "<>"}, []string{"aa", "a", "<>"}},
		{"quad", []string{"a", "a", "a", "a"}, []string{"aa", "aa"}},
		{"none", []string{"b", "a", "<>"}, []string{"b", "a", "<>"}},
		{"tail", []string{"b", "a", "a"}, []string{"b", "aa"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, mergePair(tc.in, "a", "a", "aa"))
		})
	}
}

func TestTrainSkipsNonMergeable(t *testing.T) {
	vocab, err := Train([]byte("a,b a,b x<y"), TrainOptions{TargetSize: 1000})
	require.NoError(t, err)

	base := len(DefaultAlphabet()) + 1
	require.Equal(t, DefaultAlphabet(), vocab[:base-1])
	require.Equal(t, EndOfWord, vocab[base-1])

	// only (b,<>) and (y,<>) are mergeable; punctuation never fuses
	require.Equal(t, []string{"b<>", "y<>"}, vocab[base:])
}

func TestTrainDigitsAreMergeable(t *testing.T) {
	vocab, err := Train([]byte("1805 1805"), TrainOptions{TargetSize: 96, Alphabet: []string{"0", "1", "5", "8"}})
	require.NoError(t, err)
	// every adjacent pair ties at 2, so the smallest concatenation goes first
	require.Equal(t, []string{"0", "1", "5", "8", "<>", "05", "05<>", "18", "1805<>"}, vocab)
}

func TestTrainDeterministic(t *testing.T) {
	corpus := loadCorpus(t)
	opts := TrainOptions{TargetSize: 300}

	a, err := Train(corpus, opts)
	require.NoError(t, err)
	b, err := Train(corpus, opts)
	require.NoError(t, err)
	require.Equal(t, a, b)

	require.LessOrEqual(t, len(a), 300)
	require.Greater(t, len(a), len(DefaultAlphabet())+1)
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		require.False(t, seen[s], "duplicate entry %q", s)
		seen[s] = true
	}
}

func TestTrainTargetBelowAlphabet(t *testing.T) {
	vocab, err := Train([]byte("hello world"), TrainOptions{TargetSize: 3})
	require.NoError(t, err)
	require.Len(t, vocab, len(DefaultAlphabet())+1)
}

func TestTrainErrors(t *testing.T) {
	_, err := Train([]byte(" \n\t "), TrainOptions{TargetSize: 10})
	require.True(t, errors.Is(err, ErrEmptyCorpus), "got %v", err)

	_, err = Train([]byte("hello"), TrainOptions{TargetSize: 0})
	require.True(t, errors.Is(err, ErrInvalidTargetSize), "got %v", err)
}

func TestTrainLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	_, err := Train([]byte("aa ab ab"), TrainOptions{
		TargetSize:    5,
		Alphabet:      []string{"a", "b"},
		Logger:        log.New(&buf, "", 0),
		ProgressEvery: 1,
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), `merge 1: "a" + "b" -> "ab" freq=2`)
	require.Contains(t, buf.String(), "vocabulary trained: 5 entries")
}

func TestAlphabetDedup(t *testing.T) {
	vocab := initialVocabulary([]string{"a", "a", "", EndOfWord, "b"})
	require.Equal(t, []string{"a", "b", EndOfWord}, vocab)
}

func BenchmarkTrain(b *testing.B) {
	corpus := loadCorpus(b)
	b.SetBytes(int64(len(corpus)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Train(corpus, TrainOptions{TargetSize: 400}); err != nil {
			b.Fatal(err)
		}
	}
}
