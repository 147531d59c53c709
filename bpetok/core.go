// Package bpetok is the public API of the tokenizer: train a vocabulary, load
// one, and encode or decode text as space separated token codes.
package bpetok

import (
	"io"
	"log"

	"github.com/radixtok/internal/tokenizer"
)

// EndOfWord is the marker appended to every word; it decodes to a space.
const EndOfWord = tokenizer.EndOfWord

// Encoder interface
type Encoder interface {
	/*
		Feed consumes the next chunk of raw bytes from the input stream. It emits the codes of every word
		the chunk completed; a word is complete once whitespace follows it.
		The returned slice is owned by the caller.
	*/
	Feed(chunk []byte) ([]string, error)

	/*
		Flush tells the encoder that the stream is complete. It returns the codes of the trailing word
		that was held back because the next chunk could have extended it. After flush, the encoder
		is reset to a clean state and can be reused for a new stream.
	*/
	Flush() ([]string, error)
}

// Decoder interface
type Decoder interface {
	/*
		Feed consumes token codes and returns zero or more decoded bytes. A trailing byte that may start
		an end-of-word marker is buffered until the next Feed or Flush.
	*/
	Feed(codes []string) ([]byte, error)

	// Flush returns any buffered bytes and resets the decoder.
	Flush() []byte
}

// Options configures training.
type Options struct {
	// Alphabet overrides the printable ASCII base alphabet.
	Alphabet []string
	// Logger receives training progress every ProgressEvery merges.
	Logger        *log.Logger
	ProgressEvery int
}

// Train learns an ordered vocabulary of at most targetSize entries.
func Train(corpus []byte, targetSize int, opts Options) ([]string, error) {
	return tokenizer.Train(corpus, tokenizer.TrainOptions{
		TargetSize:    targetSize,
		Alphabet:      opts.Alphabet,
		Logger:        opts.Logger,
		ProgressEvery: opts.ProgressEvery,
	})
}

// WriteVocabulary serializes vocab as "<entry> <code>" lines in rank order.
func WriteVocabulary(w io.Writer, vocab []string) error {
	return tokenizer.WriteVocabulary(w, vocab)
}

// Tokenizer model
type Tokenizer struct {
	tok *tokenizer.Tokenizer
}

// Load reads a vocabulary file written by WriteVocabulary.
func Load(r io.Reader) (*Tokenizer, error) {
	tok, err := tokenizer.ParseVocabulary(r)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{tok: tok}, nil
}

// LoadFile reads a vocabulary file from disk.
func LoadFile(path string) (*Tokenizer, error) {
	tok, err := tokenizer.LoadTokenizerFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{tok: tok}, nil
}

// New builds a tokenizer straight from a trained vocabulary.
func New(vocab []string) (*Tokenizer, error) {
	tok, err := tokenizer.FromVocabulary(vocab)
	if err != nil {
		return nil, err
	}
	return &Tokenizer{tok: tok}, nil
}

// Len returns the vocabulary size.
func (t *Tokenizer) Len() int { return t.tok.Len() }

// Encode converts text to token codes.
func (t *Tokenizer) Encode(text []byte) ([]string, error) { return t.tok.Encode(text) }

// Decode converts a whitespace separated code stream back to text.
func (t *Tokenizer) Decode(tokens []byte) ([]byte, error) { return t.tok.Decode(tokens) }

// NewEncoder returns a streaming encoder.
func (t *Tokenizer) NewEncoder() (Encoder, error) {
	st, err := tokenizer.NewEncoderState(t.tok, tokenizer.EncodeOptions{})
	if err != nil {
		return nil, err
	}
	return encoder{st}, nil
}

// NewDecoder returns a streaming decoder.
func (t *Tokenizer) NewDecoder() Decoder {
	return decoder{tokenizer.NewDecoderState(t.tok)}
}

type encoder struct{ st *tokenizer.EncoderState }

func (e encoder) Feed(chunk []byte) ([]string, error) { return e.st.Push(chunk) }
func (e encoder) Flush() ([]string, error)            { return e.st.Flush() }

type decoder struct{ st *tokenizer.DecoderState }

func (d decoder) Feed(codes []string) ([]byte, error) { return d.st.Push(codes) }
func (d decoder) Flush() []byte                       { return d.st.Flush() }

// Errors callers can test for with errors.Is.
var (
	ErrEmptyInput              = tokenizer.ErrEmptyInput
	ErrEmptyCorpus             = tokenizer.ErrEmptyCorpus
	ErrMalformedVocabularyLine = tokenizer.ErrMalformedVocabularyLine
	ErrUnknownCode             = tokenizer.ErrUnknownCode
	ErrUnknownSymbol           = tokenizer.ErrUnknownSymbol
)
