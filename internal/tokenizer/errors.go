package tokenizer

import "errors"

var (
	// ErrEmptyInput is returned when an input file exists but holds no bytes.
	ErrEmptyInput = errors.New("input is empty")
	// ErrEmptyCorpus is returned when a corpus contains no words to train on.
	ErrEmptyCorpus = errors.New("corpus contains no words")
	// ErrInvalidTargetSize is returned for a non-positive vocabulary target size.
	ErrInvalidTargetSize = errors.New("invalid target vocabulary size")

	ErrMalformedVocabularyLine = errors.New("malformed vocabulary line")
	ErrDuplicateEntry          = errors.New("duplicate vocabulary entry")
	ErrInvalidCode             = errors.New("invalid token code")

	// ErrUnknownCode is returned by the decoder for a code missing from the vocabulary.
	ErrUnknownCode = errors.New("unknown token code")
	// ErrUnknownSymbol is returned by the encoder when a byte has no
	// single-character vocabulary entry to fall back to.
	ErrUnknownSymbol = errors.New("no vocabulary entry for symbol")
)
