// Package sanitize rewrites text into the printable ASCII range the
// tokenizer's base alphabet covers. It is policy applied before encoding, not
// part of the tokenizer itself.
package sanitize

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPlaceholder replaces any character that has no ASCII rendering.
const DefaultPlaceholder = '?'

// punctuation folds common typographic characters onto their ASCII form.
var punctuation = map[rune]rune{
	'‘': '\'', // left single quote
	'’': '\'', // right single quote
	'‚': '\'',
	'‛': '\'',
	'′': '\'', // prime
	'“': '"',  // left double quote
	'”': '"',  // right double quote
	'„': '"',
	'‟': '"',
	'«': '"', // guillemets
	'»': '"',
	'‐': '-', // hyphen
	'‒': '-',
	'–': '-', // en dash
	'—': '-', // em dash
	'―': '-',
	'−': '-', // minus sign
}

// Options configures a sanitizer.
type Options struct {
	// Placeholder replaces characters outside printable ASCII. Zero selects
	// DefaultPlaceholder.
	Placeholder rune
}

// NewTransformer returns a transformer that applies NFKC compatibility
// normalization (which also expands ligatures and the ellipsis), folds
// typographic punctuation, and replaces every remaining non-ASCII or control
// character with the placeholder. ASCII whitespace is kept as is.
func NewTransformer(opts Options) (transform.Transformer, error) {
	placeholder := opts.Placeholder
	if placeholder == 0 {
		placeholder = DefaultPlaceholder
	}
	if placeholder < 33 || placeholder > 126 {
		return nil, fmt.Errorf("placeholder %q must be a printable ASCII character", placeholder)
	}

	return transform.Chain(
		norm.NFKC,
		runes.Map(func(r rune) rune {
			if folded, ok := punctuation[r]; ok {
				return folded
			}
			return r
		}),
		runes.Map(func(r rune) rune {
			if isKept(r) {
				return r
			}
			return placeholder
		}),
	), nil
}

func isKept(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return r >= 33 && r <= 126
}

// Bytes sanitizes b in one pass.
func Bytes(b []byte, opts Options) ([]byte, error) {
	t, err := NewTransformer(opts)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(t, b)
	if err != nil {
		return nil, fmt.Errorf("error while sanitizing input: %w", err)
	}
	return out, nil
}

// NewReader wraps r so that everything read from it is sanitized.
func NewReader(r io.Reader, opts Options) (io.Reader, error) {
	t, err := NewTransformer(opts)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, t), nil
}

// IsClean reports whether b already consists only of printable ASCII and
// ASCII whitespace.
func IsClean(b []byte) bool {
	return bytes.IndexFunc(b, func(r rune) bool { return !isKept(r) }) < 0
}
