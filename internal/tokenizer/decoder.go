package tokenizer

import (
	"bytes"
	"fmt"
)

var (
	endOfWordBytes = []byte(EndOfWord)
	spaceBytes     = []byte(" ")
)

// Decode maps a whitespace-separated stream of codes back to text. Every
// end-of-word marker in the result becomes a single space.
func (t *Tokenizer) Decode(tokens []byte) ([]byte, error) {
	fields := bytes.FieldsFunc(tokens, isSpace)
	codes := make([]string, len(fields))
	for i, f := range fields {
		codes[i] = string(f)
	}
	return t.DecodeCodes(codes)
}

// DecodeCodes is Decode for an already split code sequence.
func (t *Tokenizer) DecodeCodes(codes []string) ([]byte, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	raw, err := t.appendEntries(nil, codes, 0)
	if err != nil {
		return nil, err
	}
	return bytes.ReplaceAll(raw, endOfWordBytes, spaceBytes), nil
}

// appendEntries appends the entry of every code to dst. base offsets the
// token positions reported in errors.
func (t *Tokenizer) appendEntries(dst []byte, codes []string, base int) ([]byte, error) {
	for i, c := range codes {
		e, ok := t.codeToEntry[c]
		if !ok {
			return nil, fmt.Errorf("token %d %q: %w", base+i, c, ErrUnknownCode)
		}
		dst = append(dst, e...)
	}
	return dst, nil
}

// DecoderState decodes codes incrementally. A trailing '<' is held back
// between feeds since it may start an end-of-word marker completed by the
// next entry.
type DecoderState struct {
	tok     *Tokenizer
	pending []byte
	fed     int
}

// NewDecoderState returns a new instance of the decoder state.
func NewDecoderState(t *Tokenizer) *DecoderState {
	return &DecoderState{tok: t}
}

// Push decodes the next codes and returns the text that is final.
func (st *DecoderState) Push(codes []string) ([]byte, error) {
	raw, err := st.tok.appendEntries(st.pending, codes, st.fed)
	if err != nil {
		return nil, err
	}
	st.fed += len(codes)

	hold := 0
	if n := len(raw); n > 0 && raw[n-1] == EndOfWord[0] {
		hold = 1
	}

	out := bytes.ReplaceAll(raw[:len(raw)-hold], endOfWordBytes, spaceBytes)
	st.pending = append(st.pending[:0:0], raw[len(raw)-hold:]...)
	return out, nil
}

// Flush returns any held back bytes and resets the state.
func (st *DecoderState) Flush() []byte {
	out := st.pending
	st.pending = nil
	st.fed = 0
	return out
}
