package tokenizer

import "bytes"

// EncoderState implements a streaming encoder by buffering input bytes and
// encoding every word that is already terminated by whitespace. The trailing
// partial word is held back since the next chunk may extend it.
type EncoderState struct {
	tok  *Tokenizer
	opts EncodeOptions

	m   *matcher
	buf []byte
}

// NewEncoderState returns a new instance of the encoder state.
func NewEncoderState(t *Tokenizer, opts EncodeOptions) (*EncoderState, error) {
	m, err := t.newMatcher(opts)
	if err != nil {
		return nil, err
	}
	return &EncoderState{tok: t, opts: opts, m: m}, nil
}

// Push consumes the next chunk of raw bytes and emits the codes of every
// completed word.
func (st *EncoderState) Push(chunk []byte) ([]string, error) {
	st.buf = append(st.buf, chunk...)

	cut := bytes.LastIndexFunc(st.buf, isSpace)
	if cut < 0 {
		return nil, nil
	}
	cut++

	out, err := st.m.appendText(nil, st.buf[:cut])
	n := copy(st.buf, st.buf[cut:])
	st.buf = st.buf[:n]
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Flush encodes whatever bytes remain in the internal buffer. The state is
// reset afterwards, memo cache included, and can be reused for a new stream.
func (st *EncoderState) Flush() ([]string, error) {
	out, err := st.m.appendText(nil, st.buf)
	st.buf = st.buf[:0]

	m, merr := st.tok.newMatcher(st.opts)
	if merr != nil {
		return nil, merr
	}
	st.m = m

	if err != nil {
		return nil, err
	}
	return out, nil
}
