package tokenizer

import (
	"fmt"
	"math"
)

// Token codes are base-94 numerals over the printable bytes 33..126, most
// significant digit first.
const (
	codeBase  = 94
	codeFirst = 33
	codeLast  = codeFirst + codeBase - 1
)

// EncodeCode returns the token code for a vocabulary rank.
// It panics on a negative rank.
func EncodeCode(rank int) string {
	if rank < 0 {
		panic(fmt.Sprintf("tokenizer: negative rank %d", rank))
	}

	// digits are produced least significant first, so fill from the back
	var buf [16]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte(rank%codeBase + codeFirst)
		rank /= codeBase
		if rank == 0 {
			break
		}
	}
	return string(buf[i:])
}

// DecodeCode is the inverse of EncodeCode.
func DecodeCode(code string) (int, error) {
	if code == "" {
		return 0, fmt.Errorf("empty code: %w", ErrInvalidCode)
	}

	v := 0
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c < codeFirst || c > codeLast {
			return 0, fmt.Errorf("code %q has byte 0x%02x outside the code alphabet: %w", code, c, ErrInvalidCode)
		}
		d := int(c - codeFirst)
		if v > (math.MaxInt-d)/codeBase {
			return 0, fmt.Errorf("code %q overflows: %w", code, ErrInvalidCode)
		}
		v = v*codeBase + d
	}
	return v, nil
}
