package main

import (
	"fmt"

	"github.com/radixtok/internal/tokenizer"
)

// checkDense verifies that the code on line i decodes to rank i, i.e. the file
// was written by a single training run and never reordered.
func checkDense(tok *tokenizer.Tokenizer) error {
	for i, code := range tok.Codes() {
		rank, err := tokenizer.DecodeCode(code)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if rank != i {
			return fmt.Errorf("vocab not dense: line %d has code %q for rank %d", i+1, code, rank)
		}
	}
	return nil
}
