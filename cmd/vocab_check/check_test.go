package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radixtok/internal/tokenizer"
)

func TestCheckDense(t *testing.T) {
	tok, err := tokenizer.FromVocabulary([]string{"a", "b", tokenizer.EndOfWord, "ab"})
	require.NoError(t, err)
	require.NoError(t, checkDense(tok))

	swapped, err := tokenizer.ParseVocabulary(strings.NewReader("a \"\nb !\n"))
	require.NoError(t, err)
	err = checkDense(swapped)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 1")
}
