package main

import (
	"flag"
	"log"
	"strings"

	"github.com/radixtok/internal/tokenizer"
)

func main() {
	flag.Parse()
	vocab := "vocabulary.tokens"
	if flag.NArg() > 0 {
		vocab = flag.Arg(0)
	}

	tok, err := tokenizer.LoadTokenizerFromFile(vocab)
	if err != nil {
		log.Fatalf("failed to load tokenizer: %v", err)
	}

	if err := checkDense(tok); err != nil {
		log.Fatalf("%s: %v", vocab, err)
	}
	log.Printf("vocab loaded successfully: %d entries and codes are dense", tok.Len())

	var merged, marked int
	for _, e := range tok.Entries() {
		if len(e) > 1 && e != tokenizer.EndOfWord {
			merged++
		}
		if strings.HasSuffix(e, tokenizer.EndOfWord) {
			marked++
		}
	}
	log.Printf("%d merged entries, %d end with the end-of-word marker", merged, marked)
}
