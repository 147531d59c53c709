// Command bpetok trains a BPE vocabulary and encodes or decodes text with it.
//
// Usage:
//
//	bpetok vocab [-config file] [-size n] [-o vocabulary.tokens] corpus
//	bpetok encode [-config file] [-raw] input vocab output
//	bpetok decode input vocab output
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/radixtok/internal/config"
	"github.com/radixtok/internal/sanitize"
	"github.com/radixtok/internal/tokenizer"
)

var errUsage = errors.New("usage")

func main() {
	logger := log.New(os.Stderr, "bpetok: ", log.LstdFlags)

	err := run(os.Args[1:], logger)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		usage(os.Stderr)
		os.Exit(2)
	default:
		logger.Fatalf("%v", err)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: bpetok <command> [options] args...

Commands:
  vocab  [-config file] [-size n] [-o file] [-q] <corpus>
         train a vocabulary and write "<entry> <code>" lines
  encode [-config file] [-raw] <input> <vocab> <output>
         encode text into space separated token codes
  decode <input> <vocab> <output>
         decode token codes back into text
`)
}

func run(args []string, logger *log.Logger) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "vocab":
		return runVocab(args[1:], logger)
	case "encode":
		return runEncode(args[1:], logger)
	case "decode":
		return runDecode(args[1:], logger)
	case "-h", "-help", "--help", "help":
		usage(os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string, nargs int) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %v: %w", fs.Name(), err, errUsage)
	}
	if fs.NArg() != nargs {
		return fmt.Errorf("%s: expected %d arguments, got %d: %w", fs.Name(), nargs, fs.NArg(), errUsage)
	}
	return nil
}

func runVocab(args []string, logger *log.Logger) error {
	fs := newFlagSet("vocab")
	cfgPath := fs.String("config", "", "YAML config file")
	size := fs.Int("size", 0, "target vocabulary size (overrides config)")
	output := fs.String("o", "", "output vocabulary file (overrides config)")
	quiet := fs.Bool("q", false, "do not log training progress")
	if err := parse(fs, args, 1); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		return err
	}
	if *size > 0 {
		cfg.Vocab.TargetSize = *size
	}
	if *output != "" {
		cfg.Vocab.Output = *output
	}

	corpus, err := tokenizer.ReadInput(fs.Arg(0))
	if err != nil {
		return err
	}
	logger.Printf("read %d bytes from %s", len(corpus), fs.Arg(0))

	opts := tokenizer.TrainOptions{
		TargetSize:    cfg.Vocab.TargetSize,
		Alphabet:      cfg.AlphabetSymbols(),
		Logger:        logger,
		ProgressEvery: cfg.Vocab.ProgressEvery,
	}
	if *quiet {
		opts.Logger = nil
	}

	vocab, err := tokenizer.Train(corpus, opts)
	if err != nil {
		return fmt.Errorf("training on %s: %w", fs.Arg(0), err)
	}

	if err := writeFileAtomic(cfg.Vocab.Output, func(w io.Writer) error {
		return tokenizer.WriteVocabulary(w, vocab)
	}); err != nil {
		return err
	}
	logger.Printf("wrote %d entries to %s", len(vocab), cfg.Vocab.Output)
	return nil
}

func runEncode(args []string, logger *log.Logger) error {
	fs := newFlagSet("encode")
	cfgPath := fs.String("config", "", "YAML config file")
	raw := fs.Bool("raw", false, "skip input sanitizing")
	if err := parse(fs, args, 3); err != nil {
		return err
	}
	inPath, vocabPath, outPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	cfg, err := config.LoadOrDefault(*cfgPath)
	if err != nil {
		return err
	}

	input, err := tokenizer.ReadInput(inPath)
	if err != nil {
		return err
	}
	if cfg.Encode.Sanitize && !*raw {
		input, err = sanitize.Bytes(input, sanitize.Options{Placeholder: rune(cfg.Encode.Placeholder[0])})
		if err != nil {
			return err
		}
	}

	tok, err := tokenizer.LoadTokenizerFromFile(vocabPath)
	if err != nil {
		return err
	}

	codes, err := tok.EncodeWithOptions(input, tokenizer.EncodeOptions{CacheSize: cfg.Encode.CacheSize})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", inPath, err)
	}

	if err := writeFileAtomic(outPath, func(w io.Writer) error {
		return tokenizer.WriteTokens(w, codes)
	}); err != nil {
		return err
	}
	logger.Printf("encoded %d bytes into %d tokens", len(input), len(codes))
	return nil
}

func runDecode(args []string, logger *log.Logger) error {
	fs := newFlagSet("decode")
	if err := parse(fs, args, 3); err != nil {
		return err
	}
	inPath, vocabPath, outPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	input, err := tokenizer.ReadInput(inPath)
	if err != nil {
		return err
	}
	tok, err := tokenizer.LoadTokenizerFromFile(vocabPath)
	if err != nil {
		return err
	}

	text, err := tok.Decode(input)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}

	if err := writeFileAtomic(outPath, func(w io.Writer) error {
		_, err := w.Write(text)
		return err
	}); err != nil {
		return err
	}
	logger.Printf("decoded %d bytes of tokens into %d bytes", len(input), len(text))
	return nil
}

// writeFileAtomic writes through a temp file in the destination directory and
// renames it into place, so a failed run never leaves a partial output.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()

	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
