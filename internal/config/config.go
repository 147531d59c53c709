// Package config loads tokenizer settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the command line tools.
type Config struct {
	Vocab  VocabConfig  `yaml:"vocab"`
	Encode EncodeConfig `yaml:"encode"`
}

// VocabConfig controls vocabulary training.
type VocabConfig struct {
	TargetSize int `yaml:"target_size"`
	// Alphabet lists the base characters in rank order. Empty selects every
	// printable ASCII character.
	Alphabet      string `yaml:"alphabet,omitempty"`
	ProgressEvery int    `yaml:"progress_every"`
	Output        string `yaml:"output"`
}

// EncodeConfig controls encoding.
type EncodeConfig struct {
	CacheSize   int    `yaml:"cache_size"`
	Sanitize    bool   `yaml:"sanitize"`
	Placeholder string `yaml:"placeholder"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Vocab: VocabConfig{
			TargetSize:    32000,
			ProgressEvery: 100,
			Output:        "vocabulary.tokens",
		},
		Encode: EncodeConfig{
			CacheSize:   1 << 16,
			Sanitize:    true,
			Placeholder: "?",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Vocab.TargetSize <= 0 {
		return fmt.Errorf("vocab.target_size must be positive, got %d", c.Vocab.TargetSize)
	}
	if c.Vocab.ProgressEvery < 0 {
		return fmt.Errorf("vocab.progress_every must not be negative, got %d", c.Vocab.ProgressEvery)
	}
	if c.Vocab.Output == "" {
		return fmt.Errorf("vocab.output cannot be empty")
	}
	for i := 0; i < len(c.Vocab.Alphabet); i++ {
		if b := c.Vocab.Alphabet[i]; b < 33 || b > 126 {
			return fmt.Errorf("vocab.alphabet byte 0x%02x at %d is not printable ASCII", b, i)
		}
	}
	if c.Encode.CacheSize <= 0 {
		return fmt.Errorf("encode.cache_size must be positive, got %d", c.Encode.CacheSize)
	}
	if len(c.Encode.Placeholder) != 1 || c.Encode.Placeholder[0] < 33 || c.Encode.Placeholder[0] > 126 {
		return fmt.Errorf("encode.placeholder must be one printable ASCII character, got %q", c.Encode.Placeholder)
	}
	return nil
}

// AlphabetSymbols splits the configured alphabet into single-character
// symbols, or returns nil when none is configured.
func (c *Config) AlphabetSymbols() []string {
	if c.Vocab.Alphabet == "" {
		return nil
	}
	return strings.Split(c.Vocab.Alphabet, "")
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

// LoadOrDefault loads filename, or returns the defaults when filename is empty.
func LoadOrDefault(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	return Load(filename)
}
