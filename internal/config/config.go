package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all ctcdecode configuration.
type Config struct {
	VocabPath string       `yaml:"vocab_path"`
	Tokens    TokensConfig `yaml:"tokens"`
	Decode    DecodeConfig `yaml:"decode"`
	LogLevel  string       `yaml:"log_level"`
}

// TokensConfig names the reserved vocabulary tokens.
type TokensConfig struct {
	BOS           string `yaml:"bos"`
	EOS           string `yaml:"eos"`
	Unknown       string `yaml:"unknown"`
	Pad           string `yaml:"pad"` // doubles as the CTC blank
	WordDelimiter string `yaml:"word_delimiter"`
	LowerCase     bool   `yaml:"lower_case"`
}

// DecodeConfig holds default decode options.
type DecodeConfig struct {
	GroupTokens                bool   `yaml:"group_tokens"`
	SpacesBetweenSpecialTokens bool   `yaml:"spaces_between_special_tokens"`
	OutputCharOffsets          bool   `yaml:"output_char_offsets"`
	OutputWordOffsets          bool   `yaml:"output_word_offsets"`
	SkipSpecialTokens          bool   `yaml:"skip_special_tokens"`
	CleanUpTokenizationSpaces  bool   `yaml:"clean_up_tokenization_spaces"`
	WordDelimiterReplacement   string `yaml:"word_delimiter_replacement"`
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ctcdecode")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		VocabPath: filepath.Join(DefaultConfigDir(), "vocab.json"),
		Tokens: TokensConfig{
			BOS:           "<s>",
			EOS:           "</s>",
			Unknown:       "<unk>",
			Pad:           "<pad>",
			WordDelimiter: "|",
		},
		Decode: DecodeConfig{
			GroupTokens:               true,
			CleanUpTokenizationSpaces: true,
			WordDelimiterReplacement:  " ",
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in vocab_path is expanded to the user's
// home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.VocabPath = expandTilde(cfg.VocabPath)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.VocabPath == "" {
		return fmt.Errorf("vocab_path must not be empty")
	}

	if c.Tokens.Pad == "" {
		return fmt.Errorf("tokens.pad must not be empty")
	}

	if c.Tokens.Unknown == "" {
		return fmt.Errorf("tokens.unknown must not be empty")
	}

	if c.Tokens.WordDelimiter == "" {
		return fmt.Errorf("tokens.word_delimiter must not be empty")
	}

	if c.Decode.WordDelimiterReplacement == "" {
		return fmt.Errorf("decode.word_delimiter_replacement must not be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
