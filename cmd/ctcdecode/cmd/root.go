package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaz8081/ctcdecode/internal/config"
	"github.com/chaz8081/ctcdecode/pkg/vocab"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ctcdecode",
	Short: "Decode CTC token id sequences into text and frame offsets",
	Long: `ctcdecode converts raw per-frame token id sequences, as emitted by a
CTC acoustic model, into text plus character- and word-level frame
offsets. Repeated symbols are collapsed, the blank token is removed,
and word delimiter tokens become spaces.

The vocabulary is a JSON file mapping string token ids to symbols,
e.g. {"0": "<pad>", "4": "A"}.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		setupLogging(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command, printing any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ctcdecode: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default: ~/.config/ctcdecode/config.yaml)")
	rootCmd.PersistentFlags().String("vocab", "", "path to vocabulary JSON file (overrides config)")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	// Try default config path
	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		slog.Debug("config loaded", "path", defaultPath)
		return cfg, nil
	}

	// No config file, use defaults
	return config.Default(), nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// vocabPath resolves the vocabulary location, preferring the --vocab
// flag over the config file.
func vocabPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("vocab"); path != "" {
		return path
	}
	return cfg.VocabPath
}

func loadVocabulary(cmd *cobra.Command) (*vocab.Vocabulary, error) {
	return vocab.Load(vocabPath(cmd), vocab.Config{
		BOSToken:           cfg.Tokens.BOS,
		EOSToken:           cfg.Tokens.EOS,
		UnknownToken:       cfg.Tokens.Unknown,
		PadToken:           cfg.Tokens.Pad,
		WordDelimiterToken: cfg.Tokens.WordDelimiter,
		LowerCase:          cfg.Tokens.LowerCase,
	})
}
