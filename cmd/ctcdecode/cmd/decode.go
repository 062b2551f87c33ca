package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaz8081/ctcdecode/pkg/ctc"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [ids-file]",
	Short: "Decode token ids from a JSON file or stdin",
	Long: `Decode reads a JSON id sequence and prints the decoded text.

The input may be a single id (7), one sequence ([7, 7, 0, 4]), or a
nested batch ([[7, 7], [4]]). With --char-offsets or --word-offsets
the result is printed as JSON including the offset views; otherwise
one line of text per sequence is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().Bool("char-offsets", false, "include character offsets in the output")
	decodeCmd.Flags().Bool("word-offsets", false, "include word offsets in the output")
	decodeCmd.Flags().Bool("no-group", false, "disable CTC collapsing of repeated tokens")
	decodeCmd.Flags().Bool("skip-special", false, "drop special tokens before decoding")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}

	seqs, batch, err := parseIDSequences(data)
	if err != nil {
		return err
	}

	v, err := loadVocabulary(cmd)
	if err != nil {
		return err
	}

	opts := decodeOptions(cmd)
	dec := ctc.NewDecoder(v, opts)

	if batch {
		result, err := dec.DecodeBatch(seqs)
		if err != nil {
			return err
		}
		if opts.OutputCharOffsets || opts.OutputWordOffsets {
			return printJSON(cmd.OutOrStdout(), result)
		}
		for _, text := range result.Texts {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
		return nil
	}

	result, err := dec.Decode(seqs[0])
	if err != nil {
		return err
	}
	if opts.OutputCharOffsets || opts.OutputWordOffsets {
		return printJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return nil
}

func decodeOptions(cmd *cobra.Command) ctc.Options {
	opts := ctc.Options{
		GroupTokens:                cfg.Decode.GroupTokens,
		SpacesBetweenSpecialTokens: cfg.Decode.SpacesBetweenSpecialTokens,
		OutputCharOffsets:          cfg.Decode.OutputCharOffsets,
		OutputWordOffsets:          cfg.Decode.OutputWordOffsets,
		SkipSpecialTokens:          cfg.Decode.SkipSpecialTokens,
		CleanUpTokenizationSpaces:  cfg.Decode.CleanUpTokenizationSpaces,
		WordDelimiterReplacement:   cfg.Decode.WordDelimiterReplacement,
	}
	if set, _ := cmd.Flags().GetBool("char-offsets"); set {
		opts.OutputCharOffsets = true
	}
	if set, _ := cmd.Flags().GetBool("word-offsets"); set {
		opts.OutputWordOffsets = true
	}
	if set, _ := cmd.Flags().GetBool("no-group"); set {
		opts.GroupTokens = false
	}
	if set, _ := cmd.Flags().GetBool("skip-special"); set {
		opts.SkipSpecialTokens = true
	}
	return opts
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading ids file: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

// parseIDSequences accepts a bare id, a flat id sequence, or a nested
// batch. A bare id is wrapped into a length-1 sequence. The second
// return value reports whether the input was batch-shaped.
func parseIDSequences(data []byte) ([][]int, bool, error) {
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		return [][]int{{single}}, false, nil
	}

	var flat []int
	if err := json.Unmarshal(data, &flat); err == nil {
		return [][]int{flat}, false, nil
	}

	var batch [][]int
	if err := json.Unmarshal(data, &batch); err == nil {
		return batch, true, nil
	}

	return nil, false, fmt.Errorf("input must be a token id, an id sequence, or a batch of id sequences")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
