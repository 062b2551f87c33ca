package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaz8081/ctcdecode/pkg/ctc"
)

var werCmd = &cobra.Command{
	Use:   "wer REFERENCE HYPOTHESIS",
	Short: "Score a decoded transcript against a reference",
	Long: `Wer computes the word error rate of a decoded transcript against a
reference transcript. Both texts are normalized first: lowercased,
punctuation stripped, whitespace collapsed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result := ctc.ComputeWER(args[0], args[1])

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "WER:           %.4f\n", result.Rate)
		fmt.Fprintf(out, "Substitutions: %d\n", result.Substitutions)
		fmt.Fprintf(out, "Insertions:    %d\n", result.Insertions)
		fmt.Fprintf(out, "Deletions:     %d\n", result.Deletions)
		fmt.Fprintf(out, "Ref words:     %d\n", result.RefWords)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(werCmd)
}
