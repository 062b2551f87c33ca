package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect or extend the vocabulary",
}

var vocabShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the vocabulary, one id and symbol per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadVocabulary(cmd)
		if err != nil {
			return err
		}

		entries := v.Entries()
		ids := make([]int, 0, len(entries))
		for id := range entries {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, entries[id])
		}
		return nil
	},
}

var vocabAddCmd = &cobra.Command{
	Use:   "add TOKEN...",
	Short: "Append tokens to the vocabulary file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadVocabulary(cmd)
		if err != nil {
			return err
		}

		added := v.AddTokens(args...)
		if added == 0 {
			slog.Info("no new tokens to add")
			return nil
		}

		if err := v.Save(vocabPath(cmd)); err != nil {
			return err
		}
		slog.Info("vocabulary extended", "added", added, "size", v.Len())
		return nil
	},
}

func init() {
	vocabCmd.AddCommand(vocabShowCmd)
	vocabCmd.AddCommand(vocabAddCmd)
	rootCmd.AddCommand(vocabCmd)
}
