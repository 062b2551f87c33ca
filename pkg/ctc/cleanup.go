package ctc

import "strings"

// Artifact spaces left by joining symbols: punctuation and English
// contractions should attach to the preceding word. Substitutions are
// applied one after another over the whole string, so an earlier pass
// can consume a space a later pattern would otherwise match.
var spaceCleanups = [...][2]string{
	{" .", "."},
	{" ?", "?"},
	{" !", "!"},
	{" ,", ","},
	{" ' ", "'"},
	{" n't", "n't"},
	{" 'm", "'m"},
	{" 's", "'s"},
	{" 've", "'ve"},
	{" 're", "'re"},
}

// CleanUpTokenizationSpaces removes spaces before punctuation and
// inside common English contractions.
func CleanUpTokenizationSpaces(text string) string {
	for _, c := range spaceCleanups {
		text = strings.ReplaceAll(text, c[0], c[1])
	}
	return text
}
