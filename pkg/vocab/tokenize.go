package vocab

import "strings"

// SplitNoSplit segments text so that every no-split token appears as
// its own segment, matched longest-first; stretches between matches
// are returned verbatim.
func (v *Vocabulary) SplitNoSplit(text string) []string {
	var segs []string
	start, i := 0, 0
	for i < len(text) {
		n := v.noSplit.longestMatch(text[i:])
		if n == 0 {
			i++
			continue
		}
		if i > start {
			segs = append(segs, text[start:i])
		}
		segs = append(segs, text[i:i+n])
		i += n
		start = i
	}
	if start < len(text) {
		segs = append(segs, text[start:])
	}
	return segs
}

// TokenizeText converts text into vocabulary symbols: spaces become
// the word delimiter token, no-split tokens stay whole, and everything
// else splits into single characters. Case-insensitive vocabularies
// fold input to upper case first.
func (v *Vocabulary) TokenizeText(text string) []string {
	if v.cfg.LowerCase {
		text = strings.ToUpper(text)
	}
	text = strings.ReplaceAll(text, " ", v.cfg.WordDelimiterToken)

	var out []string
	for _, seg := range v.SplitNoSplit(text) {
		if v.noSplit.contains(seg) {
			out = append(out, seg)
			continue
		}
		for _, r := range seg {
			out = append(out, string(r))
		}
	}
	return out
}

// Encode tokenizes text and resolves each symbol to its id, falling
// back to the unknown-token id for unmapped symbols. Symbols that
// cannot be resolved at all (no unknown token mapped) are dropped.
func (v *Vocabulary) Encode(text string) []int {
	unkID, haveUnk := v.ids[v.cfg.UnknownToken]

	symbols := v.TokenizeText(text)
	ids := make([]int, 0, len(symbols))
	for _, sym := range symbols {
		if id, ok := v.ids[sym]; ok {
			ids = append(ids, id)
			continue
		}
		if haveUnk {
			ids = append(ids, unkID)
		}
	}
	return ids
}
