// Package ctc turns per-frame CTC token sequences into text plus
// character- and word-level frame offsets. It collapses repeated
// symbols, suppresses the blank token, and keeps every offset anchored
// to the original frame index space so callers can convert offsets to
// timestamps with a fixed time-per-frame ratio.
package ctc

import "fmt"

// Run is a maximal span of consecutive identical symbols in the raw
// token sequence.
type Run struct {
	Symbol string
	Count  int
}

// CharOffset locates one decoded symbol as a half-open [Start, End)
// frame interval.
type CharOffset struct {
	Char  string `json:"char"`
	Start int    `json:"start_offset"`
	End   int    `json:"end_offset"`
}

// WordOffset locates one decoded word as a half-open [Start, End)
// frame interval covering its first through last character.
type WordOffset struct {
	Word  string `json:"word"`
	Start int    `json:"start_offset"`
	End   int    `json:"end_offset"`
}

// InconsistentOffsetError reports a length mismatch between the
// filtered character offsets and the processed symbol list. It signals
// a contract violation in the decode pipeline and is never repaired
// silently.
type InconsistentOffsetError struct {
	Offsets int
	Symbols int
}

func (e *InconsistentOffsetError) Error() string {
	return fmt.Sprintf("ctc: %d character offsets do not match %d processed symbols", e.Offsets, e.Symbols)
}

// Collapse run-length encodes a symbol sequence. With groupTokens set,
// consecutive equal symbols merge into a single run; otherwise every
// symbol becomes its own run of count 1, which disables CTC
// de-duplication for inputs that were already deduplicated upstream.
func Collapse(symbols []string, groupTokens bool) []Run {
	runs := make([]Run, 0, len(symbols))
	for _, sym := range symbols {
		if groupTokens && len(runs) > 0 && runs[len(runs)-1].Symbol == sym {
			runs[len(runs)-1].Count++
			continue
		}
		runs = append(runs, Run{Symbol: sym, Count: 1})
	}
	return runs
}

// computeOffsets converts runs into character offsets via cumulative
// repetition counts, then drops blank-token entries. Offsets are
// computed before filtering, so retained entries keep their original
// frame indices and the sequence may have gaps where blanks were.
func computeOffsets(runs []Run, blank string) []CharOffset {
	offsets := make([]CharOffset, 0, len(runs))
	end := 0
	for _, r := range runs {
		start := end
		end += r.Count
		if r.Symbol == blank {
			continue
		}
		offsets = append(offsets, CharOffset{Char: r.Symbol, Start: start, End: end})
	}
	return offsets
}

type scanState int

const (
	inSpace scanState = iota
	inWord
)

// aggregateWords merges consecutive non-delimiter character offsets
// into word spans. The scan holds one of two states, starting in
// inSpace; a word opens on the first non-delimiter character and
// closes when a delimiter follows it or the input ends.
func aggregateWords(offsets []CharOffset, delimiter string) []WordOffset {
	words := []WordOffset{}
	state := inSpace
	var pending WordOffset
	for _, off := range offsets {
		next := inWord
		if off.Char == delimiter {
			next = inSpace
		}
		switch {
		case next == inWord && state == inWord:
			pending.End = off.End
			pending.Word += off.Char
		case next == inWord:
			pending = WordOffset{Word: off.Char, Start: off.Start, End: off.End}
		case state == inWord:
			words = append(words, pending)
		}
		state = next
	}
	if state == inWord {
		words = append(words, pending)
	}
	return words
}
