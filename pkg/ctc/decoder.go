package ctc

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Vocabulary resolves token ids to symbols. It is consumed, not
// implemented, by this package; vocab.Vocabulary satisfies it.
type Vocabulary interface {
	// Symbol returns the symbol for id, falling back to the
	// unknown-token symbol when the id is unmapped.
	Symbol(id int) string
	// PadToken is the padding symbol, reused as the CTC blank.
	PadToken() string
	// WordDelimiterToken marks word boundaries in the vocabulary.
	WordDelimiterToken() string
	// IsSpecial reports whether sym is a special token.
	IsSpecial(sym string) bool
	// LowerCase reports whether decoded text should be lowercased.
	LowerCase() bool
}

// Options control a single decode invocation.
type Options struct {
	// GroupTokens merges consecutive identical symbols before blank
	// removal (CTC-style decoding). Disable when the id sequence was
	// already deduplicated.
	GroupTokens bool
	// SpacesBetweenSpecialTokens joins processed symbols with a space
	// instead of the empty string.
	SpacesBetweenSpecialTokens bool
	// OutputCharOffsets populates Result.CharOffsets.
	OutputCharOffsets bool
	// OutputWordOffsets populates Result.WordOffsets.
	OutputWordOffsets bool
	// SkipSpecialTokens drops special symbols before decoding. The
	// blank token is exempt so CTC suppression still sees it.
	SkipSpecialTokens bool
	// CleanUpTokenizationSpaces removes artifact spaces around
	// punctuation and contractions in the final text.
	CleanUpTokenizationSpaces bool
	// WordDelimiterReplacement is the literal substituted for the word
	// delimiter token in text and offsets.
	WordDelimiterReplacement string
}

// DefaultOptions returns the standard CTC decode settings: grouping
// on, cleanup on, delimiter replaced with a single space, offsets off.
func DefaultOptions() Options {
	return Options{
		GroupTokens:               true,
		CleanUpTokenizationSpaces: true,
		WordDelimiterReplacement:  " ",
	}
}

// Result is the outcome of one decode call. CharOffsets and
// WordOffsets are nil unless requested via Options.
type Result struct {
	Text        string       `json:"text"`
	CharOffsets []CharOffset `json:"char_offsets,omitempty"`
	WordOffsets []WordOffset `json:"word_offsets,omitempty"`
}

// BatchResult holds per-sequence decode results transposed into
// per-field slices. Element i of every field belongs to input
// sequence i.
type BatchResult struct {
	Texts       []string       `json:"text"`
	CharOffsets [][]CharOffset `json:"char_offsets,omitempty"`
	WordOffsets [][]WordOffset `json:"word_offsets,omitempty"`
}

// Decoder converts token id sequences to text. It is stateless beyond
// its configuration; every decode is independent and idempotent, so a
// single Decoder may be shared across goroutines.
type Decoder struct {
	vocab Vocabulary
	opts  Options
}

// NewDecoder returns a Decoder reading symbols from v.
func NewDecoder(v Vocabulary, opts Options) *Decoder {
	return &Decoder{vocab: v, opts: opts}
}

// Decode converts a token id sequence into text and, when requested,
// character and word offsets over the original frame index space.
// An empty id sequence yields an empty result, not an error.
func (d *Decoder) Decode(ids []int) (Result, error) {
	symbols := make([]string, 0, len(ids))
	for _, id := range ids {
		sym := d.vocab.Symbol(id)
		if d.opts.SkipSpecialTokens && sym != d.vocab.PadToken() && d.vocab.IsSpecial(sym) {
			continue
		}
		symbols = append(symbols, sym)
	}
	return d.decodeSymbols(symbols)
}

func (d *Decoder) decodeSymbols(symbols []string) (Result, error) {
	if len(symbols) == 0 {
		return Result{Text: "", CharOffsets: []CharOffset{}, WordOffsets: []WordOffset{}}, nil
	}

	blank := d.vocab.PadToken()
	delimiter := d.vocab.WordDelimiterToken()

	runs := Collapse(symbols, d.opts.GroupTokens)

	processed := make([]string, 0, len(runs))
	for _, r := range runs {
		if r.Symbol == blank {
			continue
		}
		if r.Symbol == delimiter {
			processed = append(processed, d.opts.WordDelimiterReplacement)
			continue
		}
		processed = append(processed, r.Symbol)
	}

	var charOffsets []CharOffset
	var wordOffsets []WordOffset
	if d.opts.OutputCharOffsets || d.opts.OutputWordOffsets {
		charOffsets = computeOffsets(runs, blank)
		if len(charOffsets) != len(processed) {
			return Result{}, &InconsistentOffsetError{Offsets: len(charOffsets), Symbols: len(processed)}
		}
		// Align the offset view with the processed symbols so the
		// delimiter substitution shows up in both.
		for i := range charOffsets {
			charOffsets[i].Char = processed[i]
		}
		if d.opts.OutputWordOffsets {
			wordOffsets = aggregateWords(charOffsets, d.opts.WordDelimiterReplacement)
		}
		if !d.opts.OutputCharOffsets {
			charOffsets = nil
		}
	}

	join := ""
	if d.opts.SpacesBetweenSpecialTokens {
		join = " "
	}
	text := strings.TrimSpace(strings.Join(processed, join))
	if d.vocab.LowerCase() {
		text = strings.ToLower(text)
	}
	if d.opts.CleanUpTokenizationSpaces {
		text = CleanUpTokenizationSpaces(text)
	}

	return Result{Text: text, CharOffsets: charOffsets, WordOffsets: wordOffsets}, nil
}

// DecodeBatch decodes each sequence independently and transposes the
// per-sequence results into a BatchResult. Sequences are decoded
// concurrently; result order always matches input order.
func (d *Decoder) DecodeBatch(seqs [][]int) (BatchResult, error) {
	results := make([]Result, len(seqs))

	var g errgroup.Group
	for i, seq := range seqs {
		i, seq := i, seq
		g.Go(func() error {
			res, err := d.Decode(seq)
			if err != nil {
				return fmt.Errorf("ctc: sequence %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	batch := BatchResult{Texts: make([]string, len(results))}
	if d.opts.OutputCharOffsets {
		batch.CharOffsets = make([][]CharOffset, len(results))
	}
	if d.opts.OutputWordOffsets {
		batch.WordOffsets = make([][]WordOffset, len(results))
	}
	for i, res := range results {
		batch.Texts[i] = res.Text
		if d.opts.OutputCharOffsets {
			batch.CharOffsets[i] = res.CharOffsets
		}
		if d.opts.OutputWordOffsets {
			batch.WordOffsets[i] = res.WordOffsets
		}
	}
	return batch, nil
}
