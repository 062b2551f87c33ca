// Package vocab maintains the id↔symbol vocabulary consumed by the
// CTC decoder. The on-disk format is a flat JSON object mapping
// stringified token ids to symbols, e.g. {"0": "<pad>", "4": "A"}.
// Tokens can be appended incrementally; multi-character tokens join a
// no-split set backed by a prefix trie so text tokenization never
// splits through them.
package vocab

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Config names the reserved tokens of a vocabulary.
type Config struct {
	BOSToken           string
	EOSToken           string
	UnknownToken       string
	PadToken           string
	WordDelimiterToken string
	// LowerCase marks the vocabulary as case-insensitive: input text
	// is folded to upper case before lookup and decoded text is
	// lowercased by the decoder.
	LowerCase bool
}

// DefaultConfig returns the conventional CTC token names.
func DefaultConfig() Config {
	return Config{
		BOSToken:           "<s>",
		EOSToken:           "</s>",
		UnknownToken:       "<unk>",
		PadToken:           "<pad>",
		WordDelimiterToken: "|",
	}
}

// Vocabulary is a bidirectional token table. It is safe for
// concurrent reads; AddTokens must not be interleaved with decodes.
type Vocabulary struct {
	cfg     Config
	symbols map[int]string
	ids     map[string]int

	noSplit *trie
	// tokens appended via AddTokens that span multiple characters
	// count as special so SkipSpecialTokens can drop them.
	addedSpecial map[string]bool
}

// New builds a vocabulary from an id→symbol table. Every
// multi-character symbol is registered as a no-split token.
func New(entries map[int]string, cfg Config) *Vocabulary {
	v := &Vocabulary{
		cfg:          cfg,
		symbols:      make(map[int]string, len(entries)),
		ids:          make(map[string]int, len(entries)),
		noSplit:      newTrie(),
		addedSpecial: make(map[string]bool),
	}
	for id, sym := range entries {
		v.symbols[id] = sym
		v.ids[sym] = id
		if utf8.RuneCountInString(sym) > 1 {
			v.noSplit.insert(sym)
		}
	}
	return v
}

// Load reads a JSON vocabulary file where keys are string token ids.
func Load(path string, cfg Config) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: reading vocabulary: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("vocab: parsing vocabulary JSON: %w", err)
	}

	entries := make(map[int]string, len(raw))
	for k, sym := range raw {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("vocab: invalid token ID %q: %w", k, err)
		}
		entries[id] = sym
	}

	return New(entries, cfg), nil
}

// Save writes the vocabulary back out in the same id→symbol JSON
// format Load reads.
func (v *Vocabulary) Save(path string) error {
	raw := make(map[string]string, len(v.symbols))
	for id, sym := range v.symbols {
		raw[strconv.Itoa(id)] = sym
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("vocab: encoding vocabulary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("vocab: writing vocabulary: %w", err)
	}
	return nil
}

// Entries returns a copy of the id→symbol table.
func (v *Vocabulary) Entries() map[int]string {
	entries := make(map[int]string, len(v.symbols))
	for id, sym := range v.symbols {
		entries[id] = sym
	}
	return entries
}

// Len returns the number of tokens in the vocabulary.
func (v *Vocabulary) Len() int { return len(v.symbols) }

// Symbol returns the symbol for id, or the unknown-token symbol when
// the id is unmapped.
func (v *Vocabulary) Symbol(id int) string {
	if sym, ok := v.symbols[id]; ok {
		return sym
	}
	return v.cfg.UnknownToken
}

// ID returns the id for sym and whether the symbol is mapped.
func (v *Vocabulary) ID(sym string) (int, bool) {
	id, ok := v.ids[sym]
	return id, ok
}

// AddTokens appends tokens that are not yet in the vocabulary,
// assigning ids upward from the current size. Duplicates, the unknown
// token, and repeats within the call are skipped. Multi-character
// additions join the no-split set. Returns the number of tokens
// actually added.
func (v *Vocabulary) AddTokens(tokens ...string) int {
	added := 0
	for _, tok := range tokens {
		if v.cfg.LowerCase {
			tok = strings.ToLower(tok)
		}
		if tok == v.cfg.UnknownToken {
			continue
		}
		if _, ok := v.ids[tok]; ok {
			continue
		}
		id := v.nextID()
		v.symbols[id] = tok
		v.ids[tok] = id
		if utf8.RuneCountInString(tok) > 1 {
			v.noSplit.insert(tok)
			v.addedSpecial[tok] = true
		}
		slog.Debug("adding token to vocabulary", "token", tok, "id", id)
		added++
	}
	return added
}

func (v *Vocabulary) nextID() int {
	id := len(v.symbols)
	for {
		if _, taken := v.symbols[id]; !taken {
			return id
		}
		id++
	}
}

// IsSpecial reports whether sym is a reserved token or a
// multi-character token appended via AddTokens.
func (v *Vocabulary) IsSpecial(sym string) bool {
	switch sym {
	case v.cfg.BOSToken, v.cfg.EOSToken, v.cfg.UnknownToken, v.cfg.PadToken:
		return true
	}
	return v.addedSpecial[sym]
}

// PadToken returns the padding symbol, which doubles as the CTC blank.
func (v *Vocabulary) PadToken() string { return v.cfg.PadToken }

// WordDelimiterToken returns the word boundary symbol.
func (v *Vocabulary) WordDelimiterToken() string { return v.cfg.WordDelimiterToken }

// UnknownToken returns the unknown-token symbol.
func (v *Vocabulary) UnknownToken() string { return v.cfg.UnknownToken }

// LowerCase reports whether the vocabulary is case-insensitive.
func (v *Vocabulary) LowerCase() bool { return v.cfg.LowerCase }
