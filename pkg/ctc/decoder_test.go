package ctc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// stubVocab is a minimal Vocabulary for decoder tests.
type stubVocab struct {
	symbols map[int]string
	special map[string]bool
	lower   bool
}

func (s *stubVocab) Symbol(id int) string {
	if sym, ok := s.symbols[id]; ok {
		return sym
	}
	return "<unk>"
}

func (s *stubVocab) PadToken() string           { return "<pad>" }
func (s *stubVocab) WordDelimiterToken() string { return "|" }
func (s *stubVocab) IsSpecial(sym string) bool  { return s.special[sym] }
func (s *stubVocab) LowerCase() bool            { return s.lower }

// letterVocab maps ids to <pad>, |, H, E, L, O, W, </s> in order.
func letterVocab() *stubVocab {
	return &stubVocab{
		symbols: map[int]string{
			0: "<pad>", 1: "|", 2: "H", 3: "E", 4: "L", 5: "O", 6: "W", 7: "</s>",
		},
		special: map[string]bool{"<pad>": true, "</s>": true, "<unk>": true},
	}
}

// H H E L L O | | W
var helloIDs = []int{2, 2, 3, 4, 4, 5, 1, 1, 6}

func TestDecodeText(t *testing.T) {
	dec := NewDecoder(letterVocab(), DefaultOptions())

	res, err := dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// The repeated L collapses into one run; emitting a double letter
	// needs a blank between the repeats.
	if res.Text != "HELO W" {
		t.Errorf("Text = %q, want %q", res.Text, "HELO W")
	}
	if res.CharOffsets != nil {
		t.Errorf("CharOffsets = %v, want nil when not requested", res.CharOffsets)
	}
	if res.WordOffsets != nil {
		t.Errorf("WordOffsets = %v, want nil when not requested", res.WordOffsets)
	}
}

func TestDecodeOffsets(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputCharOffsets = true
	opts.OutputWordOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	res, err := dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	wantChars := []CharOffset{
		{Char: "H", Start: 0, End: 2},
		{Char: "E", Start: 2, End: 3},
		{Char: "L", Start: 3, End: 5},
		{Char: "O", Start: 5, End: 6},
		{Char: " ", Start: 6, End: 8},
		{Char: "W", Start: 8, End: 9},
	}
	if diff := cmp.Diff(wantChars, res.CharOffsets); diff != "" {
		t.Errorf("CharOffsets mismatch (-want +got):\n%s", diff)
	}

	// The delimiter run covers frames 6-8, so the word offsets keep
	// that gap.
	wantWords := []WordOffset{
		{Word: "HELO", Start: 0, End: 6},
		{Word: "W", Start: 8, End: 9},
	}
	if diff := cmp.Diff(wantWords, res.WordOffsets); diff != "" {
		t.Errorf("WordOffsets mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBlankSuppression(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputCharOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	// <pad> <pad> H H <pad> E
	res, err := dec.Decode([]int{0, 0, 2, 2, 0, 3})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "HE" {
		t.Errorf("Text = %q, want %q", res.Text, "HE")
	}
	wantChars := []CharOffset{
		{Char: "H", Start: 2, End: 4},
		{Char: "E", Start: 5, End: 6},
	}
	if diff := cmp.Diff(wantChars, res.CharOffsets); diff != "" {
		t.Errorf("CharOffsets mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDoubleLetterAcrossBlank(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputWordOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	// H H E L <pad> L O | | W: the blank keeps the two L runs apart.
	res, err := dec.Decode([]int{2, 2, 3, 4, 0, 4, 5, 1, 1, 6})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "HELLO W" {
		t.Errorf("Text = %q, want %q", res.Text, "HELLO W")
	}
	wantWords := []WordOffset{
		{Word: "HELLO", Start: 0, End: 7},
		{Word: "W", Start: 9, End: 10},
	}
	if diff := cmp.Diff(wantWords, res.WordOffsets); diff != "" {
		t.Errorf("WordOffsets mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmpty(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputCharOffsets = true
	opts.OutputWordOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	res, err := dec.Decode(nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "" {
		t.Errorf("Text = %q, want empty", res.Text)
	}
	if len(res.CharOffsets) != 0 || len(res.WordOffsets) != 0 {
		t.Errorf("offsets = %v / %v, want empty", res.CharOffsets, res.WordOffsets)
	}
}

func TestDecodeAllBlank(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputCharOffsets = true
	opts.OutputWordOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	res, err := dec.Decode([]int{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "" {
		t.Errorf("Text = %q, want empty", res.Text)
	}
	if len(res.CharOffsets) != 0 || len(res.WordOffsets) != 0 {
		t.Errorf("offsets = %v / %v, want empty", res.CharOffsets, res.WordOffsets)
	}
}

func TestDecodeGroupingDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.GroupTokens = false
	dec := NewDecoder(letterVocab(), opts)

	res, err := dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "HHELLO  W" {
		t.Errorf("Text = %q, want %q", res.Text, "HHELLO  W")
	}
}

func TestDecodeSpacesBetweenTokens(t *testing.T) {
	opts := DefaultOptions()
	opts.SpacesBetweenSpecialTokens = true
	dec := NewDecoder(letterVocab(), opts)

	res, err := dec.Decode([]int{2, 3}) // H E
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "H E" {
		t.Errorf("Text = %q, want %q", res.Text, "H E")
	}
}

func TestDecodeLowerCase(t *testing.T) {
	v := letterVocab()
	v.lower = true
	dec := NewDecoder(v, DefaultOptions())

	res, err := dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "helo w" {
		t.Errorf("Text = %q, want %q", res.Text, "helo w")
	}
}

func TestDecodeSkipSpecialTokens(t *testing.T) {
	opts := DefaultOptions()
	opts.SkipSpecialTokens = true
	opts.OutputCharOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	// </s> is dropped before collapsing; the blank stays so
	// suppression still anchors offsets to the remaining frames.
	res, err := dec.Decode([]int{7, 0, 2, 3, 7})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "HE" {
		t.Errorf("Text = %q, want %q", res.Text, "HE")
	}
	wantChars := []CharOffset{
		{Char: "H", Start: 1, End: 2},
		{Char: "E", Start: 2, End: 3},
	}
	if diff := cmp.Diff(wantChars, res.CharOffsets); diff != "" {
		t.Errorf("CharOffsets mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownID(t *testing.T) {
	dec := NewDecoder(letterVocab(), DefaultOptions())

	res, err := dec.Decode([]int{2, 99})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if res.Text != "H<unk>" {
		t.Errorf("Text = %q, want %q", res.Text, "H<unk>")
	}
}

func TestDecodeIdempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputCharOffsets = true
	opts.OutputWordOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	first, err := dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	second, err := dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated decode differs (-first +second):\n%s", diff)
	}
}

func TestDecodeWordReconstruction(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputWordOffsets = true
	opts.CleanUpTokenizationSpaces = false
	dec := NewDecoder(letterVocab(), opts)

	res, err := dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	words := make([]string, len(res.WordOffsets))
	for i, w := range res.WordOffsets {
		words[i] = w.Word
	}
	joined := strings.Join(words, " ")
	normalized := strings.Join(strings.Fields(res.Text), " ")
	if joined != normalized {
		t.Errorf("joined words %q do not reconstruct text %q", joined, normalized)
	}
}

func TestDecodeTranscriptWER(t *testing.T) {
	dec := NewDecoder(letterVocab(), DefaultOptions())

	res, err := dec.Decode([]int{2, 2, 3, 4, 0, 4, 5, 1, 1, 6})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	score := ComputeWER("hello w", res.Text)
	if score.Rate != 0 {
		t.Errorf("Rate = %v for %q, want 0", score.Rate, res.Text)
	}

	// Without the blank between the Ls the decode collapses them,
	// which scores as one substitution against the reference.
	res, err = dec.Decode(helloIDs)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	score = ComputeWER("hello w", res.Text)
	if score.Substitutions != 1 || score.Rate != 0.5 {
		t.Errorf("got %+v for %q, want 1 substitution at rate 0.5", score, res.Text)
	}
}

func TestDecodeBatch(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputWordOffsets = true
	dec := NewDecoder(letterVocab(), opts)

	batch, err := dec.DecodeBatch([][]int{
		helloIDs,
		{},
		{2, 3}, // H E
	})
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}

	wantTexts := []string{"HELO W", "", "HE"}
	if diff := cmp.Diff(wantTexts, batch.Texts); diff != "" {
		t.Errorf("Texts mismatch (-want +got):\n%s", diff)
	}
	if batch.CharOffsets != nil {
		t.Errorf("CharOffsets = %v, want nil when not requested", batch.CharOffsets)
	}
	if len(batch.WordOffsets) != 3 {
		t.Fatalf("len(WordOffsets) = %d, want 3", len(batch.WordOffsets))
	}
	if len(batch.WordOffsets[0]) != 2 || len(batch.WordOffsets[1]) != 0 || len(batch.WordOffsets[2]) != 1 {
		t.Errorf("WordOffsets shape = %v", batch.WordOffsets)
	}
}

func TestDecodeBatchPlain(t *testing.T) {
	dec := NewDecoder(letterVocab(), DefaultOptions())

	batch, err := dec.DecodeBatch([][]int{{2}, {3}})
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	wantTexts := []string{"H", "E"}
	if diff := cmp.Diff(wantTexts, batch.Texts); diff != "" {
		t.Errorf("Texts mismatch (-want +got):\n%s", diff)
	}
	if batch.CharOffsets != nil || batch.WordOffsets != nil {
		t.Error("offset fields should be nil when no offsets were requested")
	}
}
