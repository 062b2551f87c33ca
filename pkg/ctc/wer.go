package ctc

import (
	"strings"
	"unicode"
)

// WERResult holds word error rate details for a decoded transcript
// measured against a reference transcript.
type WERResult struct {
	Rate          float64 // (S+I+D) / reference word count
	Substitutions int
	Insertions    int
	Deletions     int
	RefWords      int
}

// ComputeWER measures the word error rate of hypothesis against
// reference. Both transcripts are normalized first: lowercased,
// punctuation stripped, whitespace collapsed. An empty reference
// yields a zero result.
func ComputeWER(reference, hypothesis string) WERResult {
	ref := normalizeWords(reference)
	hyp := normalizeWords(hypothesis)

	n, m := len(ref), len(hyp)
	if n == 0 {
		return WERResult{}
	}

	// Minimum edit distance over normalized words.
	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i
	}
	for j := 0; j <= m; j++ {
		d[0][j] = j
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ref[i-1] == hyp[j-1] {
				d[i][j] = d[i-1][j-1]
				continue
			}
			d[i][j] = min(d[i-1][j-1], min(d[i-1][j], d[i][j-1])) + 1
		}
	}

	// Backtrace to attribute each edit.
	var subs, ins, dels int
	for i, j := n, m; i > 0 || j > 0; {
		switch {
		case i > 0 && j > 0 && ref[i-1] == hyp[j-1]:
			i--
			j--
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+1:
			subs++
			i--
			j--
		case i > 0 && d[i][j] == d[i-1][j]+1:
			dels++
			i--
		default:
			ins++
			j--
		}
	}

	return WERResult{
		Rate:          float64(subs+ins+dels) / float64(n),
		Substitutions: subs,
		Insertions:    ins,
		Deletions:     dels,
		RefWords:      n,
	}
}

// normalizeWords lowercases text, strips punctuation, and splits it
// into whitespace-separated words.
func normalizeWords(s string) []string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
	return strings.Fields(s)
}
