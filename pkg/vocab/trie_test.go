package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrieLongestMatch(t *testing.T) {
	tr := newTrie("<pad>", "<p>", "TH", "THE")

	assert.Equal(t, len("<pad>"), tr.longestMatch("<pad>X"))
	assert.Equal(t, len("<p>"), tr.longestMatch("<p>ad"))
	assert.Equal(t, 3, tr.longestMatch("THEM"), "prefers the longest token")
	assert.Equal(t, 2, tr.longestMatch("THx"))
	assert.Equal(t, 0, tr.longestMatch("X<pad>"))
	assert.Equal(t, 0, tr.longestMatch(""))
}

func TestTrieContains(t *testing.T) {
	tr := newTrie("<unk>")

	assert.True(t, tr.contains("<unk>"))
	assert.False(t, tr.contains("<unk"))
	assert.False(t, tr.contains("<unk>x"))
	assert.False(t, tr.contains(""))
}

func TestTrieInsertEmpty(t *testing.T) {
	tr := newTrie()
	tr.insert("")
	assert.Equal(t, 0, tr.longestMatch("anything"))
}
