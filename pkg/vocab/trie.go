package vocab

// trie is a byte-keyed prefix tree over no-split tokens, used for
// longest-match segmentation of input text.
type trie struct {
	children map[byte]*trie
	terminal bool
}

func newTrie(tokens ...string) *trie {
	t := &trie{children: make(map[byte]*trie)}
	for _, tok := range tokens {
		t.insert(tok)
	}
	return t
}

func (t *trie) insert(token string) {
	if token == "" {
		return
	}
	node := t
	for i := 0; i < len(token); i++ {
		child, ok := node.children[token[i]]
		if !ok {
			child = &trie{children: make(map[byte]*trie)}
			node.children[token[i]] = child
		}
		node = child
	}
	node.terminal = true
}

// longestMatch returns the byte length of the longest inserted token
// that prefixes s, or 0 when no token matches.
func (t *trie) longestMatch(s string) int {
	node := t
	best := 0
	for i := 0; i < len(s); i++ {
		child, ok := node.children[s[i]]
		if !ok {
			break
		}
		node = child
		if node.terminal {
			best = i + 1
		}
	}
	return best
}

func (t *trie) contains(token string) bool {
	return t.longestMatch(token) == len(token) && token != ""
}
