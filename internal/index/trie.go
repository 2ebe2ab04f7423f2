package index

import "slices"

// trieNode is one byte step of a pattern. Patterns ending here are listed in
// terminals by insertion id.
type trieNode struct {
	children  map[byte]*trieNode
	terminals []int
}

// trie is a byte trie whose root is keyed by the leading byte of each pattern.
type trie struct {
	root trieNode
	size int
}

func newTrie() *trie {
	return &trie{root: trieNode{children: make(map[byte]*trieNode)}}
}

func (t *trie) insert(pattern string, id int) {
	node := &t.root
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		next := node.children[c]
		if next == nil {
			next = &trieNode{children: make(map[byte]*trieNode)}
			node.children[c] = next
		}
		node = next
	}
	node.terminals = append(node.terminals, id)
	t.size++
}

// hit is a pattern id together with the byte length it matched.
type hit struct {
	id     int
	length int
}

// prefixes returns every inserted pattern that is a prefix of s, sorted by
// insertion id. Only matches anchored at s[0] are considered.
func (t *trie) prefixes(s string) []hit {
	var hits []hit
	node := &t.root
	for i := 0; i < len(s); i++ {
		node = node.children[s[i]]
		if node == nil {
			break
		}
		for _, id := range node.terminals {
			hits = append(hits, hit{id: id, length: i + 1})
		}
	}
	if len(hits) > 1 {
		slices.SortStableFunc(hits, func(a, b hit) int { return a.id - b.id })
	}
	return hits
}
