// Package index builds the alias lookup structure used by the autolinker.
//
// An Index answers one question: which aliases start exactly at the head of
// a string. Matches that begin later are never reported.
package index

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/riverfjs/autolink-go/internal/types"
)

// ErrInvalidAlias is returned by Build for an entity with an empty alias.
var ErrInvalidAlias = errors.New("invalid alias")

// Match is an alias found at the head of a string.
type Match struct {
	Entity types.Entity
	// Order is the entity's position in the slice given to Build.
	Order   int
	Kind    types.MatchKind
	Literal string
	Length  int
}

// Index is immutable once built and safe for concurrent readers.
type Index struct {
	entities        []types.Entity
	variants        []string
	exact           *trie
	folded          *trie
	caseInsensitive bool

	prefilter ahocorasick.AhoCorasick
	patterns  int
}

// Build indexes the aliases of entities. Entity order is significant: when
// several aliases of the same kind match at one position the earlier entity wins.
func Build(entities []types.Entity, caseInsensitive bool) (*Index, error) {
	idx := &Index{
		entities:        append([]types.Entity(nil), entities...),
		variants:        make([]string, len(entities)),
		exact:           newTrie(),
		caseInsensitive: caseInsensitive,
	}
	if caseInsensitive {
		idx.folded = newTrie()
	}

	patterns := make([]string, 0, len(entities))
	for i, e := range idx.entities {
		if e.Alias == "" {
			return nil, fmt.Errorf("entity %d (key %q): %w: empty alias", i, e.Key, ErrInvalidAlias)
		}
		idx.exact.insert(e.Alias, i)
		patterns = append(patterns, e.Alias)

		if !caseInsensitive {
			continue
		}
		if v := FoldFirst(e.Alias); v != e.Alias {
			idx.variants[i] = v
			idx.folded.insert(v, i)
			patterns = append(patterns, v)
		}
	}

	if len(patterns) > 0 {
		builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
			AsciiCaseInsensitive: false,
			MatchOnlyWholeWords:  false,
			MatchKind:            ahocorasick.LeftMostFirstMatch,
		})
		idx.prefilter = builder.Build(patterns)
		idx.patterns = len(patterns)
	}
	return idx, nil
}

// FoldFirst lowercases the first character of alias and leaves the rest alone.
// This is the only case folding the matcher applies.
func FoldFirst(alias string) string {
	r, size := utf8.DecodeRuneInString(alias)
	if r == utf8.RuneError && size <= 1 {
		return alias
	}
	lower := unicode.ToLower(r)
	if lower == r {
		return alias
	}
	return string(lower) + alias[size:]
}

// Len returns the number of indexed entities.
func (idx *Index) Len() int {
	return len(idx.entities)
}

// CaseInsensitive reports whether the folded variant is indexed.
func (idx *Index) CaseInsensitive() bool {
	return idx.caseInsensitive
}

// MayContain reports whether any alias or variant occurs anywhere in s.
// A false result means s cannot produce a link.
func (idx *Index) MayContain(s string) bool {
	if idx.patterns == 0 || s == "" {
		return false
	}
	return idx.prefilter.Iter(s).Next() != nil
}

// Candidates returns every alias that is a prefix of s in preference order:
// exact matches first, then case-insensitive ones, each group by entity order.
func (idx *Index) Candidates(s string) []Match {
	if s == "" || len(idx.entities) == 0 {
		return nil
	}
	var out []Match
	for _, h := range idx.exact.prefixes(s) {
		e := idx.entities[h.id]
		out = append(out, Match{
			Entity:  e,
			Order:   h.id,
			Kind:    types.MatchExact,
			Literal: e.Alias,
			Length:  h.length,
		})
	}
	if idx.folded != nil {
		for _, h := range idx.folded.prefixes(s) {
			out = append(out, Match{
				Entity:  idx.entities[h.id],
				Order:   h.id,
				Kind:    types.MatchInsensitive,
				Literal: idx.variants[h.id],
				Length:  h.length,
			})
		}
	}
	return out
}

// LongestMatchAt returns the first candidate starting exactly at s[pos:],
// using the same ordering as Candidates.
func (idx *Index) LongestMatchAt(s string, pos int) (Match, bool) {
	if pos < 0 || pos >= len(s) {
		return Match{}, false
	}
	c := idx.Candidates(s[pos:])
	if len(c) == 0 {
		return Match{}, false
	}
	return c[0], true
}
