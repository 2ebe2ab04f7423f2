// Package matcher chops text into linked aliases and skipped words.
package matcher

import (
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/autolink-go/internal/index"
)

// Boundary lists the bytes that may follow a linked alias.
const Boundary = " \t,:;.!?<>{}&()-+/*"

// StepKind distinguishes linked from skipped steps.
type StepKind int

const (
	StepSkipped StepKind = iota
	StepLinked
)

// Step is the result of one Advance call.
type Step struct {
	Kind StepKind
	// Match is set for StepLinked.
	Match index.Match
	// Literal is the alias text for a linked step, or the consumed text
	// for a skipped one.
	Literal  string
	Consumed int
	// Trailing is the boundary consumed after a linked alias: one byte, or a
	// backslash escape of a boundary byte. Empty at end of input.
	Trailing string
}

// Linked reports whether the step produced a link.
func (s Step) Linked() bool {
	return s.Kind == StepLinked
}

// IsBoundary reports whether c may follow an alias.
func IsBoundary(c byte) bool {
	return strings.IndexByte(Boundary, c) >= 0
}

// trailingBoundary returns the boundary at the head of s, if any. A markdown
// escape of ASCII punctuation counts as the escaped byte.
func trailingBoundary(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if s[0] == '\\' && len(s) > 1 && util.IsPunct(s[1]) {
		return s[:2], IsBoundary(s[1])
	}
	return s[:1], IsBoundary(s[0])
}

// Advance inspects the head of s. It links the first candidate alias that is
// followed by end of input or a boundary byte; otherwise it skips one word
// including the space or tab after it. Consumed is at least 1 when s is not empty.
func Advance(s string, idx *index.Index) Step {
	if s == "" {
		return Step{Kind: StepSkipped}
	}

	for _, m := range idx.Candidates(s) {
		end := m.Length
		if end == len(s) {
			return Step{
				Kind:     StepLinked,
				Match:    m,
				Literal:  m.Literal,
				Consumed: end,
			}
		}
		if b, ok := trailingBoundary(s[end:]); ok {
			return Step{
				Kind:     StepLinked,
				Match:    m,
				Literal:  m.Literal,
				Consumed: end + len(b),
				Trailing: b,
			}
		}
	}

	n := strings.IndexAny(s, " \t")
	if n < 0 {
		return Step{Kind: StepSkipped, Literal: s, Consumed: len(s)}
	}
	return Step{Kind: StepSkipped, Literal: s[:n+1], Consumed: n + 1}
}

// Split runs Advance until s is exhausted.
func Split(s string, idx *index.Index) []Step {
	var steps []Step
	for len(s) > 0 {
		st := Advance(s, idx)
		steps = append(steps, st)
		s = s[st.Consumed:]
	}
	return steps
}
