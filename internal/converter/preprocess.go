package converter

import (
	"strings"
)

// LineState is the block context a line is read in.
type LineState int

const (
	StateNormal LineState = iota
	StateInCodeBlock
	StateInMathBlock
)

// String returns the string representation of LineState.
func (s LineState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateInCodeBlock:
		return "code"
	case StateInMathBlock:
		return "math"
	default:
		return "unknown"
	}
}

// LineClass says what the preprocessor should do with a line.
type LineClass int

const (
	// ClassText is a non-empty line in normal state; it gets linked.
	ClassText LineClass = iota
	// ClassEmpty passes through as is.
	ClassEmpty
	// ClassFence is a fence line; it toggles state and passes through.
	ClassFence
	// ClassVerbatim is inside a code or math block, or a one-line math block.
	ClassVerbatim
)

// FenceTracker 跟踪代码块和数学块的开闭状态
//
// Fences are recognised by a raw prefix match, without trimming indentation.
type FenceTracker struct {
	codeFences []string
	mathFences []string

	state LineState
	open  string
}

// NewFenceTracker creates a tracker in normal state.
func NewFenceTracker(codeFences, mathFences []string) *FenceTracker {
	return &FenceTracker{
		codeFences: codeFences,
		mathFences: mathFences,
		state:      StateNormal,
	}
}

// State returns the state the next line will be read in.
func (f *FenceTracker) State() LineState {
	return f.state
}

// Next classifies line and advances the state machine.
func (f *FenceTracker) Next(line string) LineClass {
	switch f.state {
	case StateInCodeBlock:
		if strings.HasPrefix(line, f.open) {
			f.state, f.open = StateNormal, ""
			return ClassFence
		}
		return ClassVerbatim

	case StateInMathBlock:
		if strings.HasPrefix(line, f.open) {
			f.state, f.open = StateNormal, ""
			return ClassFence
		}
		return ClassVerbatim
	}

	if marker := matchPrefix(line, f.codeFences); marker != "" {
		f.state, f.open = StateInCodeBlock, marker
		return ClassFence
	}
	if marker := matchPrefix(line, f.mathFences); marker != "" {
		// $$ x $$ on a single line opens and closes at once
		rest := strings.TrimRight(line[len(marker):], " \t")
		if strings.HasSuffix(rest, marker) {
			return ClassVerbatim
		}
		f.state, f.open = StateInMathBlock, marker
		return ClassFence
	}
	if line == "" {
		return ClassEmpty
	}
	return ClassText
}

func matchPrefix(line string, markers []string) string {
	for _, m := range markers {
		if m != "" && strings.HasPrefix(line, m) {
			return m
		}
	}
	return ""
}
