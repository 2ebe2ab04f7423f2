package converter

import (
	"testing"

	"github.com/riverfjs/autolink-go/internal/types"
)

func defaultTracker() *FenceTracker {
	return NewFenceTracker(
		[]string{types.CodeFenceBackticks, types.CodeFenceTildes},
		[]string{types.MathFence},
	)
}

// TestFenceTracker 测试代码块与数学块状态切换
func TestFenceTracker(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []LineClass
	}{
		{
			name:  "plain text",
			lines: []string{"Rust", "", "Go"},
			want:  []LineClass{ClassText, ClassEmpty, ClassText},
		},
		{
			name:  "code block",
			lines: []string{"```go", "Rust", "```", "Rust"},
			want:  []LineClass{ClassFence, ClassVerbatim, ClassFence, ClassText},
		},
		{
			name:  "tilde block ignores backticks",
			lines: []string{"~~~", "```", "Rust", "~~~", "Rust"},
			want:  []LineClass{ClassFence, ClassVerbatim, ClassVerbatim, ClassFence, ClassText},
		},
		{
			name:  "math block",
			lines: []string{"$$", "E = mc^2", "$$", "Rust"},
			want:  []LineClass{ClassFence, ClassVerbatim, ClassFence, ClassText},
		},
		{
			name:  "one line math",
			lines: []string{"$$x + y$$", "Rust"},
			want:  []LineClass{ClassVerbatim, ClassText},
		},
		{
			name:  "empty line inside block",
			lines: []string{"```", "", "```"},
			want:  []LineClass{ClassFence, ClassVerbatim, ClassFence},
		},
		{
			name:  "indented fence is not a fence",
			lines: []string{"  ```", "Rust"},
			want:  []LineClass{ClassText, ClassText},
		},
		{
			name:  "unterminated block",
			lines: []string{"```", "Rust", "Go"},
			want:  []LineClass{ClassFence, ClassVerbatim, ClassVerbatim},
		},
		{
			name:  "code fence inside math block",
			lines: []string{"$$", "```", "$$", "Rust"},
			want:  []LineClass{ClassFence, ClassVerbatim, ClassFence, ClassText},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := defaultTracker()
			for i, line := range tt.lines {
				if got := f.Next(line); got != tt.want[i] {
					t.Errorf("line %d %q: got class %d, want %d", i, line, got, tt.want[i])
				}
			}
		})
	}
}

func TestFenceTracker_State(t *testing.T) {
	f := defaultTracker()
	if f.State() != StateNormal {
		t.Fatalf("initial state = %s", f.State())
	}
	f.Next("```python")
	if f.State() != StateInCodeBlock {
		t.Errorf("after opening fence state = %s, want code", f.State())
	}
	f.Next("```")
	f.Next("$$")
	if f.State() != StateInMathBlock {
		t.Errorf("after math fence state = %s, want math", f.State())
	}
	f.Next("$$")
	if f.State() != StateNormal {
		t.Errorf("after closing fence state = %s, want normal", f.State())
	}
}

func TestFenceTracker_CustomMarkers(t *testing.T) {
	f := NewFenceTracker([]string{":::"}, nil)
	got := []LineClass{f.Next("```"), f.Next(":::"), f.Next("Rust"), f.Next(":::")}
	want := []LineClass{ClassText, ClassFence, ClassVerbatim, ClassFence}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLineState_String(t *testing.T) {
	tests := map[LineState]string{
		StateNormal:      "normal",
		StateInCodeBlock: "code",
		StateInMathBlock: "math",
		LineState(7):     "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("LineState(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
