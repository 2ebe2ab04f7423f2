package buffer

// TextBuffer accumulates rendered markdown.
type TextBuffer struct {
	parts  []string
	length int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0),
	}
}

// Write appends text to the buffer.
func (tb *TextBuffer) Write(text string) {
	if text == "" {
		return
	}
	tb.parts = append(tb.parts, text)
	tb.length += len(text)
}

// WriteBytes appends a copy of b to the buffer.
func (tb *TextBuffer) WriteBytes(b []byte) {
	tb.Write(string(b))
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	if len(tb.parts) == 0 {
		return ""
	}
	result := make([]byte, 0, tb.length)
	for _, p := range tb.parts {
		result = append(result, p...)
	}
	return string(result)
}
