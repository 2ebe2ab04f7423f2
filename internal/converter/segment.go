package converter

import "github.com/yuin/goldmark/text"

// accumulator 记录两个链接之间待写出的纯文本
//
// Everything between two inserted links is contiguous in the source, so the
// pending text is kept as a single source range rather than a byte buffer.
type accumulator struct {
	seg  text.Segment
	open bool
}

// extend grows the pending range to stop, opening it at start if empty.
func (a *accumulator) extend(start, stop int) {
	if !a.open {
		a.seg = text.NewSegment(start, stop)
		a.open = true
		return
	}
	a.seg.Stop = stop
}

// take returns the pending range and clears the accumulator.
func (a *accumulator) take() (text.Segment, bool) {
	if !a.open || a.seg.Len() == 0 {
		a.open = false
		return text.Segment{}, false
	}
	seg := a.seg
	a.open = false
	return seg, true
}
