package converter

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/autolink-go/internal/index"
	"github.com/riverfjs/autolink-go/internal/matcher"
	"github.com/riverfjs/autolink-go/internal/types"
)

// Rewriter 遍历 goldmark AST，把文本节点中的别名替换为链接
//
// goldmark may split one run of plain text into several adjacent Text nodes.
// The rewriter treats contiguous siblings as a single leaf.
type Rewriter struct {
	source []byte
	index  *index.Index

	// zombies are replaced text leaves still attached to the tree. ast.Walk
	// reads the next sibling after the callbacks return, so they are only
	// detached once the walk reports a node outside the set.
	zombies []ast.Node
	// rest holds the later members of the run being handled; the walk still
	// visits them but they are not matched again.
	rest []ast.Node

	matches []MatchSpan
}

// MatchSpan describes one inserted link.
type MatchSpan struct {
	Alias    string
	Key      string
	Kind     types.MatchKind
	Start    int
	Length   int
	Trailing string
}

// NewRewriter creates a Rewriter over source using idx.
func NewRewriter(source []byte, idx *index.Index) *Rewriter {
	return &Rewriter{
		source:  source,
		index:   idx,
		matches: make([]MatchSpan, 0),
	}
}

// Rewrite links every eligible text run under doc and returns the inserted
// links in document order.
func Rewrite(doc ast.Node, source []byte, idx *index.Index) ([]MatchSpan, error) {
	w := NewRewriter(source, idx)
	err := ast.Walk(doc, w.Walk)
	w.Finish()
	return w.Matches(), err
}

// Walk is an ast.Walker.
func (w *Rewriter) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if len(w.rest) > 0 && node == w.rest[0] {
		if !entering {
			w.rest = w.rest[1:]
		}
		return ast.WalkContinue, nil
	}
	if len(w.zombies) > 0 && !w.isZombie(node) {
		w.bury()
	}

	switch n := node.(type) {
	case *ast.Link, *ast.Image, *ast.AutoLink, *ast.CodeSpan,
		*ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock, *ast.RawHTML:
		if entering {
			return ast.WalkSkipChildren, nil
		}

	case *ast.Text:
		if entering {
			run := textRun(n)
			w.rest = asNodes(run[1:])
			if w.injectLinks(run) {
				w.zombies = asNodes(run)
			}
		}
	}

	return ast.WalkContinue, nil
}

// Finish detaches zombies left over when the walk ended on them.
func (w *Rewriter) Finish() {
	w.bury()
	w.rest = nil
}

// Matches returns the inserted links in document order.
func (w *Rewriter) Matches() []MatchSpan {
	return w.matches
}

func (w *Rewriter) isZombie(node ast.Node) bool {
	for _, z := range w.zombies {
		if z == node {
			return true
		}
	}
	return false
}

func (w *Rewriter) bury() {
	for _, z := range w.zombies {
		if parent := z.Parent(); parent != nil {
			parent.RemoveChild(parent, z)
		}
	}
	w.zombies = nil
}

// textRun returns first followed by every next sibling that continues it in
// the source: a Text node starting where the previous one stopped, with no
// line break in between.
func textRun(first *ast.Text) []*ast.Text {
	run := []*ast.Text{first}
	cur := first
	for !cur.SoftLineBreak() && !cur.HardLineBreak() {
		next, ok := cur.NextSibling().(*ast.Text)
		if !ok || next.Segment.Start != cur.Segment.Stop {
			break
		}
		run = append(run, next)
		cur = next
	}
	return run
}

// injectLinks splices text and link nodes in front of the first node of run.
// It reports whether anything was inserted; the run itself is never touched here.
func (w *Rewriter) injectLinks(run []*ast.Text) bool {
	orig := run[0]
	parent := orig.Parent()
	if parent == nil {
		return false
	}
	last := run[len(run)-1]
	seg := text.NewSegment(orig.Segment.Start, last.Segment.Stop)
	value := string(seg.Value(w.source))
	if !w.index.MayContain(value) {
		return false
	}

	steps := matcher.Split(value, w.index)
	if !hasLink(steps) {
		return false
	}

	var (
		acc      accumulator
		inserted ast.Node
	)
	offset := seg.Start
	for _, step := range steps {
		if !step.Linked() {
			acc.extend(offset, offset+step.Consumed)
			offset += step.Consumed
			continue
		}

		if pending, ok := acc.take(); ok {
			inserted = w.insert(parent, orig, inserted, ast.NewTextSegment(pending))
		}
		inserted = w.insert(parent, orig, inserted, w.newLink(step, offset))

		if step.Trailing != "" {
			aliasEnd := offset + step.Match.Length
			acc.extend(aliasEnd, aliasEnd+len(step.Trailing))
		}
		offset += step.Consumed
	}
	if pending, ok := acc.take(); ok {
		inserted = w.insert(parent, orig, inserted, ast.NewTextSegment(pending))
	}

	if t, ok := inserted.(*ast.Text); ok {
		t.SetSoftLineBreak(last.SoftLineBreak())
		t.SetHardLineBreak(last.HardLineBreak())
	}
	return true
}

// insert places node before orig when it is the first one, otherwise right
// after the previously inserted node.
func (w *Rewriter) insert(parent, orig, prev, node ast.Node) ast.Node {
	if prev == nil {
		parent.InsertBefore(parent, orig, node)
	} else {
		parent.InsertAfter(parent, prev, node)
	}
	return node
}

func (w *Rewriter) newLink(step matcher.Step, start int) *ast.Link {
	m := step.Match
	link := ast.NewLink()
	link.Destination = []byte(m.Entity.Key)
	link.SetAttributeString(types.AutolinkAttribute, []byte(m.Entity.Key))
	link.AppendChild(link, ast.NewTextSegment(text.NewSegment(start, start+m.Length)))

	w.matches = append(w.matches, MatchSpan{
		Alias:    step.Literal,
		Key:      m.Entity.Key,
		Kind:     m.Kind,
		Start:    start,
		Length:   m.Length,
		Trailing: step.Trailing,
	})
	return link
}

func asNodes(run []*ast.Text) []ast.Node {
	out := make([]ast.Node, len(run))
	for i, t := range run {
		out[i] = t
	}
	return out
}

func hasLink(steps []matcher.Step) bool {
	for _, s := range steps {
		if s.Linked() {
			return true
		}
	}
	return false
}
