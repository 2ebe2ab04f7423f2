// Package renderer serialises a goldmark tree back to markdown.
//
// The renderer is source preserving: every byte of the original line that is
// not covered by a rewritten node is copied unchanged, so a tree with no
// synthesized links renders to exactly its source.
package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/riverfjs/autolink-go/internal/buffer"
	"github.com/riverfjs/autolink-go/internal/types"
)

// ErrRenderFailure is returned when the tree cannot be mapped back onto its source.
var ErrRenderFailure = errors.New("render failure")

// Renderer walks a tree and writes markdown into a buffer.
type Renderer struct {
	buf    *buffer.TextBuffer
	source []byte
	pos    int
	// depth of synthesized links currently open
	inLink int
}

// NewRenderer creates a Renderer over source.
func NewRenderer(source []byte) *Renderer {
	return &Renderer{
		buf:    buffer.New(),
		source: source,
	}
}

// Render 将 AST 还原为 Markdown 文本
func Render(doc ast.Node, source []byte) (string, error) {
	r := NewRenderer(source)
	if err := ast.Walk(doc, r.Walk); err != nil {
		return "", err
	}
	return r.Result(), nil
}

// Walk is an ast.Walker.
func (r *Renderer) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Text:
		if entering {
			if err := r.onText(n); err != nil {
				return ast.WalkStop, err
			}
		}

	case *ast.Link:
		if !IsSynthesized(n) {
			break
		}
		if entering {
			if err := r.onStartLink(n); err != nil {
				return ast.WalkStop, err
			}
		} else {
			r.onEndLink(n)
		}
	}
	return ast.WalkContinue, nil
}

// Result flushes the remaining source and returns the markdown.
func (r *Renderer) Result() string {
	if r.pos < len(r.source) {
		r.buf.WriteBytes(r.source[r.pos:])
		r.pos = len(r.source)
	}
	return r.buf.String()
}

// IsSynthesized reports whether n was created by the rewriter.
func IsSynthesized(n ast.Node) bool {
	_, ok := n.AttributeString(types.AutolinkAttribute)
	return ok
}

// copyTo copies untouched source up to stop.
func (r *Renderer) copyTo(stop int) error {
	if stop < r.pos || stop > len(r.source) {
		return fmt.Errorf("%w: segment at %d, cursor at %d", ErrRenderFailure, stop, r.pos)
	}
	r.buf.WriteBytes(r.source[r.pos:stop])
	r.pos = stop
	return nil
}

func (r *Renderer) onText(n *ast.Text) error {
	seg := n.Segment
	if err := r.copyTo(seg.Start); err != nil {
		return err
	}
	value := seg.Value(r.source)
	if r.inLink > 0 {
		r.buf.Write(escapeLinkText(string(value)))
	} else {
		r.buf.WriteBytes(value)
	}
	r.pos = seg.Stop
	return nil
}

func (r *Renderer) onStartLink(n *ast.Link) error {
	child, ok := n.FirstChild().(*ast.Text)
	if !ok {
		return fmt.Errorf("%w: synthesized link without text", ErrRenderFailure)
	}
	if err := r.copyTo(child.Segment.Start); err != nil {
		return err
	}
	r.buf.Write("[")
	r.inLink++
	return nil
}

func (r *Renderer) onEndLink(n *ast.Link) {
	r.inLink--
	r.buf.Write("](" + FormatDestination(string(n.Destination)) + ")")
}

// FormatDestination wraps destinations that would otherwise end the link early.
func FormatDestination(dest string) string {
	if dest == "" {
		return "<>"
	}
	if !strings.ContainsAny(dest, " \t()<>") {
		return dest
	}
	r := strings.NewReplacer("<", `\<`, ">", `\>`)
	return "<" + r.Replace(dest) + ">"
}

func escapeLinkText(s string) string {
	if !strings.ContainsAny(s, "[]") {
		return s
	}
	r := strings.NewReplacer("[", `\[`, "]", `\]`)
	return r.Replace(s)
}
