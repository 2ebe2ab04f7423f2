package parser

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ErrMalformedInput is returned when goldmark cannot produce a tree.
var ErrMalformedInput = errors.New("malformed input")

// StandardOptions goldmark 扩展配置
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM,            // GitHub Flavored Markdown (tables, strikethrough, tasklists, linkify)
		extension.DefinitionList, // 定义列表
		extension.Footnote,       // 脚注
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // 自动生成标题 ID
	),
}

// New returns a goldmark instance configured with StandardOptions.
func New() goldmark.Markdown {
	return goldmark.New(StandardOptions...)
}

// Parse 解析一行 Markdown，返回 AST 和其引用的源字节
//
// The returned source must be kept alongside the tree: text nodes only hold
// offsets into it.
func Parse(markdown string) (doc ast.Node, source []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, source = nil, nil
			err = fmt.Errorf("%w: %v", ErrMalformedInput, r)
		}
	}()

	md := New()
	source = []byte(markdown)
	reader := text.NewReader(source)
	doc = md.Parser().Parse(reader)
	if doc == nil {
		return nil, nil, ErrMalformedInput
	}
	return doc, source, nil
}
