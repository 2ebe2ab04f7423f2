package autolink

import (
	"context"
)

// Convert links aliases of entities in markdown and returns the annotated text.
//
// It is a one-shot helper around New and ProcessText; callers processing many
// documents should keep a Preprocessor so the index is not rebuilt each time.
//
// 参数:
//   - markdown: 原始 Markdown 文本
//   - entities: 按优先顺序排列的实体
//   - opts: 配置选项
func Convert(markdown string, entities []Entity, opts ...Option) (string, error) {
	p := New(NewStaticSource(entities...), opts...)
	out, _, err := p.ProcessText(context.Background(), markdown)
	return out, err
}

// ConvertLines is Convert over a slice of lines.
func ConvertLines(ctx context.Context, lines []string, entities []Entity, opts ...Option) ([]string, Stats, error) {
	p := New(NewStaticSource(entities...), opts...)
	return p.Process(ctx, lines)
}
