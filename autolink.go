// Package autolink 在 Markdown 中自动为已知笔记名称添加链接
//
// Each non-code line is parsed with goldmark, every plain-text run that is not
// inside a link, image or code span is scanned for known aliases, and matches
// become links to the entity key. The rewritten tree is rendered back to
// markdown; everything that was not linked keeps its original bytes.
//
// 核心功能：
//   - 别名索引：按首字符分支的 trie，只匹配当前位置开头的别名
//   - 单词边界：别名后必须是行尾或边界字符
//   - 可选的首字母大小写不敏感匹配
//   - 跳过代码块、数学块、链接、图片和行内代码
//
// 示例：
//
//	entities := []autolink.Entity{
//	    autolink.NewEntity("n1", "Rust"),
//	    autolink.NewEntity("n2", "Go"),
//	}
//	out, err := autolink.Convert("I love Rust and Go!", entities)
//	// out == "I love [Rust](n1) and [Go](n2)!"
//
//	// 长期使用：
//	p := autolink.New(autolink.NewYAMLSource("things.yaml"),
//	    autolink.WithCaseInsensitive(true))
//	lines, stats, err := p.Process(ctx, lines)
package autolink
