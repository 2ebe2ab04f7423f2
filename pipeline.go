package autolink

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/riverfjs/autolink-go/internal/converter"
	"github.com/riverfjs/autolink-go/internal/index"
	"github.com/riverfjs/autolink-go/internal/parser"
	"github.com/riverfjs/autolink-go/internal/renderer"
)

// Stats summarises one processing pass.
type Stats struct {
	Lines     int // input lines
	Linked    int // lines that received at least one link
	Links     int // links inserted
	Verbatim  int // fence, code, math and empty lines
	Failed    int // lines left unmodified after a parse or render error
	Truncated int // lines left unmodified because the context ended
}

// lineResult is the outcome of linking a single line.
type lineResult struct {
	links     int
	failed    bool
	truncated bool
}

// Preprocessor 自动链接预处理器
//
// A Preprocessor owns the alias index built from its source. Passes share the
// index read-only; Refresh swaps it under an exclusive lock, so a rebuild
// waits for in-flight passes and never overlaps a query.
type Preprocessor struct {
	source EntitySource
	config *Config

	mu    sync.RWMutex
	index *index.Index
}

// New creates a Preprocessor over source. The index is built on the first
// Refresh, Process or ProcessText call.
func New(source EntitySource, opts ...Option) *Preprocessor {
	options := applyOptions(opts...)
	return &Preprocessor{
		source: source,
		config: options.Config,
	}
}

// Config returns the effective configuration.
func (p *Preprocessor) Config() *Config {
	return p.config
}

// Refresh reloads the entity source and rebuilds the alias index.
// On error the previous index stays in place.
func (p *Preprocessor) Refresh(ctx context.Context) error {
	if err := p.source.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh entities: %w", err)
	}
	entities := p.source.Entities()
	idx, err := index.Build(entities, p.config.CaseInsensitive)
	if err != nil {
		return fmt.Errorf("failed to build alias index: %w", err)
	}

	p.mu.Lock()
	p.index = idx
	p.mu.Unlock()

	Logger.Debug("alias index updated",
		zap.Int("entities", idx.Len()),
		zap.Bool("case_insensitive", idx.CaseInsensitive()),
	)
	return nil
}

// Process refreshes the index and links lines. The result has one line per
// input line, in order.
func (p *Preprocessor) Process(ctx context.Context, lines []string) ([]string, Stats, error) {
	if err := p.Refresh(ctx); err != nil {
		return nil, Stats{}, err
	}
	return p.ProcessLines(ctx, lines)
}

// ProcessText is Process over text split on "\n".
func (p *Preprocessor) ProcessText(ctx context.Context, text string) (string, Stats, error) {
	out, stats, err := p.Process(ctx, strings.Split(text, "\n"))
	if err != nil {
		return "", stats, err
	}
	return strings.Join(out, "\n"), stats, nil
}

// ProcessLines links lines with the current index.
//
// Lines inside code and math blocks, fence lines and empty lines are copied.
// A line that fails to parse or render is copied and counted in Stats.Failed.
// Once ctx is done the remaining lines are copied unmodified; this is not an
// error.
func (p *Preprocessor) ProcessLines(ctx context.Context, lines []string) ([]string, Stats, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.index == nil {
		return nil, Stats{}, ErrIndexNotBuilt
	}

	begin := time.Now()
	out := make([]string, len(lines))
	copy(out, lines)
	stats := Stats{Lines: len(lines)}

	tracker := converter.NewFenceTracker(p.config.CodeFences, p.config.MathFences)
	pending := make([]int, 0, len(lines))
	for i, line := range lines {
		if tracker.Next(line) == converter.ClassText {
			pending = append(pending, i)
		} else {
			stats.Verbatim++
		}
	}

	results := make([]lineResult, len(pending))
	if p.config.Concurrency > 1 {
		p.linkConcurrent(ctx, p.index, lines, out, pending, results)
	} else {
		p.linkSequential(ctx, p.index, lines, out, pending, results)
	}

	for _, r := range results {
		switch {
		case r.truncated:
			stats.Truncated++
		case r.failed:
			stats.Failed++
		case r.links > 0:
			stats.Linked++
			stats.Links += r.links
		}
	}
	if stats.Truncated > 0 {
		Logger.Warn("autolinking stopped early, remaining lines left unmodified",
			zap.Int("truncated", stats.Truncated),
			zap.Error(ctx.Err()),
		)
	}
	Logger.Debug("autolinking done",
		zap.Int("lines", stats.Lines),
		zap.Int("links", stats.Links),
		zap.Duration("elapsed", time.Since(begin)),
	)
	return out, stats, nil
}

func (p *Preprocessor) linkSequential(ctx context.Context, idx *index.Index, lines, out []string, pending []int, results []lineResult) {
	for j, i := range pending {
		if ctx.Err() != nil {
			results[j].truncated = true
			continue
		}
		out[i], results[j] = linkLine(idx, lines[i])
	}
}

func (p *Preprocessor) linkConcurrent(ctx context.Context, idx *index.Index, lines, out []string, pending []int, results []lineResult) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Concurrency)
	for j, i := range pending {
		if gctx.Err() != nil {
			results[j].truncated = true
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				results[j].truncated = true
				return nil
			}
			out[i], results[j] = linkLine(idx, lines[i])
			return nil
		})
	}
	_ = g.Wait()
}

// LinkLine links a single line as if it were read outside any code or math
// block. It returns the line and the number of links inserted.
func (p *Preprocessor) LinkLine(line string) (string, int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.index == nil {
		return line, 0, ErrIndexNotBuilt
	}
	if line == "" {
		return line, 0, nil
	}
	out, r := linkLine(p.index, line)
	return out, r.links, nil
}

// linkLine runs parse, rewrite and render on one line. Any failure leaves the
// line as it was.
func linkLine(idx *index.Index, line string) (string, lineResult) {
	doc, source, err := parser.Parse(line)
	if err != nil {
		Logger.Warn("line left unmodified", zap.Error(err), zap.String("line", line))
		return line, lineResult{failed: true}
	}

	spans, err := converter.Rewrite(doc, source, idx)
	if err != nil {
		Logger.Warn("line left unmodified", zap.Error(err), zap.String("line", line))
		return line, lineResult{failed: true}
	}
	if len(spans) == 0 {
		return line, lineResult{}
	}
	if ce := Logger.Check(zap.DebugLevel, "aliases linked"); ce != nil {
		ce.Write(zap.String("line", line), zap.Array("links", matchSpans(spans)))
	}

	rendered, err := renderer.Render(doc, source)
	if err != nil {
		Logger.Warn("line left unmodified", zap.Error(err), zap.String("line", line))
		return line, lineResult{failed: true}
	}
	return rendered, lineResult{links: len(spans)}
}

// matchSpans adapts rewriter spans for structured logging.
type matchSpans []converter.MatchSpan

func (m matchSpans) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, span := range m {
		if err := enc.AppendObject(matchSpan(span)); err != nil {
			return err
		}
	}
	return nil
}

type matchSpan converter.MatchSpan

func (m matchSpan) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("alias", m.Alias)
	enc.AddString("key", m.Key)
	enc.AddString("kind", m.Kind.String())
	enc.AddInt("start", m.Start)
	return nil
}
