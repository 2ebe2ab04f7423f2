package autolink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPreprocessor_IndexNotBuilt(t *testing.T) {
	p := New(NewStaticSource(langs()...))

	_, _, err := p.ProcessLines(context.Background(), []string{"Go"})
	assert.True(t, errors.Is(err, ErrIndexNotBuilt))

	line, n, err := p.LinkLine("Go")
	assert.True(t, errors.Is(err, ErrIndexNotBuilt))
	assert.Equal(t, "Go", line)
	assert.Equal(t, 0, n)
}

func TestPreprocessor_LinkLine(t *testing.T) {
	p := New(NewStaticSource(langs()...))
	require.NoError(t, p.Refresh(context.Background()))

	line, n, err := p.LinkLine("I love Rust and Go!")
	require.NoError(t, err)
	assert.Equal(t, "I love [Rust](n1) and [Go](n2)!", line)
	assert.Equal(t, 2, n)

	line, n, err = p.LinkLine("")
	require.NoError(t, err)
	assert.Equal(t, "", line)
	assert.Equal(t, 0, n)
}

func TestPreprocessor_RefreshPicksUpChanges(t *testing.T) {
	src := NewStaticSource(NewEntity("n1", "Rust"))
	p := New(src)

	out, _, err := p.Process(context.Background(), []string{"Rust and Go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[Rust](n1) and Go"}, out)

	src.Set([]Entity{NewEntity("n2", "Go")})
	out, _, err = p.Process(context.Background(), []string{"Rust and Go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust and [Go](n2)"}, out)
}

func TestPreprocessor_RefreshErrorKeepsIndex(t *testing.T) {
	src := NewStaticSource(langs()...)
	p := New(src)
	require.NoError(t, p.Refresh(context.Background()))

	src.Set([]Entity{NewEntity("bad", "")})
	err := p.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAlias))

	out, _, err := p.ProcessLines(context.Background(), []string{"Go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[Go](n2)"}, out)
}

func TestPreprocessor_YAMLSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "things.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`things:
  - key: notes/go.md
    aliases: [Golang, Go]
`), 0o644))

	p := New(NewYAMLSource(path))
	out, _, err := p.ProcessText(context.Background(), "Golang or Go")
	require.NoError(t, err)
	assert.Equal(t, "[Golang](notes/go.md) or [Go](notes/go.md)", out)

	_, _, err = New(NewYAMLSource(filepath.Join(t.TempDir(), "missing.yaml"))).
		ProcessText(context.Background(), "Go")
	assert.Error(t, err)
}

func manyLines(n int) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		switch i % 4 {
		case 0:
			lines = append(lines, fmt.Sprintf("line %d mentions Rust and Go.", i))
		case 1:
			lines = append(lines, "")
		case 2:
			lines = append(lines, fmt.Sprintf("- item %d, Gopher", i))
		default:
			lines = append(lines, "Go")
		}
	}
	return lines
}

func TestPreprocessor_ConcurrentMatchesSequential(t *testing.T) {
	lines := manyLines(400)

	seq := New(NewStaticSource(langs()...))
	want, wantStats, err := seq.Process(context.Background(), lines)
	require.NoError(t, err)

	par := New(NewStaticSource(langs()...), WithConcurrency(8))
	got, gotStats, err := par.Process(context.Background(), lines)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, wantStats, gotStats)
	assert.Equal(t, 200, gotStats.Linked)
	assert.Equal(t, 300, gotStats.Links)
	assert.Equal(t, 100, gotStats.Verbatim)
}

func TestPreprocessor_ConcurrentPasses(t *testing.T) {
	src := NewStaticSource(langs()...)
	p := New(src, WithConcurrency(4))
	require.NoError(t, p.Refresh(context.Background()))
	lines := manyLines(40)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := p.ProcessLines(context.Background(), lines)
			assert.NoError(t, err)
			assert.NoError(t, p.Refresh(context.Background()))
		}()
	}
	wg.Wait()
}

func TestPreprocessor_CancelledContext(t *testing.T) {
	for _, n := range []int{1, 4} {
		t.Run(fmt.Sprintf("concurrency %d", n), func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			SetLogger(zap.New(core))
			defer SetLogger(nil)

			p := New(NewStaticSource(langs()...), WithConcurrency(n))
			require.NoError(t, p.Refresh(context.Background()))

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			lines := []string{"Rust", "", "Go"}
			out, stats, err := p.ProcessLines(ctx, lines)
			require.NoError(t, err)
			assert.Equal(t, lines, out)
			assert.Equal(t, 2, stats.Truncated)
			assert.Equal(t, 0, stats.Links)
			assert.Equal(t, 1, logs.FilterMessage("autolinking stopped early, remaining lines left unmodified").Len())
		})
	}
}

func TestOptions(t *testing.T) {
	p := New(NewStaticSource(), WithCaseInsensitive(true), WithConcurrency(3))
	assert.True(t, p.Config().CaseInsensitive)
	assert.Equal(t, 3, p.Config().Concurrency)

	// the shared default is never modified
	assert.False(t, DefaultConfig().CaseInsensitive)
	assert.Equal(t, 1, DefaultConfig().Concurrency)

	custom := &Config{Concurrency: 2, CodeFences: []string{"```"}}
	p = New(NewStaticSource(), WithConfig(custom), WithCodeFences("~~~"))
	assert.Equal(t, []string{"~~~"}, p.Config().CodeFences)
	assert.Equal(t, []string{"```"}, custom.CodeFences)
	assert.Equal(t, 2, p.Config().Concurrency)
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	p := New(NewStaticSource(langs()...))
	_, _, err := p.Process(context.Background(), []string{"Go"})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("alias index updated").Len())

	SetLogger(nil)
	assert.NotNil(t, Logger)
}

func TestPreprocessor_DebugLogsLinks(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	p := New(NewStaticSource(langs()...))
	_, _, err := p.Process(context.Background(), []string{"Rust and Go", "nothing"})
	require.NoError(t, err)

	entries := logs.FilterMessage("aliases linked").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "Rust and Go", ctx["line"])
	links, ok := ctx["links"].([]interface{})
	require.True(t, ok)
	require.Len(t, links, 2)
	first, ok := links[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Rust", first["alias"])
	assert.Equal(t, "n1", first["key"])
	assert.Equal(t, "exact", first["kind"])
}

func TestNewConsoleLogger(t *testing.T) {
	logger, err := NewConsoleLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewConsoleLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
