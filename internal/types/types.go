package types

// Entity is a linkable thing: a stable key and the alias text that links to it.
type Entity struct {
	Key   string `json:"key" yaml:"key"`
	Alias string `json:"alias" yaml:"alias"`
}

// MatchKind tells which alias variant produced a match.
type MatchKind int

const (
	// MatchExact means the alias matched byte for byte.
	MatchExact MatchKind = iota
	// MatchInsensitive means the alias matched with its first character lowercased.
	MatchInsensitive
)

// String returns the string representation of MatchKind.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchInsensitive:
		return "insensitive"
	default:
		return "unknown"
	}
}

// Fence markers recognised at the start of a line.
const (
	CodeFenceBackticks = "```"
	CodeFenceTildes    = "~~~"
	MathFence          = "$$"
)

// AutolinkAttribute marks link nodes created by the rewriter rather than the parser.
const AutolinkAttribute = "data-autolink"

// Config 自动链接配置
type Config struct {
	// CaseInsensitive enables the first-character case-insensitive alias variant.
	CaseInsensitive bool
	// CodeFences open and close code blocks; a block closes on the marker that opened it.
	CodeFences []string
	// MathFences toggle math blocks.
	MathFences []string
	// Concurrency is the number of lines linked in parallel; values below 2 mean sequential.
	Concurrency int
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		CaseInsensitive: false,
		CodeFences:      []string{CodeFenceBackticks, CodeFenceTildes},
		MathFences:      []string{MathFence},
		Concurrency:     1,
	}
}

// Clone returns a deep copy so callers can tweak a shared default.
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	out.CodeFences = append([]string(nil), c.CodeFences...)
	out.MathFences = append([]string(nil), c.MathFences...)
	return &out
}
