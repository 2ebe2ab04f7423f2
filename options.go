package autolink

// Options holds options for a Preprocessor.
type Options struct {
	Config *Config
}

// Option is a function that configures Options.
type Option func(*Options)

// WithCaseInsensitive sets whether an alias also matches with its first
// character lowercased.
func WithCaseInsensitive(enable bool) Option {
	return func(opts *Options) {
		opts.Config.CaseInsensitive = enable
	}
}

// WithConcurrency sets how many lines are linked in parallel.
func WithConcurrency(n int) Option {
	return func(opts *Options) {
		opts.Config.Concurrency = n
	}
}

// WithCodeFences replaces the code fence markers.
func WithCodeFences(markers ...string) Option {
	return func(opts *Options) {
		opts.Config.CodeFences = append([]string(nil), markers...)
	}
}

// WithMathFences replaces the math fence markers.
func WithMathFences(markers ...string) Option {
	return func(opts *Options) {
		opts.Config.MathFences = append([]string(nil), markers...)
	}
}

// WithConfig sets a custom Config. Options given after it still apply.
func WithConfig(config *Config) Option {
	return func(opts *Options) {
		opts.Config = config.Clone()
	}
}

// defaultOptions returns the default options.
func defaultOptions() *Options {
	return &Options{
		Config: DefaultConfig().Clone(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
