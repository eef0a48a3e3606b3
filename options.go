package biomtab

import (
	"log/slog"
	"runtime"
)

type options struct {
	stripTaxa   bool
	logger      *Logger
	concurrency int
}

// Option configures conversion behavior.
type Option func(*options)

// WithTaxaPrefixRemoval strips leading taxonomic rank prefixes (k__, p__,
// sk__, ...) from every string cell of the feature annotation frame.
func WithTaxaPrefixRemoval() Option {
	return func(o *options) {
		o.stripTaxa = true
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithConcurrency bounds the number of files ConvertAll decodes in
// parallel. Values below 1 reset the default (GOMAXPROCS). Single-file
// operations ignore it.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.concurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:      NoopLogger(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
