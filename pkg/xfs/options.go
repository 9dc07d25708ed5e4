package xfs

import "github.com/samcharles93/xfsconv/internal/logger"

type options struct {
	charset  Charset
	maxDepth int
	strict   bool
	log      logger.Logger
}

// Option configures Load and the Decoder.
type Option func(*options)

func defaultOptions() options {
	return options{
		charset:  DefaultCharset,
		maxDepth: DefaultMaxDepth,
		log:      logger.Discard(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithCharset sets the code page used for C strings.
func WithCharset(cs Charset) Option {
	return func(o *options) {
		if cs != "" {
			o.charset = cs
		}
	}
}

// WithMaxDepth bounds how many structure levels, top level included, are
// decoded. Values <= 0 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		o.maxDepth = n
	}
}

// WithStrict turns misaligned top-level structures into ErrMisaligned.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger routes decode logging to l.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}
