package flanngo

type options struct {
	logger  *Logger
	lshSeed int64
}

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		lshSeed: 1,
	}
}

// Option configures index construction behavior.
type Option func(*options)

// WithLogger configures the logger used for structured operation logging.
//
// If nil is passed, the no-op logger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}

		o.logger = l
	}
}

// WithSeed configures the seed for the LSH random projection families.
//
// Two LSH indexes built with the same dimension, table/bit counts and seed
// produce identical signatures. The option is ignored by the KD-tree and
// linear strategies, which have no random state.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.lshSeed = seed
	}
}
