package dprintf

import (
	log "github.com/sirupsen/logrus"
)

// DefaultMaxLength caps a single rendered output at 1 GiB.
const DefaultMaxLength = 1 << 30

// Option configures a Formatter.
type Option func(*options)

type options struct {
	maxLength int
	logger    log.FieldLogger
}

func defaultOptions() *options {
	return &options{
		maxLength: DefaultMaxLength,
		logger:    log.StandardLogger(),
	}
}

// WithMaxLength sets the largest output the formatter will allocate.
// Non-positive values are ignored.
func WithMaxLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLength = n
		}
	}
}

// WithLogger routes failure diagnostics to l.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
