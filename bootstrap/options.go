package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

// appOptions collects all option values before applying to App.
type appOptions struct {
	logger          *logger.Logger
	failureHandler  di.FailureHandler
	summaryOutput   io.Writer
	gracefulTimeout *time.Duration
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithFailureHandler replaces di.DefaultFailureHandler for the store, the
// router and every view router it produces.
func WithFailureHandler(h di.FailureHandler) Option {
	return func(o *appOptions) {
		o.failureHandler = h
	}
}

// WithSummaryOutput redirects the startup summary, os.Stdout by default.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOutput = w
	}
}
