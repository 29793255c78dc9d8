package host

import (
	"log/slog"

	"github.com/jmgilman/vfs/fs/watch"
)

const defaultDeleteConcurrency = 16

// Option configures a host.
type Option func(*config)

type config struct {
	logger            *slog.Logger
	backend           watch.Backend
	deleteConcurrency int
}

func newConfig(opts []Option) config {
	cfg := config{
		deleteConcurrency: defaultDeleteConcurrency,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger used for debug records and suppressed failures.
// The host, its watch hub and its fsnotify backend all log through it.
// Hosts discard log records by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithWatchBackend sets the backend used for Watch. It overrides the
// fsnotify backend attached to local storages.
func WithWatchBackend(backend watch.Backend) Option {
	return func(c *config) {
		c.backend = backend
	}
}

// WithDeleteConcurrency bounds the number of files AsyncHost removes at once
// during a recursive delete. Values below one leave it unbounded.
func WithDeleteConcurrency(n int) Option {
	return func(c *config) {
		c.deleteConcurrency = n
	}
}
