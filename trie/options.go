package trie

import "log/slog"

type config struct {
	logger   *slog.Logger
	compress bool
}

func defaultConfig() config {
	return config{
		logger:   slog.Default(),
		compress: true,
	}
}

// Option configures a Builder.
type Option func(*config)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// WithCompression controls whether Seal merges chains of literal edges.
// Default is true. Search results are the same either way.
func WithCompression(enabled bool) Option {
	return func(c *config) {
		c.compress = enabled
	}
}
