package log

// Option applies a configuration option to a logger config. Options are
// composable and applied in order; later options win.
type Option func(config) config

// apply folds opts over cfg.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}
