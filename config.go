package fanout

import (
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/fanout/metrics"
)

// config holds per-operation configuration. Each operation builds its own
// config from options; nothing is shared between calls.
type config struct {
	// maxConcurrency is the number of workers an operation may run.
	// One (the default) selects the strictly sequential, order-preserving
	// path.
	maxConcurrency int

	// complete marks the target queue completed when the operation
	// finishes, attaching the aggregate error as the terminal fault.
	complete bool

	// capacity sizes queues created on behalf of the caller (Pipe output).
	// Zero means unbounded.
	// Default: 1024.
	capacity int

	// singleConsumer is forwarded to queues created on behalf of the
	// caller as an optimization hint.
	singleConsumer bool

	// metrics receives operation instrumentation. Default: noop.
	metrics metrics.Provider
}

func defaultConfig() config {
	return config{
		maxConcurrency: 1,
		capacity:       1024,
		metrics:        metrics.NewNoopProvider(),
	}
}

// validateConfig performs lightweight invariants checks after all options
// have been applied.
func validateConfig(cfg *config) error {
	if cfg.metrics == nil {
		return errorc.With(ErrInvalidConfig, errorc.String("option", "metrics provider is nil"))
	}
	return nil
}

func buildConfig(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return cfg, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Option configures a single operation call.
type Option func(*config) error

// WithMaxConcurrency sets the number of concurrent workers (must be >= 1).
// Above 1, the relative order of items in the target is unspecified.
func WithMaxConcurrency(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return errorc.With(ErrInvalidConcurrency, errorc.String("option", "WithMaxConcurrency"))
		}
		cfg.maxConcurrency = n
		return nil
	}
}

// WithComplete completes the target queue when the operation finishes,
// carrying the aggregate error (if any) as the terminal fault.
func WithComplete() Option {
	return func(cfg *config) error { cfg.complete = true; return nil }
}

// WithCapacity sets the capacity of queues created by the operation
// (default 1024). Zero selects an unbounded queue.
func WithCapacity(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("option", "WithCapacity requires n >= 0"))
		}
		cfg.capacity = n
		return nil
	}
}

// WithSingleConsumer hints that queues created by the operation will be
// consumed by a single reader.
func WithSingleConsumer() Option {
	return func(cfg *config) error { cfg.singleConsumer = true; return nil }
}

// WithMetrics wires a metrics provider into the operation.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("option", "WithMetrics requires a provider"))
		}
		cfg.metrics = p
		return nil
	}
}
