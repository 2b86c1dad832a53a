package queue

// config holds construction-time settings shared by both constructors.
type config struct {
	// singleConsumer records the caller's promise that at most one reader
	// will consume the queue. It is an optimization hint, not a contract:
	// the queue stays safe for concurrent reads either way.
	singleConsumer bool
}

// Option configures a queue at construction time.
type Option func(*config)

// WithSingleConsumer hints that at most one reader will consume the queue.
func WithSingleConsumer() Option {
	return func(c *config) { c.singleConsumer = true }
}
