// Package metrics defines the instrumentation surface used by fanout
// operations and two providers: an in-memory BasicProvider for tests and
// lightweight applications, and a NoopProvider used by default.
//
// The interface is deliberately minimal so that callers can bridge it to a
// full telemetry stack (OpenTelemetry, expvar) without this package taking
// the dependency.
package metrics

// Provider constructs instruments by name. Requesting the same name twice
// must return the same instrument. Implementations must be safe for
// concurrent use.
type Provider interface {
	Counter(name string) Counter
	UpDownCounter(name string) UpDownCounter
	Histogram(name string) Histogram
}

// Counter records monotonic counts (items written, faults).
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that move both ways (active workers).
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements (wait times in
// seconds).
type Histogram interface {
	Record(v float64)
}
