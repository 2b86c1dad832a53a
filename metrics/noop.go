package metrics

// NoopProvider returns instruments that discard every measurement. It is
// the default provider for fanout operations.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(string) Counter             { return noopCounter{} }
func (NoopProvider) UpDownCounter(string) UpDownCounter { return noopUpDownCounter{} }
func (NoopProvider) Histogram(string) Histogram         { return noopHistogram{} }

type noopCounter struct{}

func (noopCounter) Add(int64) {}

type noopUpDownCounter struct{}

func (noopUpDownCounter) Add(int64) {}

type noopHistogram struct{}

func (noopHistogram) Record(float64) {}
