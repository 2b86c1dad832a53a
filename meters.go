package fanout

import (
	"time"

	"github.com/ygrebnov/fanout/metrics"
)

// Instrument names registered against the configured metrics provider.
const (
	metricItems         = "fanout_items_total"
	metricFaults        = "fanout_faults_total"
	metricActiveWorkers = "fanout_workers_active"
	metricWriteWait     = "fanout_write_wait_seconds"
)

// meters bundles the instruments an operation records into. Instruments are
// resolved once per call against the configured provider.
type meters struct {
	items     metrics.Counter
	faults    metrics.Counter
	workers   metrics.UpDownCounter
	writeWait metrics.Histogram
}

func newMeters(p metrics.Provider) *meters {
	return &meters{
		items:     p.Counter(metricItems),
		faults:    p.Counter(metricFaults),
		workers:   p.UpDownCounter(metricActiveWorkers),
		writeWait: p.Histogram(metricWriteWait),
	}
}

// observeWait records time spent suspended on a full queue.
func (m *meters) observeWait(start time.Time) {
	m.writeWait.Record(time.Since(start).Seconds())
}
