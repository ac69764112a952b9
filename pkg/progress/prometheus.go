package progress

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rangler"

// PrometheusObserver exports snapshots as Prometheus metrics.
//
// Counters grow by the difference with the previous snapshot, so one observer must follow a
// single run.
type PrometheusObserver struct {
	BytesRead      prometheus.Counter
	StoredBytes    prometheus.Gauge
	LinesRead      prometheus.Counter
	LinesWritten   prometheus.Counter
	LinesDropped   prometheus.Counter
	RecordsSkipped prometheus.Counter
	Flushes        prometheus.Counter

	last Snapshot
}

func newCounter(factory promauto.Factory, name, help string) prometheus.Counter {
	return factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

// NewPrometheusObserver registers the run metrics with reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	factory := promauto.With(reg)

	return &PrometheusObserver{
		BytesRead:    newCounter(factory, "bytes_read_total", "Total number of bytes read from the input"),
		LinesRead:    newCounter(factory, "lines_read_total", "Total number of valid lines read from the input"),
		LinesWritten: newCounter(factory, "lines_written_total", "Total number of lines written to the output"),
		LinesDropped: newCounter(factory, "lines_dropped_total", "Total number of lines dropped by a filter or dedupe step"),
		RecordsSkipped: newCounter(factory, "records_skipped_total",
			"Total number of input records skipped because they are not valid UTF-8"),
		Flushes: newCounter(factory, "flushes_total", "Total number of output flushes"),
		StoredBytes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_bytes",
			Help:      "Bytes of line content retained by dedupe steps",
		}),
	}
}

// Observe updates the metrics from snapshot.
func (p *PrometheusObserver) Observe(snapshot Snapshot) {
	p.BytesRead.Add(float64(snapshot.BytesRead - p.last.BytesRead))
	p.LinesRead.Add(float64(snapshot.LinesRead - p.last.LinesRead))
	p.LinesWritten.Add(float64(snapshot.LinesWritten - p.last.LinesWritten))
	p.LinesDropped.Add(float64(snapshot.LinesDropped - p.last.LinesDropped))
	p.RecordsSkipped.Add(float64(snapshot.Skipped - p.last.Skipped))
	p.Flushes.Add(float64(snapshot.Flushes - p.last.Flushes))
	p.StoredBytes.Set(float64(snapshot.StoredBytes))

	p.last = snapshot
}

var _ Observer = (*PrometheusObserver)(nil)
