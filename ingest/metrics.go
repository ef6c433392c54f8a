package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bmra"

type Metrics struct {
	registry *prometheus.Registry
	messages *prometheus.CounterVec
	newUnits prometheus.Counter
	files    *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "messages_total",
			Help:      "Messages read from the feed by outcome.",
		}, []string{"outcome"}),
		newUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "new_units_total",
			Help:      "Units registered for the first time.",
		}),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "files_total",
			Help:      "Files processed by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "file_duration_seconds",
			Help:      "Time taken to process a single file.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
	m.registry.MustRegister(m.messages, m.newUnits, m.files, m.duration)
	return m
}

func (m *Metrics) Observe(s *Summary, err error) {
	if err != nil {
		m.files.WithLabelValues("error").Inc()
	} else {
		m.files.WithLabelValues("ok").Inc()
	}
	if s == nil {
		return
	}

	m.messages.WithLabelValues("inserted").Add(float64(s.Inserted))
	m.messages.WithLabelValues("replaced").Add(float64(s.Replaced))
	m.messages.WithLabelValues("duplicate").Add(float64(s.Duplicate))
	m.messages.WithLabelValues("skipped").Add(float64(s.Skipped))
	m.messages.WithLabelValues("unprocessed").Add(float64(s.Unprocessed))
	m.messages.WithLabelValues("failed").Add(float64(s.Failed))
	m.newUnits.Add(float64(s.NewUnits))
	m.duration.Observe(s.Duration.Seconds())
}

// WriteToTextfile exports the metrics for the node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
